// Package ui is the terminal front end, built on Bubble Tea.
//
// The program has two modes. Selection mode lists the targets from the
// discovery store: configured projects, auto-discovered editors marked
// "[discovered]", then packaged builds. Enter starts tailing the highlighted
// target's log and switches to view mode.
//
// View mode draws three regions:
//
//   - Header: target name colored by kind, and on the right either the cook
//     gauge or the active category filter
//   - Body: the visible slice of the scrollback inside a bordered box,
//     colored by severity with the category token underlined
//   - Footer: the latest status message and a short key hint
//
// A tick every 100ms drains pending tail events through engine.State.Drain,
// which caps the work done per tick. In selection mode the same tick picks
// up new discovery snapshots instead.
//
// Clicking a category token filters the view to that category. Toggles for
// timestamps, wrapping and the theme persist through the prefs package.
package ui

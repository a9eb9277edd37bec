// Package state provides thread-safe sharing of the selectable target list.
//
// # Overview
//
// The discovery poller rebuilds the target list every few seconds from the
// projects file and the running editor processes. The UI reads it whenever
// the selection screen redraws. Store sits between the two goroutines.
//
//	Producer (poller):            Consumer (UI):
//	┌────────────────┐            ┌─────────────────┐
//	│ cfg.Targets()  │            │                 │
//	│ Discover()     │            │                 │
//	│ Merge()        │            │                 │
//	│      ↓         │            │                 │
//	│ store.Update() │───────────→│ store.Snapshot()│
//	└────────────────┘  (mutex)   └─────────────────┘
//
// # Update Semantics
//
//	store.Update(targets, nil)   // replace list, clear error
//	store.Update(targets, err)   // replace list, record error
//	store.Update(nil, err)       // keep previous list, record error
//
// Discovery failing must not empty the selection screen, so the poller
// passes the configured targets alongside a discovery error.
//
// Generation increases on every Update. The UI compares it with the value
// it last rendered to decide whether the list changed.
//
// # Defensive Copying
//
// Update and Snapshot both clone the target slice, and Snapshot wraps the
// stored error, so neither side can observe the other's mutations.
//
// The zero Store is ready to use.
package state

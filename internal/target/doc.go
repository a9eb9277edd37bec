// Package target describes the log sources a user can pick from.
//
// A Target is either an editor project (a .uproject file) or a packaged
// build (an executable). Each maps to exactly one log file:
//
//	<dir>/Game.uproject  ->  <dir>/Saved/Logs/Game.log
//	<dir>/Game.exe       ->  <dir>/Game/Saved/Logs/Game.log
//
// Targets come from the projects file and from scanning running processes
// for editors launched with a project argument. Merge combines the two,
// dropping discovered projects whose path or key is already configured.
package target

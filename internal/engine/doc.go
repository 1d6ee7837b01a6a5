// Package engine implements the live log view: polling, classification,
// filtering and the control actions.
//
// # Engine
//
// Engine is a plain state machine with no locking. It holds:
//
//   - the rendered view: classified lines plus one display node per line
//   - the entry cache used by the filter
//   - the filter term and match count
//   - the poll state: paused flag, fetch-in-flight guard, clear epoch
//
// Each completed fetch replaces the view wholesale. The replacement drops the
// entry cache, and if a filter term is active it is applied again before
// anyone can observe the new view:
//
//	BeginPoll ─→ fetch ─→ FinishPoll
//	                        ├─ classify
//	                        ├─ replace nodes, invalidate cache
//	                        └─ ApplyFilter(term) when term != ""
//
// The cache is built lazily on the first filter after a replacement and keyed
// by the line's sequence index within that generation.
//
// # Loop
//
// Loop runs an Engine on one goroutine. Reads and writes of the log happen on
// helper goroutines that post a single continuation back, so every engine
// mutation is serialised. A tick that arrives while a fetch is still in
// flight is skipped. Filter input is debounced: each keystroke restarts one
// timer and only the latest term is applied. ClearFilter bypasses the
// debounce.
//
// Every change is published as an Event to the configured Publisher.
package engine

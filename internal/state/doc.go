// Package state shares the engine's output between the poll loop and its
// readers.
//
// # Overview
//
// The poll loop publishes an engine.Event after every change. Store is the
// engine.Publisher that sits between that single writer and any number of
// readers (the terminal UI, the web dashboard, websocket clients):
//
//	Producer (engine.Loop):        Consumers:
//	┌──────────────────┐          ┌───────────────────────┐
//	│ FinishPoll()     │          │ ui: Subscribe()       │
//	│ ApplyFilter()    │ Publish  │ server: Snapshot()    │
//	│ LogCleared() ... │─────────→│ websocket: Subscribe()│
//	└──────────────────┘          └───────────────────────┘
//
// # Delivery
//
// Publish never blocks the loop. Each subscriber has a small buffer; when it
// is full the oldest queued event is discarded to make room for the new one.
// Every event carries a complete snapshot, so a consumer that skips events
// still converges on the latest view. Discards are counted in Dropped.
//
// New subscribers receive the current view first, so a client that connects
// between polls does not wait a full interval for content.
//
// # Poll health
//
// Events marked Polled update ConsecutiveFailures: a failed read increments
// it, any successful read (including a missing file) resets it. IsOffline
// reports two or more failures in a row.
//
// # Copying
//
// Snapshot clones the entry slice and the last notice. Published snapshots
// are never mutated by the engine, but readers may modify what they get.
package state

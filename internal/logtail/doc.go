// Package logtail reads and resets the tailed log file.
//
// File is the resource the poll loop reads in full on every cycle. A missing
// file is not an I/O failure from the viewer's point of view, so it is
// reported through the ErrNotFound sentinel:
//
//	content, err := logtail.NewFile(path).ReadAll(ctx)
//	if errors.Is(err, logtail.ErrNotFound) {
//		// render the "does not exist" placeholder
//	}
//
// Any other failure is wrapped with "read log:" and keeps its original text.
//
// Tail extracts the last N lines with a ring buffer of size N, scanning the
// file once. It backs the non-interactive tail command, where loading a large
// log in full is not wanted.
package logtail

package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/five82/ducktail/internal/classify"
	"github.com/five82/ducktail/internal/logtail"
)

// Placeholder texts shown instead of entries.
const (
	PlaceholderLoading = "Collecting data…"
	PlaceholderEmpty   = "Log is empty."
	PlaceholderMissing = "Log file does not exist."
	placeholderFailed  = "Unknown error: %s"
)

// Status describes what the rendered view currently holds.
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusMissing
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusMissing:
		return "missing"
	case StatusFailed:
		return "failed"
	default:
		return "loading"
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Resource is the log the engine polls. ReadAll must report a missing log
// with an error matching logtail.ErrNotFound.
type Resource interface {
	ReadAll(ctx context.Context) (string, error)
	WriteAll(ctx context.Context, content string) error
}

// node is one displayed entry. Nodes are rebuilt wholesale when the view is
// replaced and mutated in place by the filter.
type node struct {
	markup string
	hidden bool
}

// Engine holds the rendered view, the entry cache, the filter and the poll
// state. It is not safe for concurrent use; Loop serialises access to it.
type Engine struct {
	status      Status
	failure     string
	lines       []classify.Line
	nodes       []node
	generation  uint64
	cache       []cacheRecord
	cacheBuilt  bool
	term        string
	matches     int
	paused      bool
	fetching    bool
	epoch       uint64
	lastPoll    time.Time
	version     uint64
	highlighter *highlighter
}

// New returns an engine showing the loading placeholder.
func New() *Engine {
	return &Engine{status: StatusLoading, version: 1}
}

// Ticket identifies a fetch started by BeginPoll.
type Ticket struct {
	epoch uint64
}

// BeginPoll reports whether a fetch should start for this tick. It refuses
// while paused and while an earlier fetch has not completed.
func (e *Engine) BeginPoll() (Ticket, bool) {
	if e.paused || e.fetching {
		return Ticket{}, false
	}
	e.fetching = true
	return Ticket{epoch: e.epoch}, true
}

// FinishPoll applies the outcome of a fetch. Results of fetches started
// before the log was cleared are discarded.
func (e *Engine) FinishPoll(t Ticket, content string, err error) {
	e.fetching = false
	if t.epoch != e.epoch {
		return
	}
	e.lastPoll = time.Now()

	switch {
	case err == nil:
		e.replace(StatusReady, "", classify.Classify(content))
	case errors.Is(err, logtail.ErrNotFound):
		e.replace(StatusMissing, "", nil)
	default:
		e.replace(StatusFailed, err.Error(), nil)
	}

	if e.term != "" {
		e.ApplyFilter(e.term)
	}
}

// replace swaps in a new view and drops everything derived from the old one.
func (e *Engine) replace(status Status, failure string, lines []classify.Line) {
	e.status = status
	e.failure = failure
	e.lines = lines
	e.nodes = make([]node, len(lines))
	for i, l := range lines {
		e.nodes[i] = node{markup: l.Markup}
	}
	e.generation++
	e.invalidateCache()
	e.matches = len(lines)
	e.touch()
}

// TogglePause flips the paused flag and returns the new value. Resuming does
// not fetch; the next tick does.
func (e *Engine) TogglePause() bool {
	e.SetPaused(!e.paused)
	return e.paused
}

// SetPaused sets the paused flag.
func (e *Engine) SetPaused(paused bool) {
	if e.paused == paused {
		return
	}
	e.paused = paused
	e.touch()
}

// Paused reports whether polling is paused.
func (e *Engine) Paused() bool { return e.paused }

// Fetching reports whether a fetch is in flight.
func (e *Engine) Fetching() bool { return e.fetching }

// LogCleared records a successful clear: the view shows the missing-file
// placeholder, remembered content is dropped and in-flight fetches become
// stale. The filter term is kept and applies to the next snapshot.
func (e *Engine) LogCleared() {
	e.epoch++
	e.replace(StatusMissing, "", nil)
}

// Term returns the active filter term.
func (e *Engine) Term() string { return e.term }

// MatchCount returns the number of visible entries.
func (e *Engine) MatchCount() int { return e.matches }

// Total returns the number of entries in the view.
func (e *Engine) Total() int { return len(e.nodes) }

// Version increases on every observable change.
func (e *Engine) Version() uint64 { return e.version }

// Placeholder returns the text shown in place of entries, or "" when the
// view has entries.
func (e *Engine) Placeholder() string {
	switch e.status {
	case StatusLoading:
		return PlaceholderLoading
	case StatusMissing:
		return PlaceholderMissing
	case StatusFailed:
		return fmt.Sprintf(placeholderFailed, e.failure)
	}
	if len(e.nodes) == 0 {
		return PlaceholderEmpty
	}
	return ""
}

func (e *Engine) touch() {
	e.version++
}

package engine

import (
	"strings"
	"time"

	"github.com/five82/ducktail/internal/classify"
	"github.com/five82/ducktail/internal/markup"
)

// Entry is one displayed log line.
type Entry struct {
	ID       int               `json:"id"`
	Markup   string            `json:"markup"`
	Text     string            `json:"text"`
	Severity classify.Severity `json:"severity"`
	Hidden   bool              `json:"hidden,omitempty"`
}

// Snapshot is an immutable copy of the engine's observable state.
type Snapshot struct {
	Version     uint64    `json:"version"`
	Generation  uint64    `json:"generation"`
	Status      Status    `json:"status"`
	Placeholder string    `json:"placeholder,omitempty"`
	Entries     []Entry   `json:"entries"`
	Filter      string    `json:"filter"`
	MatchCount  int       `json:"match_count"`
	Total       int       `json:"total"`
	Paused      bool      `json:"paused"`
	Fetching    bool      `json:"fetching"`
	LastPoll    time.Time `json:"last_poll"`
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() Snapshot {
	entries := make([]Entry, len(e.nodes))
	for i, n := range e.nodes {
		l := e.lines[i]
		entries[i] = Entry{
			ID:       i,
			Markup:   n.markup,
			Text:     l.Text,
			Severity: l.Severity,
			Hidden:   n.hidden,
		}
	}
	return Snapshot{
		Version:     e.version,
		Generation:  e.generation,
		Status:      e.status,
		Placeholder: e.Placeholder(),
		Entries:     entries,
		Filter:      e.term,
		MatchCount:  e.matches,
		Total:       len(e.nodes),
		Paused:      e.paused,
		Fetching:    e.fetching,
		LastPoll:    e.lastPoll,
	}
}

// Visible returns the entries not hidden by the filter.
func (s Snapshot) Visible() []Entry {
	out := make([]Entry, 0, s.MatchCount)
	for _, e := range s.Entries {
		if !e.Hidden {
			out = append(out, e)
		}
	}
	return out
}

// HTML renders the view as markup: one container per entry, hidden entries
// kept with display:none, or the escaped placeholder when there are none.
func (s Snapshot) HTML() string {
	if s.Placeholder != "" {
		return `<div class="log-placeholder">` + markup.Escape(s.Placeholder) + `</div>`
	}
	var b strings.Builder
	for _, e := range s.Entries {
		if e.Hidden {
			b.WriteString(`<div class="log-container" style="display:none">`)
		} else {
			b.WriteString(`<div class="log-container">`)
		}
		b.WriteString(e.Markup)
		b.WriteString("</div>")
	}
	return b.String()
}

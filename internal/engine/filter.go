package engine

import (
	"regexp"
	"strings"

	"github.com/five82/ducktail/internal/markup"
)

// HighlightClass is the span class wrapped around filter matches.
const HighlightClass = "filter-highlight"

// highlighter memoises the compiled pattern for the active term, which is
// reapplied after every poll.
type highlighter struct {
	term string
	re   *regexp.Regexp
}

func (e *Engine) pattern(term string) *regexp.Regexp {
	if e.highlighter == nil || e.highlighter.term != term {
		// The term is user input; quote it so it only ever matches literally.
		e.highlighter = &highlighter{
			term: term,
			re:   regexp.MustCompile("(?i)" + regexp.QuoteMeta(term)),
		}
	}
	return e.highlighter.re
}

// ApplyFilter shows only entries whose text contains term, ignoring case, and
// highlights the occurrences. Non-matching entries are hidden, not removed.
// An empty term restores the unfiltered view. It returns the match count.
func (e *Engine) ApplyFilter(term string) int {
	e.term = term
	defer e.touch()

	if term == "" {
		e.restore()
		return e.matches
	}

	needle := strings.ToLower(term)
	re := e.pattern(term)
	matches := 0
	for _, rec := range e.entryCache() {
		n := &e.nodes[rec.node]
		if !strings.Contains(rec.text, needle) {
			n.hidden = true
			continue
		}
		n.hidden = false
		n.markup = markup.Highlight(rec.markup, re, HighlightClass)
		matches++
	}
	e.matches = matches
	return matches
}

// ClearFilter is ApplyFilter("").
func (e *Engine) ClearFilter() {
	e.ApplyFilter("")
}

// restore puts back the pre-highlight markup, unhides everything and drops
// the cache.
func (e *Engine) restore() {
	for i, l := range e.lines {
		e.nodes[i] = node{markup: l.Markup}
	}
	e.invalidateCache()
	e.matches = len(e.nodes)
}

package engine

import (
	"strings"

	"github.com/five82/ducktail/internal/markup"
)

// cacheRecord pairs a displayed node with what the filter needs to test and
// re-highlight it. node is the entry's sequence index in the current
// generation, so records never outlive the view they were built from.
type cacheRecord struct {
	node   int
	text   string
	markup string
}

// entryCache returns the cache, building it on first use after the view was
// replaced or the filter was cleared. Building twice without an intervening
// invalidation returns the same records.
func (e *Engine) entryCache() []cacheRecord {
	if e.cacheBuilt {
		return e.cache
	}
	records := make([]cacheRecord, len(e.lines))
	for i, l := range e.lines {
		records[i] = cacheRecord{
			node:   i,
			text:   strings.ToLower(markup.Text(l.Markup)),
			markup: l.Markup,
		}
	}
	e.cache = records
	e.cacheBuilt = true
	return e.cache
}

func (e *Engine) invalidateCache() {
	e.cache = nil
	e.cacheBuilt = false
}

// CacheSize reports how many records are cached; zero when unbuilt.
func (e *Engine) CacheSize() int {
	return len(e.cache)
}

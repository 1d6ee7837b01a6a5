package engine

import (
	"strings"
	"testing"

	"github.com/five82/ducktail/internal/markup"
)

func readyEngine(t *testing.T, content string) *Engine {
	t.Helper()
	e := New()
	polled(t, e, content, nil)
	return e
}

func TestApplyFilterAddressTerm(t *testing.T) {
	e := readyEngine(t, sampleLog)
	if got := e.ApplyFilter("192.168"); got != 1 {
		t.Fatalf("ApplyFilter(192.168) = %d, want 1", got)
	}
	snap := e.Snapshot()
	if !snap.Entries[0].Hidden {
		t.Fatal("INFO entry should be hidden")
	}
	got := snap.Entries[1].Markup
	want := `<span class="log-ip"><span class="filter-highlight">192.168</span>.1.5</span>`
	if !strings.Contains(got, want) {
		t.Fatalf("Markup = %q, want it to contain %q", got, want)
	}
	if markup.Text(got) != snap.Entries[1].Text {
		t.Fatalf("highlight changed text: %q vs %q", markup.Text(got), snap.Entries[1].Text)
	}
}

func TestApplyFilterCaseInsensitive(t *testing.T) {
	upper := readyEngine(t, sampleLog)
	lower := readyEngine(t, sampleLog)
	upper.ApplyFilter("ERROR")
	lower.ApplyFilter("error")

	a, b := upper.Snapshot(), lower.Snapshot()
	if a.MatchCount != b.MatchCount {
		t.Fatalf("MatchCount differs: %d vs %d", a.MatchCount, b.MatchCount)
	}
	for i := range a.Entries {
		if a.Entries[i].Hidden != b.Entries[i].Hidden {
			t.Fatalf("entry %d visibility differs", i)
		}
	}
}

func TestApplyFilterMatchCount(t *testing.T) {
	content := "alpha one\nbeta two\nALPHA three\ngamma\n"
	tests := []struct {
		term string
		want int
	}{
		{"alpha", 2},
		{"a", 4},
		{"two", 1},
		{"zzz", 0},
		{".", 0},
		{"(", 0},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			e := readyEngine(t, content)
			if got := e.ApplyFilter(tt.term); got != tt.want {
				t.Fatalf("ApplyFilter(%q) = %d, want %d", tt.term, got, tt.want)
			}
			visible := len(e.Snapshot().Visible())
			if visible != tt.want {
				t.Fatalf("visible entries = %d, want %d", visible, tt.want)
			}
		})
	}
}

func TestApplyFilterMetacharactersAreLiteral(t *testing.T) {
	e := readyEngine(t, "cost $5 (approx)\nplain")
	if got := e.ApplyFilter("$5 (a"); got != 1 {
		t.Fatalf("ApplyFilter = %d, want 1", got)
	}
	m := e.Snapshot().Entries[1].Markup
	if want := `<span class="filter-highlight">$5 (a</span>`; !strings.Contains(m, want) {
		t.Fatalf("Markup = %q, want %q", m, want)
	}
}

func TestApplyFilterDoesNotMatchTagText(t *testing.T) {
	e := readyEngine(t, sampleLog)
	if got := e.ApplyFilter("span"); got != 0 {
		t.Fatalf("ApplyFilter(span) = %d, want 0", got)
	}
	if got := e.ApplyFilter("log-ip"); got != 0 {
		t.Fatalf("ApplyFilter(log-ip) = %d, want 0", got)
	}
}

func TestApplyFilterEscapedContent(t *testing.T) {
	e := readyEngine(t, "<b>bold</b>\nother")
	if got := e.ApplyFilter("<b>"); got != 1 {
		t.Fatalf("ApplyFilter(<b>) = %d, want 1", got)
	}
	m := e.Snapshot().Entries[1].Markup
	if want := `<span class="filter-highlight">&lt;b&gt;</span>bold&lt;/b&gt;`; m != want {
		t.Fatalf("Markup = %q, want %q", m, want)
	}
}

func TestEmptyTermRestoresView(t *testing.T) {
	e := readyEngine(t, sampleLog)
	e.ApplyFilter("192.168")
	if e.CacheSize() != 2 {
		t.Fatalf("CacheSize = %d, want 2", e.CacheSize())
	}

	e.ApplyFilter("")
	snap := e.Snapshot()
	if snap.MatchCount != 2 {
		t.Fatalf("MatchCount = %d, want 2", snap.MatchCount)
	}
	if e.CacheSize() != 0 {
		t.Fatalf("CacheSize = %d, want 0 after clear", e.CacheSize())
	}
	for i, entry := range snap.Entries {
		if entry.Hidden {
			t.Fatalf("entry %d still hidden", i)
		}
		if strings.Contains(entry.Markup, HighlightClass) {
			t.Fatalf("entry %d still highlighted: %q", i, entry.Markup)
		}
	}
}

func TestClearFilterOnEmptyLog(t *testing.T) {
	e := readyEngine(t, "")
	e.ApplyFilter("x")
	e.ClearFilter()
	snap := e.Snapshot()
	if snap.MatchCount != 0 {
		t.Fatalf("MatchCount = %d, want 0", snap.MatchCount)
	}
	if snap.Placeholder != PlaceholderEmpty {
		t.Fatalf("Placeholder = %q, want %q", snap.Placeholder, PlaceholderEmpty)
	}
}

func TestRefilterStartsFromOriginalMarkup(t *testing.T) {
	e := readyEngine(t, "error here")
	e.ApplyFilter("error")
	e.ApplyFilter("here")
	m := e.Snapshot().Entries[0].Markup
	if strings.Count(m, HighlightClass) != 1 {
		t.Fatalf("Markup = %q, want a single highlight", m)
	}
}

func TestEntryCacheIdempotent(t *testing.T) {
	e := readyEngine(t, sampleLog)
	first := e.entryCache()
	second := e.entryCache()
	if len(first) != len(second) || &first[0] != &second[0] {
		t.Fatal("entryCache rebuilt without invalidation")
	}
	if first[1].text != strings.ToLower("2024-01-01 ERROR failed to connect 192.168.1.5") {
		t.Fatalf("cached text = %q", first[1].text)
	}
	if first[1].node != 1 {
		t.Fatalf("cached node = %d, want 1", first[1].node)
	}
}

package ui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/ducktail/internal/engine"
	"github.com/five82/ducktail/internal/prefs"
)

const sampleLog = "2024-01-01 ERROR failed to connect 192.168.1.5\n2024-01-01 INFO started ok"

type fakeController struct {
	inputs  []string
	clears  int
	pauses  []bool
	cleared int
}

func (f *fakeController) InputFilter(term string) { f.inputs = append(f.inputs, term) }
func (f *fakeController) ClearFilter()            { f.clears++ }
func (f *fakeController) ClearLog()               { f.cleared++ }
func (f *fakeController) SetPaused(paused bool) { f.pauses = append(f.pauses, paused) }

func newTestModel(t *testing.T, ctrl Controller) Model {
	t.Helper()
	m := New(Options{
		Controller: ctrl,
		LogPath:    "/var/log/duck/duck.log",
		PrefsPath:  filepath.Join(t.TempDir(), "prefs.toml"),
	})
	return update(t, m, tea.WindowSizeMsg{Width: 200, Height: 30})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func snapshotOf(t *testing.T) engine.Snapshot {
	t.Helper()
	e := engine.New()
	ticket, ok := e.BeginPoll()
	if !ok {
		t.Fatal("BeginPoll refused")
	}
	e.FinishPoll(ticket, sampleLog, nil)
	return e.Snapshot()
}

func view(m Model) string {
	return ansi.Strip(m.View())
}

func TestViewShowsLoadingPlaceholder(t *testing.T) {
	m := newTestModel(t, &fakeController{})
	if out := view(m); !strings.Contains(out, engine.PlaceholderLoading) {
		t.Fatalf("view missing loading placeholder:\n%s", out)
	}
}

func TestEventRendersEntries(t *testing.T) {
	m := newTestModel(t, &fakeController{})
	m = update(t, m, eventMsg{Snapshot: snapshotOf(t)})

	out := view(m)
	for _, want := range []string{"started ok", "failed to connect 192.168.1.5", "2 entries"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "started ok") > strings.Index(out, "failed to connect") {
		t.Fatalf("newest entry should render first:\n%s", out)
	}
	if m.rendered != m.snapshot.Version {
		t.Fatalf("rendered = %d, want %d", m.rendered, m.snapshot.Version)
	}
}

func TestFilteredEntriesAreHidden(t *testing.T) {
	e := engine.New()
	ticket, _ := e.BeginPoll()
	e.FinishPoll(ticket, sampleLog, nil)

	m := newTestModel(t, &fakeController{})
	e.ApplyFilter("started")
	m = update(t, m, eventMsg{Snapshot: e.Snapshot()})

	out := view(m)
	if strings.Contains(out, "failed to connect") {
		t.Fatalf("hidden entry rendered:\n%s", out)
	}
	if !strings.Contains(out, "1/2 matches") {
		t.Fatalf("view missing match count:\n%s", out)
	}

	e.ApplyFilter("nothing matches this")
	m = update(t, m, eventMsg{Snapshot: e.Snapshot()})
	if out := view(m); !strings.Contains(out, noMatches) {
		t.Fatalf("view missing %q:\n%s", noMatches, out)
	}
}

func TestFilterInputSendsEveryChange(t *testing.T) {
	ctrl := &fakeController{}
	m := newTestModel(t, ctrl)

	m = update(t, m, runes("/"))
	if !m.filtering {
		t.Fatal("expected filter input to be focused")
	}
	m = update(t, m, runes("e"))
	m = update(t, m, runes("r"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})

	want := []string{"e", "er", "e"}
	if strings.Join(ctrl.inputs, ",") != strings.Join(want, ",") {
		t.Fatalf("inputs = %v, want %v", ctrl.inputs, want)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.filtering {
		t.Fatal("enter should leave the filter input")
	}
	if m.filter.Value() != "e" {
		t.Fatalf("filter value = %q, want %q", m.filter.Value(), "e")
	}

	m = update(t, m, runes("x"))
	if ctrl.clears != 1 {
		t.Fatalf("clears = %d, want 1", ctrl.clears)
	}
	if m.filter.Value() != "" {
		t.Fatalf("filter value = %q after clear, want empty", m.filter.Value())
	}
}

func TestPauseTogglesLabel(t *testing.T) {
	ctrl := &fakeController{}
	m := newTestModel(t, ctrl)

	if out := view(m); !strings.Contains(out, "Pause Refresh") {
		t.Fatalf("view missing pause label:\n%s", out)
	}
	m = update(t, m, runes("p"))
	if len(ctrl.pauses) != 1 || !ctrl.pauses[0] {
		t.Fatalf("pauses = %v, want [true]", ctrl.pauses)
	}
	if m.snapshot.Paused {
		t.Fatal("paused before the loop reported it")
	}

	snap := snapshotOf(t)
	snap.Paused = true
	m = update(t, m, eventMsg{Snapshot: snap})
	out := view(m)
	if !strings.Contains(out, "Resume Refresh") || !strings.Contains(out, "PAUSED") {
		t.Fatalf("view missing paused state:\n%s", out)
	}

	m = update(t, m, runes("p"))
	if len(ctrl.pauses) != 2 || ctrl.pauses[1] {
		t.Fatalf("pauses = %v, want [true false]", ctrl.pauses)
	}
}

func TestClearLogAsksFirst(t *testing.T) {
	tests := []struct {
		name    string
		answer  tea.KeyMsg
		cleared int
	}{
		{"confirmed", runes("y"), 1},
		{"declined", runes("n"), 0},
		{"escaped", tea.KeyMsg{Type: tea.KeyEsc}, 0},
		{"enter defaults to no", tea.KeyMsg{Type: tea.KeyEnter}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := &fakeController{}
			m := newTestModel(t, ctrl)

			m = update(t, m, runes("C"))
			if !m.confirm.active {
				t.Fatal("expected confirmation dialog")
			}
			if ctrl.cleared != 0 {
				t.Fatal("log cleared before confirmation")
			}
			if out := view(m); !strings.Contains(out, clearLogTitle) {
				t.Fatalf("view missing dialog:\n%s", out)
			}

			next, cmd := m.Update(tt.answer)
			m = next.(Model)
			if m.confirm.active {
				t.Fatal("dialog still active")
			}
			if cmd == nil {
				t.Fatal("expected a result command")
			}
			m = update(t, m, cmd())
			if ctrl.cleared != tt.cleared {
				t.Fatalf("cleared = %d, want %d", ctrl.cleared, tt.cleared)
			}
		})
	}
}

func TestNoticeExpires(t *testing.T) {
	m := newTestModel(t, &fakeController{})
	n := engine.Notice{Kind: engine.NoticeSuccess, Message: "Log file has been cleared."}
	m = update(t, m, eventMsg{Snapshot: snapshotOf(t), Notice: &n})

	if out := view(m); !strings.Contains(out, n.Message) {
		t.Fatalf("view missing notice:\n%s", out)
	}
	m = update(t, m, noticeExpiredMsg(m.noticeSeq-1))
	if m.notice == nil {
		t.Fatal("stale expiry cleared the notice")
	}
	m = update(t, m, noticeExpiredMsg(m.noticeSeq))
	if m.notice != nil {
		t.Fatal("notice should have expired")
	}
}

func TestCycleThemeSavesPrefs(t *testing.T) {
	m := newTestModel(t, &fakeController{})
	before := m.theme.Name
	m = update(t, m, runes("T"))
	if m.theme.Name == before {
		t.Fatalf("theme did not change from %q", before)
	}
	if got := prefs.Load(m.prefsPath).Theme; got != m.theme.Name {
		t.Fatalf("saved theme = %q, want %q", got, m.theme.Name)
	}
}

func TestHelpListsBindings(t *testing.T) {
	md := helpMarkdown(DefaultKeyMap())
	for _, want := range []string{"Clear log file", "Pause/resume refresh", "Filter"} {
		if !strings.Contains(md, want) {
			t.Fatalf("help missing %q", want)
		}
	}

	m := newTestModel(t, &fakeController{})
	m = update(t, m, runes("?"))
	if !m.showHelp || m.helpView == "" {
		t.Fatal("expected help overlay")
	}
	m = update(t, m, runes("j"))
	if m.showHelp {
		t.Fatal("any key should close help")
	}
}

func TestEventsClosedQuits(t *testing.T) {
	events := make(chan engine.Event)
	close(events)
	m := New(Options{Events: events})
	msg := m.Init()()
	if _, ok := msg.(eventsClosedMsg); !ok {
		t.Fatalf("Init command returned %T, want eventsClosedMsg", msg)
	}
}

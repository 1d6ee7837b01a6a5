package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/ducktail/internal/engine"
)

// Rows taken by everything except the viewport: header, filter bar, footer
// and the two box borders.
const chromeHeight = 5

const noMatches = "No entries match the filter."

func (m *Model) resize() {
	m.viewport.Width = max(m.width-2, 1)
	m.viewport.Height = max(m.height-chromeHeight, 1)
	m.filter.Width = max(m.width/2, 10)
}

// refreshContent re-renders the viewport from the current snapshot and
// records which version it shows.
func (m *Model) refreshContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderEntries())
	m.rendered = m.snapshot.Version
}

// renderEntries renders visible entries, newest first, one per row.
func (m Model) renderEntries() string {
	styles := m.theme.Styles()
	if m.snapshot.Placeholder != "" {
		return styles.MutedText.Render(m.snapshot.Placeholder)
	}

	width := m.viewport.Width
	rows := make([]string, 0, len(m.snapshot.Entries))
	for _, e := range m.snapshot.Entries {
		if e.Hidden {
			continue
		}
		row := RenderMarkup(e.Markup, styles)
		if width > 0 {
			row = ansi.Truncate(row, width, "…")
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return styles.MutedText.Render(noMatches)
	}
	return strings.Join(rows, "\n")
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n")
	b.WriteString(m.renderBox())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	parts := []string{
		styles.Logo.Render("ducktail"),
		styles.Text.Render(m.logPath),
		styles.MutedText.Render(refreshLabel(m.pollInterval.Seconds())),
	}
	if m.snapshot.Paused {
		parts = append(parts, styles.Badge.Render("PAUSED"))
	}
	line := strings.Join(parts, styles.FaintText.Render(" • "))
	return styles.Header.Width(m.width).Render(ansi.Truncate(line, max(m.width-2, 1), "…"))
}

func refreshLabel(seconds float64) string {
	return fmt.Sprintf("Refresh every %g seconds.", seconds)
}

func (m Model) renderFilterBar() string {
	styles := m.theme.Styles()
	label := styles.AccentText.Render(" Filter: ")
	if m.filtering {
		label = styles.WarningText.Bold(true).Render(" Filter: ")
	}
	input := m.filter.View()

	var count string
	switch {
	case m.snapshot.Placeholder != "":
		count = ""
	case m.snapshot.Filter != "":
		count = fmt.Sprintf("%d/%d matches", m.snapshot.MatchCount, m.snapshot.Total)
	default:
		count = fmt.Sprintf("%d entries", m.snapshot.Total)
	}

	left := label + input
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(count) - 1
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + styles.FaintText.Render(count)
}

func (m Model) renderBox() string {
	border := m.theme.Border
	if m.filtering {
		border = m.theme.BorderFocus
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Render(m.viewport.View())
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	if m.notice != nil {
		style := styles.SuccessText
		if m.notice.Kind == engine.NoticeError {
			style = styles.DangerText
		}
		return styles.Footer.Render(style.Render(m.notice.Message))
	}

	pause := "⏸ Pause Refresh"
	if m.snapshot.Paused {
		pause = "▶ Resume Refresh"
	}

	var hints []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		desc := h.Desc
		if b.Keys()[0] == m.keys.Pause.Keys()[0] {
			desc = pause
		}
		hints = append(hints, styles.AccentText.Render(h.Key)+" "+styles.MutedText.Render(desc))
	}
	line := strings.Join(hints, styles.FaintText.Render("  "))
	return styles.Footer.Render(ansi.Truncate(line, max(m.width-2, 1), "…"))
}

func (m Model) renderModal(content string) string {
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
		lipgloss.WithWhitespaceChars(" "),
	)
}

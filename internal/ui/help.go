package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var helpGroups = []string{"Filter", "Refresh", "Navigation", "General"}

// helpMarkdown builds the help text from the key map so the two never drift.
func helpMarkdown(k keyMap) string {
	var b strings.Builder
	b.WriteString("# Keyboard shortcuts\n\n")
	for i, group := range k.FullHelp() {
		title := "More"
		if i < len(helpGroups) {
			title = helpGroups[i]
		}
		fmt.Fprintf(&b, "## %s\n\n| Key | Action |\n| --- | --- |\n", title)
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}
	b.WriteString("Entries are listed newest first. Filtering is case-insensitive and ")
	b.WriteString("hides non-matching entries until the filter is cleared.\n")
	return b.String()
}

// renderMarkdown renders markdown for the terminal, falling back to the raw
// text when glamour cannot.
func renderMarkdown(md string, width int) string {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(0, 1)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(m.helpView),
		lipgloss.WithWhitespaceChars(" "),
	)
}

func helpWidth(termWidth int) int {
	w := termWidth - 8
	if w > 70 {
		w = 70
	}
	return w
}

package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// confirmResultMsg reports the outcome of a confirmation dialog.
type confirmResultMsg struct {
	Confirmed bool
	Action    string
}

// confirmDialog is a modal yes/no prompt. No is selected by default.
type confirmDialog struct {
	title    string
	message  string
	action   string
	active   bool
	selected bool // true = yes selected
}

func newConfirmDialog(title, message, action string) confirmDialog {
	return confirmDialog{title: title, message: message, action: action, active: true}
}

func (d confirmDialog) result(confirmed bool) tea.Cmd {
	action := d.action
	return func() tea.Msg {
		return confirmResultMsg{Confirmed: confirmed, Action: action}
	}
}

func (d confirmDialog) Update(msg tea.KeyMsg) (confirmDialog, tea.Cmd) {
	if !d.active {
		return d, nil
	}
	switch msg.String() {
	case "y", "Y":
		d.active = false
		return d, d.result(true)
	case "n", "N", "esc", "q":
		d.active = false
		return d, d.result(false)
	case "enter":
		d.active = false
		return d, d.result(d.selected)
	case "tab", "left", "right", "h", "l":
		d.selected = !d.selected
	}
	return d, nil
}

func (d confirmDialog) View(theme Theme) string {
	if !d.active {
		return ""
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Warning)).
		Padding(1, 2).
		Width(50)

	title := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color(theme.Warning)).
		Render(d.title)

	yesStyle := lipgloss.NewStyle().Padding(0, 1)
	noStyle := lipgloss.NewStyle().Padding(0, 1)
	active := func(s lipgloss.Style, bg string) lipgloss.Style {
		return s.Bold(true).Background(lipgloss.Color(bg)).Foreground(lipgloss.Color(theme.Background))
	}
	if d.selected {
		yesStyle = active(yesStyle, theme.Success)
		noStyle = noStyle.Foreground(lipgloss.Color(theme.Faint))
	} else {
		yesStyle = yesStyle.Foreground(lipgloss.Color(theme.Faint))
		noStyle = active(noStyle, theme.Danger)
	}

	content := fmt.Sprintf("%s\n\n%s\n\n%s  %s\n\ny/n to confirm, esc to cancel",
		title, d.message,
		yesStyle.Render("Yes"), noStyle.Render("No"))

	return style.Render(content)
}

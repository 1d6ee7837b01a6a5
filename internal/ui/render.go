package ui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"

	"github.com/five82/ducktail/internal/markup"
)

// RenderMarkup converts classified log markup into terminal styling. Text
// nested in several classes takes the innermost class's colors first. Escape
// sequences and control characters in the log text are removed.
func RenderMarkup(s string, styles Styles) string {
	var b strings.Builder
	var stack []string
	for _, tok := range markup.Tokenize(s) {
		switch tok.Kind {
		case markup.TokenOpen:
			stack = append(stack, tok.Class)
		case markup.TokenClose:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		default:
			if text := SanitizeText(tok.Text); text != "" {
				b.WriteString(styles.forClasses(stack).Render(text))
			}
		}
	}
	return b.String()
}

// SanitizeText makes log text safe to write to a terminal: ANSI escape
// sequences are dropped, then every remaining control character except tab.
func SanitizeText(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r != '\t' && unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

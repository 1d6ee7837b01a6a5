package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/five82/ducktail/internal/classify"
	"github.com/five82/ducktail/internal/markup"
)

func TestRenderMarkupKeepsText(t *testing.T) {
	styles := GetTheme("Nightfox").Styles()
	tests := []struct {
		name string
		in   string
	}{
		{"plain", "hello world"},
		{"entities", "a &lt;b&gt; &amp; c"},
		{"severity", `2024 <span class="log-error">ERROR</span> boom`},
		{"nested highlight", `to <span class="log-ip"><span class="filter-highlight">192.168</span>.1.5</span>`},
		{"unknown class", `<span class="nope">x</span> y`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ansi.Strip(RenderMarkup(tt.in, styles))
			if want := markup.Text(tt.in); got != want {
				t.Fatalf("RenderMarkup text = %q, want %q", got, want)
			}
		})
	}
}

func TestRenderMarkupDropsTerminalControls(t *testing.T) {
	styles := GetTheme("Nightfox").Styles()
	tests := []struct {
		name   string
		raw    string
		absent []string
		want   string
	}{
		{
			name:   "title and clear screen",
			raw:    "ok \x1b]0;pwned\x07 \x1b[2J done",
			absent: []string{"pwned", "[2J", "\x07", "]0;"},
			want:   "ok   done",
		},
		{
			name:   "cursor movement",
			raw:    "error \x1b[10;1Hmoved",
			absent: []string{"[10;1H"},
			want:   "error moved",
		},
		{
			name:   "bare control characters",
			raw:    "a\rb\bc\x00d\u009be",
			absent: []string{"\r", "\b", "\x00", "\u009b"},
			want:   "abcde",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderMarkup(classify.ClassifyLine(tt.raw).Markup, styles)
			for _, bad := range tt.absent {
				if strings.Contains(out, bad) {
					t.Fatalf("RenderMarkup output %q contains %q", out, bad)
				}
			}
			if got := ansi.Strip(out); got != tt.want {
				t.Fatalf("RenderMarkup text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeTextKeepsTabs(t *testing.T) {
	if got, want := SanitizeText("a\tb \x1b[31mred\x1b[0m"), "a\tb red"; got != want {
		t.Fatalf("SanitizeText = %q, want %q", got, want)
	}
}

func TestForClassesInnermostWins(t *testing.T) {
	theme := GetTheme("Nightfox")
	styles := theme.Styles()

	inner := styles.forClasses([]string{"log-ip", "filter-highlight"})
	if got := inner.GetBackground(); got != styles.classes["filter-highlight"].GetBackground() {
		t.Fatalf("background = %v, want highlight background", got)
	}
	if !inner.GetUnderline() {
		t.Fatalf("outer address underline should be inherited")
	}

	plain := styles.forClasses(nil)
	if got := plain.GetForeground(); got != styles.Text.GetForeground() {
		t.Fatalf("foreground = %v, want base text color", got)
	}
}

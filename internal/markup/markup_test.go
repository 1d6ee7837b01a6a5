package markup

import (
	"regexp"
	"testing"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"angle brackets", "<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"bare ampersand", "a & b", "a &amp; b"},
		{"existing entity", "a &amp; b", "a &amp; b"},
		{"numeric entity", "&#60;x&#x3e;", "&#60;x&#x3e;"},
		{"ampersand without semicolon", "&amp b", "&amp;amp b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Escape(tt.in); got != tt.want {
				t.Fatalf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEscapeIdempotent(t *testing.T) {
	inputs := []string{
		"<b>bold</b>",
		"x < y && y > z",
		"&lt;already&gt;",
		"mixed &amp; <raw> & &#39;",
		"",
	}
	for _, in := range inputs {
		once := Escape(in)
		if twice := Escape(once); twice != once {
			t.Fatalf("Escape not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestEscapeKeepsLiteralReferences(t *testing.T) {
	// A literal reference in the raw text is indistinguishable from one
	// produced by escaping, so it decodes to its character.
	if got, want := Text(Escape("a &amp; b &lt;")), "a & b <"; got != want {
		t.Fatalf("Text(Escape) = %q, want %q", got, want)
	}
}

func TestTokenize(t *testing.T) {
	toks := Tokenize(`a <span class="log-ip">1.2.3.4</span> &lt;b&gt;`)
	if len(toks) != 5 {
		t.Fatalf("Tokenize returned %d tokens, want 5: %#v", len(toks), toks)
	}
	if toks[1].Kind != TokenOpen || toks[1].Class != "log-ip" {
		t.Fatalf("token 1 = %#v, want open log-ip", toks[1])
	}
	if toks[3].Kind != TokenClose {
		t.Fatalf("token 3 = %#v, want close", toks[3])
	}
	if toks[4].Text != " <b>" {
		t.Fatalf("token 4 text = %q, want %q", toks[4].Text, " <b>")
	}
}

func TestText(t *testing.T) {
	in := `2024 <span class="log-error">ERROR</span> x &lt; y`
	if got, want := Text(in), "2024 ERROR x < y"; got != want {
		t.Fatalf("Text = %q, want %q", got, want)
	}
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		name string
		in   string
		term string
		want string
	}{
		{
			name: "inside a tag",
			in:   `to <span class="log-ip">192.168.1.5</span>`,
			term: "192.168",
			want: `to <span class="log-ip"><span class="hl">192.168</span>.1.5</span>`,
		},
		{
			name: "case insensitive",
			in:   `Error and ERROR`,
			term: "error",
			want: `<span class="hl">Error</span> and <span class="hl">ERROR</span>`,
		},
		{
			name: "does not match tag text",
			in:   `<span class="log-info">INFO</span> ok`,
			term: "span",
			want: `<span class="log-info">INFO</span> ok`,
		},
		{
			name: "crosses a tag boundary",
			in:   `x <span class="log-error">ERROR</span>!`,
			term: "x error",
			want: `<span class="hl">x </span><span class="log-error"><span class="hl">ERROR</span></span>!`,
		},
		{
			name: "entity stays whole",
			in:   `a &lt;b&gt;`,
			term: "<b",
			want: `a <span class="hl">&lt;b</span>&gt;`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(tt.term))
			if got := Highlight(tt.in, re, "hl"); got != tt.want {
				t.Fatalf("Highlight = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHighlightPreservesText(t *testing.T) {
	in := `a <span class="log-warn">warn</span> b &amp; c`
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta("a"))
	out := Highlight(in, re, "hl")
	if Text(out) != Text(in) {
		t.Fatalf("Text(Highlight) = %q, want %q", Text(out), Text(in))
	}
}

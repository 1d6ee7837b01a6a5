// Package markup holds the small HTML-ish markup dialect produced by the
// classifier: escaped text interleaved with <span class="..."> tags.
package markup

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// entityRe matches a character reference at the start of a string.
var entityRe = regexp.MustCompile(`^&(?:[A-Za-z][A-Za-z0-9]*|#[0-9]+|#[xX][0-9A-Fa-f]+);`)

// Escape neutralises markup-significant characters. An ampersand that already
// starts a character reference is left alone, so Escape(Escape(s)) == Escape(s).
// The cost is that a raw line containing a literal reference such as "&amp;"
// or "&lt;" displays as "&" or "<", and filtering matches the decoded
// character rather than the literal reference text.
func Escape(s string) string {
	if !strings.ContainsAny(s, "<>&") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '&':
			if entityRe.MatchString(s[i:]) {
				b.WriteByte(c)
			} else {
				b.WriteString("&amp;")
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Span wraps already-escaped inner markup in a classed span.
func Span(class, inner string) string {
	return `<span class="` + class + `">` + inner + `</span>`
}

// TokenKind distinguishes tags from text runs.
type TokenKind int

const (
	TokenText TokenKind = iota
	TokenOpen
	TokenClose
)

// Token is one piece of tokenized markup. Raw is the exact source slice; for
// text tokens Text holds the decoded characters and for opening tags Class
// holds the class attribute.
type Token struct {
	Kind  TokenKind
	Raw   string
	Text  string
	Class string
}

var classAttrRe = regexp.MustCompile(`class="([^"]*)"`)

// Tokenize splits markup into tags and text runs. An unterminated '<' is
// treated as text.
func Tokenize(s string) []Token {
	var toks []Token
	start := 0
	flushText := func(end int) {
		if end > start {
			raw := s[start:end]
			toks = append(toks, Token{Kind: TokenText, Raw: raw, Text: html.UnescapeString(raw)})
		}
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '<' {
			continue
		}
		end := strings.IndexByte(s[i:], '>')
		if end < 0 {
			break
		}
		flushText(i)
		raw := s[i : i+end+1]
		tok := Token{Kind: TokenOpen, Raw: raw}
		if strings.HasPrefix(raw, "</") {
			tok.Kind = TokenClose
		} else if m := classAttrRe.FindStringSubmatch(raw); m != nil {
			tok.Class = m[1]
		}
		toks = append(toks, tok)
		i += end
		start = i + 1
	}
	flushText(len(s))
	return toks
}

// Text returns the plain-text projection of markup: tags dropped, character
// references decoded.
func Text(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	var b strings.Builder
	for _, tok := range Tokenize(s) {
		if tok.Kind == TokenText {
			b.WriteString(tok.Text)
		}
	}
	return b.String()
}

// unit is the smallest indivisible piece of a text run: a single rune or a
// single character reference, with its span in the plain-text projection.
type unit struct {
	raw, text  string
	start, end int
}

func splitUnits(raw string, offset int) []unit {
	units := make([]unit, 0, len(raw))
	for i := 0; i < len(raw); {
		n := 1
		if raw[i] == '&' {
			if loc := entityRe.FindStringIndex(raw[i:]); loc != nil {
				n = loc[1]
			}
		} else {
			_, n = utf8.DecodeRuneInString(raw[i:])
		}
		decoded := raw[i : i+n]
		if n > 1 && raw[i] == '&' {
			decoded = html.UnescapeString(decoded)
		}
		units = append(units, unit{raw: raw[i : i+n], text: decoded, start: offset, end: offset + len(decoded)})
		offset += len(decoded)
		i += n
	}
	return units
}

// Highlight wraps every match of re in the plain-text projection of s with a
// span of the given class. Wrapping happens inside text runs only: a match
// that crosses a tag is closed before the tag and reopened after it, so the
// original tag structure is preserved exactly.
func Highlight(s string, re *regexp.Regexp, class string) string {
	toks := Tokenize(s)

	type piece struct {
		tag  bool
		unit unit
		raw  string
	}
	pieces := make([]piece, 0, len(toks))
	var plain strings.Builder
	for _, tok := range toks {
		if tok.Kind != TokenText {
			pieces = append(pieces, piece{tag: true, raw: tok.Raw})
			continue
		}
		for _, u := range splitUnits(tok.Raw, plain.Len()) {
			pieces = append(pieces, piece{unit: u})
			plain.WriteString(u.text)
		}
	}

	var ranges [][]int
	for _, r := range re.FindAllStringIndex(plain.String(), -1) {
		if r[1] > r[0] {
			ranges = append(ranges, r)
		}
	}
	if len(ranges) == 0 {
		return s
	}

	open := `<span class="` + class + `">`
	var b strings.Builder
	b.Grow(len(s) + len(ranges)*(len(open)+7))
	inside := false
	ri := 0
	for _, p := range pieces {
		if p.tag {
			if inside {
				b.WriteString("</span>")
				inside = false
			}
			b.WriteString(p.raw)
			continue
		}
		for ri < len(ranges) && ranges[ri][1] <= p.unit.start {
			ri++
		}
		matched := ri < len(ranges) && p.unit.start >= ranges[ri][0]
		switch {
		case matched && !inside:
			b.WriteString(open)
			inside = true
		case !matched && inside:
			b.WriteString("</span>")
			inside = false
		}
		b.WriteString(p.unit.raw)
	}
	if inside {
		b.WriteString("</span>")
	}
	return b.String()
}

// Package classify turns a raw log snapshot into escaped, semantically tagged
// lines ordered most recent first.
package classify

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/five82/ducktail/internal/markup"
)

// Severity is the most severe level token found on a line.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityDebug
	SeverityInfo
	SeverityWarn
	SeverityError
)

// String returns the lowercase severity name, or "" for SeverityNone.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return ""
	}
}

// Class returns the span class used for tokens of this severity.
func (s Severity) Class() string {
	if s == SeverityNone {
		return ""
	}
	return "log-" + s.String()
}

// MarshalText lets severities travel as their names in JSON.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// AddressClass is the span class wrapped around IPv4 literals.
const AddressClass = "log-ip"

// Line is one physical log line after escaping and tagging.
type Line struct {
	Markup    string
	Text      string
	Severity  Severity
	Addresses []string
}

// tagRe is evaluated once per line on the escaped text. Alternatives are
// tried in order at each position, so a level= pair wins over its bare value
// and matches never overlap.
var tagRe = regexp.MustCompile(
	`\blevel=(error|warning|warn|info|debug|ERROR|WARNING|WARN|INFO|DEBUG)\b` +
		`|\b(error|failed|warning|warn|info|debug|ERROR|FAILED|WARNING|WARN|INFO|DEBUG)\b` +
		`|\b(\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})\b`,
)

// Classify splits raw into lines, tags each one and returns them newest
// first. Trailing whitespace is dropped before splitting, so an empty or
// blank snapshot yields no lines.
func Classify(raw string) []Line {
	raw = strings.TrimRightFunc(raw, unicode.IsSpace)
	if raw == "" {
		return nil
	}
	segments := strings.Split(raw, "\n")
	lines := make([]Line, len(segments))
	for i, seg := range segments {
		lines[len(segments)-1-i] = ClassifyLine(strings.TrimSuffix(seg, "\r"))
	}
	return lines
}

// ClassifyLine escapes and tags a single line.
func ClassifyLine(text string) Line {
	escaped := markup.Escape(text)
	line := Line{Text: text}

	matches := tagRe.FindAllStringSubmatchIndex(escaped, -1)
	if len(matches) == 0 {
		line.Markup = escaped
		return line
	}

	var b strings.Builder
	b.Grow(len(escaped) + len(matches)*32)
	last := 0
	for _, m := range matches {
		switch {
		case m[2] >= 0:
			// level=<value>: only the value is wrapped.
			value := escaped[m[2]:m[3]]
			sev := parseSeverity(value)
			b.WriteString(escaped[last:m[2]])
			b.WriteString(markup.Span(sev.Class(), value))
			line.Severity = max(line.Severity, sev)
		case m[4] >= 0:
			token := escaped[m[4]:m[5]]
			sev := parseSeverity(token)
			b.WriteString(escaped[last:m[4]])
			b.WriteString(markup.Span(sev.Class(), token))
			line.Severity = max(line.Severity, sev)
		default:
			addr := escaped[m[6]:m[7]]
			b.WriteString(escaped[last:m[6]])
			b.WriteString(markup.Span(AddressClass, addr))
			line.Addresses = append(line.Addresses, addr)
		}
		last = m[1]
	}
	b.WriteString(escaped[last:])
	line.Markup = b.String()
	return line
}

func parseSeverity(token string) Severity {
	switch strings.ToLower(token) {
	case "error", "failed":
		return SeverityError
	case "warn", "warning":
		return SeverityWarn
	case "info":
		return SeverityInfo
	case "debug":
		return SeverityDebug
	default:
		return SeverityNone
	}
}

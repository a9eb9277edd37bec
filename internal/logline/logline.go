// Package logline parses single editor log lines into structured fields.
package logline

import (
	"strings"
	"unicode"
)

// Severity classifies a line for coloring.
type Severity int

const (
	SeverityNormal Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "normal"
	}
}

// LogLine is one parsed record. Values are immutable once returned by Parse.
type LogLine struct {
	Raw      string
	Severity Severity

	Timestamp    string
	HasTimestamp bool

	Category    string
	HasCategory bool

	Message string
}

// Display returns the text shown after the category column: the parsed
// message when any structure was found, otherwise the raw line.
func (l LogLine) Display() string {
	if l.HasCategory || l.HasTimestamp {
		return l.Message
	}
	return l.Raw
}

// Classify derives the severity of a raw line. "error" wins over "warning".
func Classify(raw string) Severity {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "error"):
		return SeverityError
	case strings.Contains(lower, "warning"):
		return SeverityWarning
	default:
		return SeverityNormal
	}
}

// Parse splits a raw line of the form
//
//	[2024.01.01-12.00.00:000][  0]LogRenderer: Warning: shader compile slow
//
// into timestamp, category and message. It never fails: lines without the
// expected shape come back with no category and the raw text as message.
func Parse(raw string) LogLine {
	line := LogLine{Raw: raw, Severity: Classify(raw), Message: raw}

	pos := 0
	if strings.HasPrefix(raw, "[") {
		if end := strings.IndexByte(raw, ']'); end > 0 {
			line.Timestamp = raw[1:end]
			line.HasTimestamp = true
			pos = skipSpace(raw, end+1)

			// Thread marker, e.g. "[  0]". Discarded.
			if pos < len(raw) && raw[pos] == '[' {
				if rel := strings.IndexByte(raw[pos:], ']'); rel >= 0 {
					pos = skipSpace(raw, pos+rel+1)
				}
			}
		}
	}

	rest := strings.TrimLeftFunc(raw[pos:], unicode.IsSpace)
	if line.HasTimestamp {
		line.Message = rest
	}

	colon := strings.IndexByte(rest, ':')
	if colon < 0 {
		return line
	}
	candidate := rest[:colon]
	if candidate == "" || strings.ContainsAny(candidate, " \t") {
		return line
	}
	line.Category = candidate
	line.HasCategory = true
	line.Message = strings.TrimSpace(rest[colon+1:])
	return line
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\r' || s[i] == '\n' || s[i] == '\f') {
		i++
	}
	return i
}

package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// truncateMiddle shortens a string by removing characters from the middle,
// preserving both the beginning and end. For paths, it preserves file extensions.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}

	ellipsis := []rune("…/")
	if limit <= len(ellipsis) {
		return string(runes[:limit])
	}

	// Smart path truncation: preserve file extension if it looks like a path
	isPath := strings.Contains(value, "/") || strings.Contains(value, "\\")
	if isPath {
		// Find the extension
		lastDot := strings.LastIndex(value, ".")
		lastSlash := max(strings.LastIndex(value, "/"), strings.LastIndex(value, "\\"))

		// Only preserve extension if the dot comes after the last slash
		if lastDot > lastSlash && lastDot > 0 {
			ext := value[lastDot:]
			extRunes := []rune(ext)

			// Only preserve if extension is reasonable length (< 10 chars)
			if len(extRunes) < 10 && len(extRunes) < limit/2 {
				baseName := value[:lastDot]
				baseRunes := []rune(baseName)

				// Calculate space for base (accounting for ellipsis and extension)
				baseLimit := limit - len(extRunes) - len(ellipsis)
				if baseLimit > 0 && len(baseRunes) > baseLimit {
					// Truncate base from middle, preserving extension
					prefix := baseLimit / 2
					suffix := baseLimit - prefix
					return string(baseRunes[:prefix]) + string(ellipsis) + string(baseRunes[len(baseRunes)-suffix:]) + ext
				}
			}
		}
	}

	// Default middle truncation
	keep := limit - len(ellipsis)
	prefix := keep / 2
	suffix := keep - prefix
	return string(runes[:prefix]) + string(ellipsis) + string(runes[len(runes)-suffix:])
}

// truncateStyled cuts a styled string to width cells without breaking
// escape sequences.
func truncateStyled(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "")
}

package assemble

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	fallbackName = "presentation"
	maxNameLen   = 100
)

// SafeName derives a filesystem-safe filename base from a presentation
// title: accents folded to their base letters, anything outside
// letters, digits, space, dash, and underscore replaced, length capped.
// Empty or fully unsafe titles fall back to a generic name.
func SafeName(title string) string {
	folded := norm.NFD.String(strings.TrimSpace(title))
	var b strings.Builder
	for _, r := range folded {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining mark left over from decomposition
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune(r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	name := strings.TrimSpace(b.String())
	if runes := []rune(name); len(runes) > maxNameLen {
		name = strings.TrimSpace(string(runes[:maxNameLen]))
	}
	if strings.Trim(name, "_ ") == "" {
		return fallbackName
	}
	return name
}

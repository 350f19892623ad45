package schema

import (
	"fmt"
	"strings"
	"unicode"
)

// cleanNameParts trims punctuation from the ends of each name part and drops empty parts.
func cleanNameParts(parts []string) []string {
	var cleaned []string
	for _, p := range parts {
		cp := strings.TrimFunc(p, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '-' && r != '\'' && r != '.'
		})
		cp = strings.TrimSuffix(cp, ".")
		if cp != "" {
			cleaned = append(cleaned, cp)
		}
	}
	return cleaned
}

// AbbreviateName formats "Amina Okafor" to "Amina O" for compact mentor columns.
// Single-word names and e-mail addresses are returned unchanged.
func AbbreviateName(name string) string {
	trimmed := strings.TrimSpace(name)
	if strings.Contains(trimmed, "@") {
		return trimmed
	}
	trimmed = strings.Trim(trimmed, "()\"'`")
	cleaned := cleanNameParts(strings.Fields(trimmed))

	switch {
	case len(cleaned) >= 2:
		last := []rune(cleaned[len(cleaned)-1])
		return cleaned[0] + " " + string(last[0])
	case len(cleaned) == 1:
		return cleaned[0]
	default:
		return trimmed
	}
}

// FormatPercent renders a section score as "NN%" or "-" when no item was scored.
func FormatPercent(s SectionScore) string {
	p, ok := s.Percent()
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%d%%", p)
}

// FormatRatio renders a section score as "score/max".
func FormatRatio(s SectionScore) string {
	return fmt.Sprintf("%d/%d", s.Score, s.MaxScore)
}

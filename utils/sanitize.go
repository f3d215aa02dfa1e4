package utils

import (
	"regexp"
	"strings"
)

var (
	markupTags  = regexp.MustCompile(`<.*?>`)
	unsafeRunes = regexp.MustCompile(`[^\w\s,.-]`)
)

// SanitizeText strips surrounding whitespace, removes anything resembling a
// markup tag and keeps only alphanumerics, whitespace, commas, periods and
// dashes. Empty input yields an empty string.
func SanitizeText(text string) string {
	if text == "" {
		return ""
	}
	clean := markupTags.ReplaceAllString(text, "")
	clean = unsafeRunes.ReplaceAllString(clean, "")
	return strings.TrimSpace(clean)
}

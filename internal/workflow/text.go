package workflow

import "strings"

// DefaultAudience replaces a blank audience descriptor.
const DefaultAudience = "general audience"

// NormalizeAudience trims the input and substitutes DefaultAudience when nothing remains.
func NormalizeAudience(input string) string {
	if trimmed := strings.TrimSpace(input); trimmed != "" {
		return trimmed
	}
	return DefaultAudience
}

// Paragraphs splits feedback on newlines for display. Empty segments are kept
// as blank paragraphs.
func Paragraphs(feedback string) []string {
	if feedback == "" {
		return nil
	}
	return strings.Split(feedback, "\n")
}

// TitleLines splits an extraction result into its ordered titles.
func TitleLines(titles string) []string {
	if titles == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(titles, "\n"), "\n")
}

package graph

import (
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`[^A-Za-z0-9]+`)

// Slugify converts free-form text into a lowercase identifier-safe token:
// every run of non-alphanumeric characters collapses to a single dash and
// leading/trailing dashes are trimmed. Entirely symbolic input yields "".
// The same text always yields the same token, so slugs double as natural
// keys for cross-file references by name.
func Slugify(value string) string {
	if value == "" {
		return ""
	}
	slug := slugPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(value)), "-")
	return strings.Trim(slug, "-")
}

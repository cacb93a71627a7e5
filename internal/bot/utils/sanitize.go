package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// MaxInputLength caps free-text answers.
const MaxInputLength = 2000

var strictPolicy = bluemonday.StrictPolicy()

// CleanInput strips markup from a user's free-text answer. The result is
// plain text: entities are decoded back and whitespace runs are collapsed.
func CleanInput(s string) string {
	s = html.UnescapeString(strictPolicy.Sanitize(s))
	s = strings.Join(strings.Fields(s), " ")
	return TruncateString(s, MaxInputLength)
}

package titlegen

import (
	"regexp"
	"strings"
)

// MaxTitleLength is the hard cap on stored titles.
const MaxTitleLength = 100

var leadInPattern = regexp.MustCompile(`(?i)^(title:|the title is:|generated title:)\s*`)

// CleanTitle normalizes a raw completion into a storable title. The steps
// are order-sensitive: trim, strip one leading/trailing quote character,
// strip a lead-in phrase, trim again, then truncate with an ellipsis when
// the result exceeds MaxTitleLength.
func CleanTitle(raw string) string {
	title := strings.TrimSpace(raw)
	title = stripQuotes(title)
	title = leadInPattern.ReplaceAllString(title, "")
	title = strings.TrimSpace(title)

	if runes := []rune(title); len(runes) > MaxTitleLength {
		title = string(runes[:MaxTitleLength-3]) + "..."
	}
	return title
}

// stripQuotes removes at most one quote character from each end.
func stripQuotes(s string) string {
	const quotes = `"'` + "`"

	if len(s) > 0 && strings.ContainsRune(quotes, rune(s[0])) {
		s = s[1:]
	}
	if len(s) > 0 && strings.ContainsRune(quotes, rune(s[len(s)-1])) {
		s = s[:len(s)-1]
	}
	return s
}

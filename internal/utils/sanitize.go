package utils

import "github.com/microcosm-cc/bluemonday"

var (
	richTextPolicy = bluemonday.UGCPolicy()
	strictPolicy   = bluemonday.StrictPolicy()
)

// SanitizeRichText keeps common formatting markup and strips scripts and
// event handlers from user-authored rich text field values.
func SanitizeRichText(html string) string {
	return richTextPolicy.Sanitize(html)
}

// StripMarkup removes every tag. Applied to values that must never contain
// markup at all, e.g. the raw CSS override on a theme.
func StripMarkup(text string) string {
	return strictPolicy.Sanitize(text)
}

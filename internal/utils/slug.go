package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases, collapses non-alphanumeric runs to single hyphens and
// trims leading/trailing hyphens. Deterministic.
func Slugify(text string) string {
	s := nonAlnum.ReplaceAllString(strings.ToLower(text), "-")
	return strings.Trim(s, "-")
}

// SnakeCase is Slugify with underscores, used for machine field keys.
func SnakeCase(text string) string {
	s := nonAlnum.ReplaceAllString(strings.ToLower(text), "_")
	return strings.Trim(s, "_")
}

// ShortSuffix returns a short random token for deterministic-shape slug
// disambiguation ("hello" -> "hello-1a2b3c4d").
func ShortSuffix() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}

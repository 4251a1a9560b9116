package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"About Us", "about-us"},
		{"First Day of Term!", "first-day-of-term"},
		{"  spaced   out  ", "spaced-out"},
		{"Déjà vu", "d-j-vu"},
		{"---", ""},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Slugify(c.in), "Slugify(%q)", c.in)
	}
}

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "published_date", SnakeCase("Published Date"))
	assert.Equal(t, "title", SnakeCase("Title"))
	assert.Equal(t, "already_snake", SnakeCase("already_snake"))
}

func TestShortSuffix(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		s := ShortSuffix()
		assert.Len(t, s, 8)
		assert.False(t, seen[s], "suffixes must not repeat")
		seen[s] = true
	}
}

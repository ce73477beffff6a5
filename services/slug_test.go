package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"punctuation collapses", "Hello, World!", "hello-world"},
		{"multiple separators collapse", "Hello --  World", "hello-world"},
		{"leading and trailing trimmed", "  !Hello World?  ", "hello-world"},
		{"diacritics folded", "Canción de Adoración", "cancion-de-adoracion"},
		{"numbers kept", "Top 10 Worship Songs of 2025", "top-10-worship-songs-of-2025"},
		{"uppercase lowered", "PRAISE NIGHT", "praise-night"},
		{"only punctuation", "!!!", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.title))
		})
	}
}

func TestUniqueSlug(t *testing.T) {
	t.Run("free slug is used as-is", func(t *testing.T) {
		assert.Equal(t, "hello-world", uniqueSlug("Hello World", map[string]bool{}))
	})

	t.Run("collision appends smallest free suffix", func(t *testing.T) {
		taken := map[string]bool{
			"hello-world":   true,
			"hello-world-1": true,
		}
		assert.Equal(t, "hello-world-2", uniqueSlug("Hello World!", taken))
	})

	t.Run("gap in suffixes is filled", func(t *testing.T) {
		taken := map[string]bool{
			"hello-world":   true,
			"hello-world-2": true,
		}
		assert.Equal(t, "hello-world-1", uniqueSlug("Hello World", taken))
	})

	t.Run("empty title falls back to post", func(t *testing.T) {
		assert.Equal(t, "post", uniqueSlug("???", map[string]bool{}))
	})
}

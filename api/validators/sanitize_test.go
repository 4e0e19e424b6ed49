package validators

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeString_TrimsAndTruncates(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello  ", 100))
	assert.Equal(t, "hel", SanitizeString("hello", 3))
	assert.Equal(t, "hello", SanitizeString("hello", 0))
}

func TestSanitizeString_NeverSplitsRune(t *testing.T) {
	// "é" is two bytes; a cut inside it must back up to the rune start
	input := "café"
	got := SanitizeString(input, 4)
	assert.Equal(t, "caf", got)
	assert.True(t, utf8.ValidString(got))

	long := strings.Repeat("ü", 50)
	for maxLen := 1; maxLen <= 10; maxLen++ {
		assert.True(t, utf8.ValidString(SanitizeString(long, maxLen)))
	}
}

package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateEnd(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 6, "hello…"},
		{"hello", 1, "…"},
		{"hello", 0, ""},
		{"héllo wörld", 4, "hél…"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncateEnd(tt.in, tt.limit), "%q/%d", tt.in, tt.limit)
	}
}

func TestTruncateMiddle(t *testing.T) {
	assert.Equal(t, "https://cdn.test/a.mp4", truncateMiddle("https://cdn.test/a.mp4", 40))
	assert.Equal(t, "htt….mp4", truncateMiddle("https://cdn.test/reel.mp4", 8))
	assert.Equal(t, "…", truncateMiddle("abc", 1))
	assert.Equal(t, "", truncateMiddle("abc", -1))
}

func TestWrapLines(t *testing.T) {
	lines := wrapLines("one two three four five six", 9, 5)
	assert.Equal(t, []string{"one two", "three", "four five", "six"}, lines)

	cut := wrapLines("one two three four five six", 9, 2)
	assert.Len(t, cut, 2)
	assert.Equal(t, "three…", cut[1])

	assert.Nil(t, wrapLines("x", 0, 2))
	assert.Nil(t, wrapLines("x", 5, 0))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "abc", padRight("abcdef", 3))
	assert.Equal(t, "ü   ", padRight("ü", 4))
}

func TestClipRunes(t *testing.T) {
	assert.Equal(t, "bcd", clipRunes("abcdef", 1, 4))
	assert.Equal(t, "ab", clipRunes("abcdef", -2, 2))
	assert.Equal(t, "ef", clipRunes("abcdef", 4, 99))
	assert.Equal(t, "", clipRunes("abcdef", 4, 2))
}

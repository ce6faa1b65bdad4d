package chunker

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/text-insight/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(n int) string {
	w := make([]string, n)
	for i := range w {
		w[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(w, " ")
}

func TestSplitWordsProperties(t *testing.T) {
	tests := []struct {
		words int
		size  int
	}{
		{1, 1},
		{10, 3},
		{12, 4},
		{511, 512},
		{512, 512},
		{513, 512},
		{1500, 512},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("W=%d C=%d", tt.words, tt.size), func(t *testing.T) {
			text := words(tt.words)
			chunks := SplitWords(text, tt.size)

			want := (tt.words + tt.size - 1) / tt.size
			require.Len(t, chunks, want)

			for i, c := range chunks {
				n := len(strings.Fields(c))
				if i < len(chunks)-1 {
					assert.Equal(t, tt.size, n, "chunk %d", i)
				} else {
					assert.LessOrEqual(t, n, tt.size)
					assert.Positive(t, n)
				}
			}
			assert.Equal(t, text, strings.Join(chunks, " "))
		})
	}
}

func TestSplitWordsNormalizesWhitespace(t *testing.T) {
	text := "  The  story\nof\tBaahubali \n\n spans   two films  "

	chunks := SplitWords(text, 2)

	assert.Equal(t, []string{"The story", "of Baahubali", "spans two", "films"}, chunks)
	assert.Equal(t, strings.Join(strings.Fields(text), " "), strings.Join(chunks, " "))
}

func TestSplitWordsEdgeCases(t *testing.T) {
	assert.Nil(t, SplitWords("", 5))
	assert.Nil(t, SplitWords(" \n\t", 5))
	assert.Equal(t, []string{"a b c"}, SplitWords("a b c", 0))
	assert.Equal(t, []string{"a b c"}, SplitWords("a b c", -2))
}

type wordCounter struct{}

func (wordCounter) CountTokens(text string) int {
	return len(strings.Fields(text))
}

func TestSplitWithoutGuard(t *testing.T) {
	c := New(4, 0, wordCounter{}, logger.NewNop())

	chunks := c.Split(context.Background(), words(10))

	assert.Len(t, chunks, 3)
}

func TestSplitHalvesOversizedChunks(t *testing.T) {
	c := New(8, 3, wordCounter{}, logger.NewNop())
	text := words(10)

	chunks := c.Split(context.Background(), text)

	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(strings.Fields(chunk)), 3)
	}
	assert.Equal(t, text, strings.Join(chunks, " "))
	// 8 -> 4+4 -> 2+2+2+2, then 2 fits as is.
	assert.Len(t, chunks, 5)
}

type constCounter int

func (c constCounter) CountTokens(string) int { return int(c) }

func TestSplitKeepsSingleWordChunks(t *testing.T) {
	c := New(2, 1, constCounter(100), logger.NewNop())

	chunks := c.Split(context.Background(), "alpha beta")

	assert.Equal(t, []string{"alpha", "beta"}, chunks)
}

func TestWordEstimate(t *testing.T) {
	assert.Equal(t, 0, WordEstimate{}.CountTokens(""))
	assert.Equal(t, 2, WordEstimate{}.CountTokens("one"))
	assert.Equal(t, 4, WordEstimate{}.CountTokens("one two three"))
}

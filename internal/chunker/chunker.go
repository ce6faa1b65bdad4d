package chunker

import (
	"context"
	"strings"
)

// SplitWords groups the whitespace-separated words of text into chunks of size words.
// The last chunk may be shorter. size <= 0 keeps every word in one chunk.
func SplitWords(text string, size int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if size <= 0 {
		size = len(words)
	}

	chunks := make([]string, 0, (len(words)+size-1)/size)
	for i := 0; i < len(words); i += size {
		end := min(i+size, len(words))
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}

// Split chunks text by word count, then halves any chunk over the token limit.
func (c *implChunker) Split(ctx context.Context, text string) []string {
	chunks := SplitWords(text, c.size)
	if c.maxTokens <= 0 {
		return chunks
	}

	fitted := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		parts := c.fit(chunk)
		if len(parts) > 1 {
			c.logger.Warn(ctx, "Chunk %d exceeds %d tokens, split into %d parts", i+1, c.maxTokens, len(parts))
		}
		fitted = append(fitted, parts...)
	}
	return fitted
}

func (c *implChunker) fit(chunk string) []string {
	if c.counter.CountTokens(chunk) <= c.maxTokens {
		return []string{chunk}
	}

	words := strings.Fields(chunk)
	if len(words) <= 1 {
		return []string{chunk}
	}

	mid := len(words) / 2
	left := c.fit(strings.Join(words[:mid], " "))
	right := c.fit(strings.Join(words[mid:], " "))
	return append(left, right...)
}

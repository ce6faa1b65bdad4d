package chunker

import "context"

// Chunker splits a document into word-bounded chunks small enough for a model.
type Chunker interface {
	Split(ctx context.Context, text string) []string
}

// TokenCounter estimates how many model tokens a text occupies.
type TokenCounter interface {
	CountTokens(text string) int
}

package chunker

import (
	"github.com/nguyentantai21042004/text-insight/internal/logger"
)

type implChunker struct {
	size      int
	maxTokens int
	counter   TokenCounter
	logger    logger.Logger
}

// New creates a Chunker grouping size words per chunk.
// Chunks above maxTokens are split further; maxTokens <= 0 disables the guard.
func New(size, maxTokens int, counter TokenCounter, log logger.Logger) Chunker {
	if counter == nil {
		counter = WordEstimate{}
	}
	return &implChunker{
		size:      size,
		maxTokens: maxTokens,
		counter:   counter,
		logger:    log,
	}
}

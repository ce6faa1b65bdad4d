package summarizer

import (
	"github.com/nguyentantai21042004/text-insight/internal/chunker"
	"github.com/nguyentantai21042004/text-insight/internal/inference"
	"github.com/nguyentantai21042004/text-insight/internal/logger"
)

// Options tunes a Summarizer.
type Options struct {
	MaxConcurrent int
	Docx          bool
}

type implSummarizer struct {
	backend       inference.Summarizer
	chunker       chunker.Chunker
	logger        logger.Logger
	maxConcurrent int
	docx          bool
}

// New creates a Summarizer that splits with c and summarizes each chunk with backend.
func New(backend inference.Summarizer, c chunker.Chunker, log logger.Logger, opts Options) Summarizer {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}
	return &implSummarizer{
		backend:       backend,
		chunker:       c,
		logger:        log,
		maxConcurrent: opts.MaxConcurrent,
		docx:          opts.Docx,
	}
}

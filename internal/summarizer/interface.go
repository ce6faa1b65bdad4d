package summarizer

import (
	"context"
	"time"
)

// Summarizer condenses documents chunk by chunk.
type Summarizer interface {
	// Summarize returns the chunk summaries of text joined with single spaces.
	Summarize(ctx context.Context, text string) (Result, error)
	// SummarizeFile summarizes one document and writes its report into destDir.
	// It returns the path of the markdown report.
	SummarizeFile(ctx context.Context, path, destDir string) (string, error)
	// SummarizeAll summarizes every text document in srcDir into destDir.
	SummarizeAll(ctx context.Context, srcDir, destDir string) error
}

// Result is the outcome of one Summarize call.
type Result struct {
	Summary  string
	Chunks   []string
	Parts    []string
	Duration time.Duration
}

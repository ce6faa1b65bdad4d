package summarizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nguyentantai21042004/text-insight/internal/document"
	"golang.org/x/sync/errgroup"
)

// Summarize splits text into chunks, summarizes them concurrently and joins the
// summaries in chunk order. The first failing chunk cancels the rest.
func (s *implSummarizer) Summarize(ctx context.Context, text string) (Result, error) {
	startTime := time.Now()

	chunks := s.chunker.Split(ctx, text)
	if len(chunks) == 0 {
		return Result{}, document.ErrEmptyDocument
	}
	s.logger.Info(ctx, "Summarizing %d chunk(s) with up to %d in flight", len(chunks), s.maxConcurrent)

	parts := make([]string, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for i, chunk := range chunks {
		g.Go(func() error {
			s.logger.Debug(gctx, "[%d/%d] Summarizing chunk (%d words)", i+1, len(chunks), len(strings.Fields(chunk)))
			summary, err := s.backend.Summarize(gctx, chunk)
			if err != nil {
				return fmt.Errorf("summarize chunk %d: %w", i+1, err)
			}
			parts[i] = summary
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	result := Result{
		Summary:  strings.Join(parts, " "),
		Chunks:   chunks,
		Parts:    parts,
		Duration: time.Since(startTime),
	}
	s.logger.Info(ctx, "Summary ready in %s", result.Duration)
	return result, nil
}

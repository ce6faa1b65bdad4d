package summarizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nguyentantai21042004/text-insight/internal/document"
)

// ErrSameDir is returned by SummarizeAll when reports would be written over the sources.
var ErrSameDir = errors.New("destination directory is the source directory")

// SummarizeFile summarizes one document and writes <name>.md (and <name>.docx
// when enabled) into destDir.
func (s *implSummarizer) SummarizeFile(ctx context.Context, path, destDir string) (string, error) {
	return s.summarizeFile(ctx, path, document.Title(path), destDir)
}

func (s *implSummarizer) summarizeFile(ctx context.Context, path, title, destDir string) (string, error) {
	text, err := document.Load(path)
	if err != nil {
		return "", err
	}

	result, err := s.Summarize(ctx, text)
	if err != nil {
		return "", err
	}

	return s.writeReport(ctx, title, result, destDir)
}

// SummarizeAll reads every text document from srcDir, summarizes it,
// and writes individual reports into destDir. Failures are logged and skipped.
func (s *implSummarizer) SummarizeAll(ctx context.Context, srcDir, destDir string) error {
	same, err := sameDir(srcDir, destDir)
	if err != nil {
		return err
	}
	if same {
		return fmt.Errorf("summarize %s: %w", srcDir, ErrSameDir)
	}

	files, err := s.discoverDocuments(srcDir)
	if err != nil {
		return fmt.Errorf("discover documents: %w", err)
	}

	if len(files) == 0 {
		s.logger.Info(ctx, "No documents found in %s", srcDir)
		return nil
	}

	s.logger.Info(ctx, "Found %d documents to summarize", len(files))
	titles := reportTitles(files)

	successCount := 0
	failCount := 0

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := titles[path]
		s.logger.Info(ctx, "[%d/%d] Summarizing: %s", i+1, len(files), name)

		mdPath, err := s.summarizeFile(ctx, path, name, destDir)
		if err != nil {
			s.logger.Error(ctx, "Failed to summarize %s: %v", name, err)
			failCount++
			continue
		}

		s.logger.Info(ctx, "[DONE] %s -> %s", name, mdPath)
		successCount++
	}

	s.logger.Info(ctx, "Summary complete: %d success, %d failed", successCount, failCount)
	return nil
}

// sameDir reports whether a and b resolve to the same directory.
// A destination that does not exist yet is never the source.
func sameDir(a, b string) (bool, error) {
	ai, err := os.Stat(a)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", a, err)
	}
	bi, err := os.Stat(b)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", b, err)
	}
	return os.SameFile(ai, bi), nil
}

// reportTitles names each report after its document. Documents sharing a title
// (notes.md and notes.txt) keep their extension so neither report overwrites the other.
func reportTitles(files []string) map[string]string {
	counts := make(map[string]int, len(files))
	for _, path := range files {
		counts[document.Title(path)]++
	}

	titles := make(map[string]string, len(files))
	for _, path := range files {
		title := document.Title(path)
		if counts[title] > 1 {
			title = filepath.Base(path)
		}
		titles[path] = title
	}
	return titles
}

// WriteReport writes a summary report for an already computed result.
func WriteReport(title string, result Result, destDir string, docx bool) (string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("create dest dir: %w", err)
	}

	md := renderMarkdown(title, result, time.Now())
	mdPath := filepath.Join(destDir, title+".md")
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", mdPath, err)
	}

	if docx {
		docxPath := filepath.Join(destDir, title+".docx")
		if err := markdownToDocx(md, docxPath); err != nil {
			return mdPath, fmt.Errorf("write %s: %w", docxPath, err)
		}
	}

	return mdPath, nil
}

func (s *implSummarizer) writeReport(ctx context.Context, title string, result Result, destDir string) (string, error) {
	mdPath, err := WriteReport(title, result, destDir, s.docx)
	if err != nil && mdPath != "" {
		// The markdown report exists; a failed docx export is not fatal.
		s.logger.Warn(ctx, "Failed to export docx for %s: %v", title, err)
		return mdPath, nil
	}
	return mdPath, err
}

func renderMarkdown(title string, result Result, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n_%s_\n\n", title, at.Format("2006-01-02 15:04"))
	b.WriteString("## Summary\n\n")
	b.WriteString(strings.TrimSpace(result.Summary))
	b.WriteString("\n")

	if len(result.Parts) > 1 {
		b.WriteString("\n## Sections\n\n")
		for i, part := range result.Parts {
			fmt.Fprintf(&b, "%d. %s\n", i+1, strings.TrimSpace(part))
		}
	}
	return b.String()
}

func (s *implSummarizer) discoverDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if document.IsSupported(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/text-insight/internal/document"
	"github.com/nguyentantai21042004/text-insight/internal/qa"
	"github.com/nguyentantai21042004/text-insight/internal/repl"
	"github.com/nguyentantai21042004/text-insight/internal/summarizer"
	"github.com/nguyentantai21042004/text-insight/internal/watcher"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	f := &flags{}
	var file string

	root := &cobra.Command{
		Use:   "insight",
		Short: "Summarize a document and answer questions about it",
		Long: `insight summarizes a document chunk by chunk, prints the summary,
then answers questions about the full text until you type 'exit'.
Without --file the built-in document is used.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, f)
			if err != nil {
				return err
			}
			return runInteractive(ctx, a, file, cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "config.yaml", "path to the YAML config file")
	pf.StringVar(&f.backend, "backend", "", "inference backend: huggingface, gemini, openai, ollama or command")
	pf.IntVar(&f.chunkSize, "chunk-size", 0, "words per chunk")
	pf.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")
	root.Flags().StringVarP(&file, "file", "f", "", "document to load instead of the built-in one")

	root.AddCommand(
		newSummarizeCmd(f),
		newAskCmd(f),
		newBatchCmd(f),
		newWatchCmd(f),
	)
	return root
}

func runInteractive(ctx context.Context, a *app, file string, cmd *cobra.Command) error {
	text, err := document.Load(file)
	if err != nil {
		return err
	}

	result, err := a.summarizer.Summarize(ctx, text)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Summary: %s\n", result.Summary)

	session, err := qa.NewSession(text, a.backend, a.cfg.QA.CacheSize, a.log)
	if err != nil {
		return err
	}

	err = repl.New(session, a.log).Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func newSummarizeCmd(f *flags) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "summarize [file]",
		Short: "Print the summary of a document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, f)
			if err != nil {
				return err
			}

			var path string
			if len(args) == 1 {
				path = args[0]
			}
			text, err := document.Load(path)
			if err != nil {
				return err
			}

			result, err := a.summarizer.Summarize(ctx, text)
			if err != nil {
				return fmt.Errorf("summarize: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Summary: %s\n", result.Summary)

			if outDir != "" {
				mdPath, err := summarizer.WriteReport(document.Title(path), result, outDir, a.cfg.Output.Docx)
				if err != nil {
					return err
				}
				a.log.Info(ctx, "Report written: %s", mdPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "also write a report into this directory")
	return cmd
}

func newAskCmd(f *flags) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Answer one question about a document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, f)
			if err != nil {
				return err
			}

			text, err := document.Load(file)
			if err != nil {
				return err
			}

			session, err := qa.NewSession(text, a.backend, 0, a.log)
			if err != nil {
				return err
			}
			answer, err := session.Ask(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Answer: %s\n", answer.Text)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "document to load instead of the built-in one")
	return cmd
}

func newBatchCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <src-dir> <dest-dir>",
		Short: "Summarize every text document in a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, f)
			if err != nil {
				return err
			}
			return a.summarizer.SummarizeAll(ctx, args[0], args[1])
		},
	}
}

func newWatchCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Summarize documents as they appear in the input directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, f)
			if err != nil {
				return err
			}
			return runWatch(ctx, a)
		},
	}
}

func runWatch(ctx context.Context, a *app) error {
	if err := ensureDirectories(a.cfg.Paths.Input, a.cfg.Paths.Output, processedDir(a)); err != nil {
		return err
	}

	handler := func(ctx context.Context, path string) error {
		mdPath, err := a.summarizer.SummarizeFile(ctx, path, a.cfg.Paths.Output)
		if err != nil {
			return err
		}
		a.log.Info(ctx, "[DONE] %s -> %s", filepath.Base(path), mdPath)

		// Move the source aside so it is not summarized again.
		dest := filepath.Join(processedDir(a), filepath.Base(path))
		if err := os.Rename(path, dest); err != nil {
			a.log.Warn(ctx, "Failed to move %s to %s: %v", path, dest, err)
		}
		return nil
	}

	w, err := watcher.New(a.cfg.Paths.Input, handler, a.log, a.cfg.Performance.MaxConcurrent)
	if err != nil {
		return err
	}
	defer w.Stop()

	a.log.Info(ctx, "Watching %s, reports go to %s. Press Ctrl+C to stop", a.cfg.Paths.Input, a.cfg.Paths.Output)

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	a.log.Info(ctx, "Watcher stopped")
	return nil
}

func processedDir(a *app) string {
	return filepath.Join(a.cfg.Paths.Output, "processed")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

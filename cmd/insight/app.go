package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/nguyentantai21042004/text-insight/internal/chunker"
	"github.com/nguyentantai21042004/text-insight/internal/config"
	"github.com/nguyentantai21042004/text-insight/internal/inference"
	"github.com/nguyentantai21042004/text-insight/internal/logger"
	"github.com/nguyentantai21042004/text-insight/internal/summarizer"
	"github.com/nguyentantai21042004/text-insight/pkg/executor"
)

// flags holds the global command line overrides.
type flags struct {
	configPath string
	backend    string
	chunkSize  int
	logLevel   string
}

// app is the wired set of dependencies shared by every command.
type app struct {
	cfg        *config.Config
	log        logger.Logger
	backend    inference.Backend
	summarizer summarizer.Summarizer
}

func loadConfig(f *flags) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(f.configPath)
	if err != nil {
		return nil, err
	}

	overridden := false
	if f.backend != "" {
		cfg.Backend = f.backend
		overridden = true
	}
	if f.chunkSize > 0 {
		cfg.Chunking.Size = f.chunkSize
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if overridden {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("validate config: %w", err)
		}
	}
	return cfg, nil
}

func newApp(ctx context.Context, f *flags) (*app, error) {
	cfg, err := loadConfig(f)
	if err != nil {
		return nil, err
	}

	log := logger.NewWithOptions(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	log.Debug(ctx, "System: %s/%s, CPU cores: %d", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	log.Info(ctx, "Backend: %s, chunk size: %d words, max tokens: %d",
		cfg.Backend, cfg.Chunking.Size, cfg.Chunking.MaxTokens)

	backend, err := inference.New(cfg, executor.New(), log)
	if err != nil {
		return nil, err
	}

	c := chunker.New(cfg.Chunking.Size, cfg.Chunking.MaxTokens, tokenCounter(ctx, cfg, log), log)
	s := summarizer.New(backend, c, log, summarizer.Options{
		MaxConcurrent: cfg.Performance.MaxConcurrent,
		Docx:          cfg.Output.Docx,
	})

	return &app{
		cfg:        cfg,
		log:        log,
		backend:    backend,
		summarizer: s,
	}, nil
}

// tokenCounter loads the BPE encoding when the token guard is on and falls back
// to a word estimate if it cannot be loaded.
func tokenCounter(ctx context.Context, cfg *config.Config, log logger.Logger) chunker.TokenCounter {
	if cfg.Chunking.MaxTokens <= 0 {
		return nil
	}
	counter, err := chunker.NewTiktokenCounter(cfg.Chunking.Encoding)
	if err != nil {
		log.Warn(ctx, "Token encoding unavailable, estimating from word counts: %v", err)
		return chunker.WordEstimate{}
	}
	return counter
}

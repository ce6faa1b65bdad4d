package inference

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/text-insight/internal/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

type implLangchain struct {
	name string
	llm  llms.Model
}

// NewOpenAI creates a backend for OpenAI or any OpenAI compatible server.
func NewOpenAI(cfg config.OpenAIConfig) (Backend, error) {
	opts := []openai.Option{
		openai.WithModel(cfg.Model),
		openai.WithToken(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}
	return NewLangchain(config.BackendOpenAI, llm), nil
}

// NewOllama creates a backend for a local Ollama server.
func NewOllama(cfg config.OllamaConfig) (Backend, error) {
	opts := []ollama.Option{ollama.WithModel(cfg.Model)}
	if cfg.ServerURL != "" {
		opts = append(opts, ollama.WithServerURL(cfg.ServerURL))
	}
	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, err
	}
	return NewLangchain(config.BackendOllama, llm), nil
}

// NewLangchain adapts any langchaingo model into a Backend.
func NewLangchain(name string, llm llms.Model) Backend {
	return &implLangchain{name: name, llm: llm}
}

func (l *implLangchain) Name() string {
	return l.name
}

func (l *implLangchain) Summarize(ctx context.Context, text string) (string, error) {
	prompt, err := summaryPrompt(text)
	if err != nil {
		return "", err
	}
	return l.generate(ctx, prompt)
}

func (l *implLangchain) Answer(ctx context.Context, question, passage string) (Answer, error) {
	prompt, err := questionPrompt(question, passage)
	if err != nil {
		return Answer{}, err
	}
	text, err := l.generate(ctx, prompt)
	if err != nil {
		return Answer{}, err
	}
	return Answer{Text: text}, nil
}

func (l *implLangchain) generate(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, l.llm, prompt, llms.WithTemperature(0))
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("generate: %w", classify(l.name, err))
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", ErrEmptyOutput
	}
	return out, nil
}

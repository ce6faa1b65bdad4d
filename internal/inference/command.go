package inference

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/text-insight/internal/config"
	"github.com/nguyentantai21042004/text-insight/pkg/executor"
)

type implCommand struct {
	cfg      config.CommandConfig
	executor executor.Executor
}

// NewCommand creates a backend that pipes each prompt into a local command,
// for example `ollama run llama3.2` or a llama.cpp binary.
func NewCommand(cfg config.CommandConfig, exec executor.Executor) Backend {
	return &implCommand{
		cfg:      cfg,
		executor: exec,
	}
}

func (c *implCommand) Name() string {
	return "command"
}

func (c *implCommand) Summarize(ctx context.Context, text string) (string, error) {
	prompt, err := summaryPrompt(text)
	if err != nil {
		return "", err
	}
	return c.run(ctx, prompt)
}

func (c *implCommand) Answer(ctx context.Context, question, passage string) (Answer, error) {
	prompt, err := questionPrompt(question, passage)
	if err != nil {
		return Answer{}, err
	}
	text, err := c.run(ctx, prompt)
	if err != nil {
		return Answer{}, err
	}
	return Answer{Text: text}, nil
}

func (c *implCommand) run(ctx context.Context, prompt string) (string, error) {
	out, err := c.executor.ExecuteWithInput(ctx, prompt, c.cfg.Binary, c.cfg.Args...)
	if err != nil {
		return "", fmt.Errorf("run %s: %w", c.cfg.Binary, err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", ErrEmptyOutput
	}
	return out, nil
}

package inference

import (
	"fmt"

	"github.com/nguyentantai21042004/text-insight/internal/config"
	"github.com/nguyentantai21042004/text-insight/internal/logger"
	"github.com/nguyentantai21042004/text-insight/pkg/executor"
)

// New builds the backend selected by cfg.Backend, wrapped with retries.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) (Backend, error) {
	var (
		backend Backend
		err     error
	)

	switch cfg.Backend {
	case config.BackendHuggingFace:
		backend = NewHuggingFace(cfg.HuggingFace)
	case config.BackendGemini:
		backend = NewGemini(cfg.Gemini, log)
	case config.BackendOpenAI:
		backend, err = NewOpenAI(cfg.OpenAI)
	case config.BackendOllama:
		backend, err = NewOllama(cfg.Ollama)
	case config.BackendCommand:
		backend = NewCommand(cfg.Command, exec)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s backend: %w", cfg.Backend, err)
	}

	return WithRetry(backend, cfg.Retry, log), nil
}

package inference

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/text-insight/internal/config"
	"github.com/nguyentantai21042004/text-insight/internal/logger"
	"google.golang.org/genai"
)

// generateFunc sends one prompt to model using a single API key.
type generateFunc func(ctx context.Context, key, model, prompt string) (string, error)

type implGemini struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	logger     logger.Logger
	model      string
	generate   generateFunc
}

// NewGemini creates a backend that rotates through the supplied Gemini API keys.
func NewGemini(cfg config.GeminiConfig, log logger.Logger) Backend {
	return &implGemini{
		apiKeys:  cfg.APIKeys,
		logger:   log,
		model:    cfg.Model,
		generate: generateContent,
	}
}

func (g *implGemini) Name() string {
	return "gemini"
}

func (g *implGemini) Summarize(ctx context.Context, text string) (string, error) {
	prompt, err := summaryPrompt(text)
	if err != nil {
		return "", err
	}
	return g.callGemini(ctx, prompt)
}

func (g *implGemini) Answer(ctx context.Context, question, passage string) (Answer, error) {
	prompt, err := questionPrompt(question, passage)
	if err != nil {
		return Answer{}, err
	}
	text, err := g.callGemini(ctx, prompt)
	if err != nil {
		return Answer{}, err
	}
	return Answer{Text: text}, nil
}

// callGemini sends the prompt to Gemini and returns the response text.
// Rotates API keys on 429 / quota errors.
func (g *implGemini) callGemini(ctx context.Context, prompt string) (string, error) {
	attempts := len(g.apiKeys)
	if attempts == 0 {
		return "", fmt.Errorf("gemini: no API keys configured")
	}
	var lastErr error

	for range attempts {
		key, idx := g.key()

		out, err := g.generate(ctx, key, g.model, prompt)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			classified := classify(g.Name(), err)
			if se, ok := classified.(*StatusError); ok && se.Code == http.StatusTooManyRequests {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				g.rotateKey(idx)
				lastErr = classified
				continue
			}
			return "", fmt.Errorf("generate content: %w", classified)
		}

		if out = strings.TrimSpace(out); out == "" {
			return "", ErrEmptyOutput
		}
		return out, nil
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func generateContent(ctx context.Context, key, model, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}

	var text strings.Builder
	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text.WriteString(part.Text)
			}
		}
	}
	return text.String(), nil
}

func (g *implGemini) key() (string, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apiKeys[g.currentKey], g.currentKey
}

// rotateKey advances past idx unless another caller already did.
func (g *implGemini) rotateKey(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == idx {
		g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	}
}

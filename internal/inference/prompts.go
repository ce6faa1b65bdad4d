package inference

import (
	"fmt"

	"github.com/tmc/langchaingo/prompts"
)

var (
	summaryTemplate = prompts.NewPromptTemplate(`Summarize the following text:
{{.text}}`, []string{"text"})

	questionTemplate = prompts.NewPromptTemplate(`Answer the question using only the context below.
Reply with the shortest span of the context that answers it, without explanation.

Question:
{{.question}}

Context:
{{.context}}`, []string{"question", "context"})
)

func summaryPrompt(text string) (string, error) {
	p, err := summaryTemplate.Format(map[string]any{"text": text})
	if err != nil {
		return "", fmt.Errorf("format summary prompt: %w", err)
	}
	return p, nil
}

func questionPrompt(question, passage string) (string, error) {
	p, err := questionTemplate.Format(map[string]any{
		"question": question,
		"context":  passage,
	})
	if err != nil {
		return "", fmt.Errorf("format question prompt: %w", err)
	}
	return p, nil
}

package inference

import (
	"context"
	"errors"
)

var (
	// ErrEmptyOutput is returned when a model produced no text.
	ErrEmptyOutput = errors.New("model returned empty output")
	// ErrUnknownBackend is returned by New for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown inference backend")
)

// Summarizer maps a text to a shorter abstractive summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Answerer extracts an answer to question from a passage of text.
type Answerer interface {
	Answer(ctx context.Context, question, passage string) (Answer, error)
}

// Backend provides both pipelines from one inference provider.
type Backend interface {
	Summarizer
	Answerer
	Name() string
}

// Answer is an extracted answer span. Score, Start and End are zero for
// generative backends that do not report them.
type Answer struct {
	Text  string
	Score float64
	Start int
	End   int
}

package chunker

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

type tiktokenCounter struct {
	tke *tiktoken.Tiktoken
}

// NewTiktokenCounter loads a BPE encoding such as cl100k_base, falling back to
// treating the name as a model name.
func NewTiktokenCounter(encoding string) (TokenCounter, error) {
	tke, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		tke, err = tiktoken.EncodingForModel(encoding)
		if err != nil {
			return nil, fmt.Errorf("load encoding %s: %w", encoding, err)
		}
	}
	return &tiktokenCounter{tke: tke}, nil
}

func (c *tiktokenCounter) CountTokens(text string) int {
	return len(c.tke.Encode(text, nil, nil))
}

// WordEstimate approximates tokens as four tokens per three words, rounded up.
type WordEstimate struct{}

func (WordEstimate) CountTokens(text string) int {
	words := len(strings.Fields(text))
	return (words*4 + 2) / 3
}

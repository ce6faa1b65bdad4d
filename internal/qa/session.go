package qa

import (
	"context"
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nguyentantai21042004/text-insight/internal/inference"
	"github.com/nguyentantai21042004/text-insight/internal/logger"
)

// ErrEmptyQuestion is returned by Ask for a blank question.
var ErrEmptyQuestion = errors.New("question is empty")

// Session answers questions against one fixed document.
type Session struct {
	passage  string
	answerer inference.Answerer
	cache    *lru.Cache[string, inference.Answer]
	logger   logger.Logger
}

// NewSession creates a Session over passage. cacheSize <= 0 disables caching.
func NewSession(passage string, answerer inference.Answerer, cacheSize int, log logger.Logger) (*Session, error) {
	s := &Session{
		passage:  passage,
		answerer: answerer,
		logger:   log,
	}
	if cacheSize > 0 {
		cache, err := lru.New[string, inference.Answer](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create answer cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// Ask answers question using the full, unmodified document as context.
func (s *Session) Ask(ctx context.Context, question string) (inference.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return inference.Answer{}, ErrEmptyQuestion
	}

	key := cacheKey(question)
	if s.cache != nil {
		if answer, ok := s.cache.Get(key); ok {
			s.logger.Debug(ctx, "Answer cache hit: %q", question)
			return answer, nil
		}
	}

	answer, err := s.answerer.Answer(ctx, question, s.passage)
	if err != nil {
		return inference.Answer{}, fmt.Errorf("answer question: %w", err)
	}
	s.logger.Debug(ctx, "Answered %q (score %.3f)", question, answer.Score)

	if s.cache != nil {
		s.cache.Add(key, answer)
	}
	return answer, nil
}

// cacheKey folds inner whitespace only. Extractive QA models are case-sensitive.
func cacheKey(question string) string {
	return strings.Join(strings.Fields(question), " ")
}

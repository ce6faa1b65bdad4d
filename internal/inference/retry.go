package inference

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/nguyentantai21042004/text-insight/internal/config"
	"github.com/nguyentantai21042004/text-insight/internal/logger"
	"github.com/sethvargo/go-retry"
)

// StatusError reports a failed call to an inference provider.
// Code 0 means the request never got a response.
type StatusError struct {
	Backend string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Code == 0 {
		return fmt.Sprintf("%s: %s", e.Backend, e.Message)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Backend, e.Code, e.Message)
}

// Temporary reports whether the call may succeed if repeated.
func (e *StatusError) Temporary() bool {
	switch {
	case e.Code == 0:
		return true
	case e.Code == http.StatusRequestTimeout, e.Code == http.StatusTooManyRequests:
		return true
	default:
		return e.Code >= 500
	}
}

// IsRetryable reports whether err is worth another attempt.
func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	return false
}

var (
	reRateLimited = regexp.MustCompile(`\b429\b|\bRESOURCE_EXHAUSTED\b|(?i:\bquota\b|\brate limit)`)
	reUnavailable = regexp.MustCompile(`\b503\b|\bUNAVAILABLE\b`)
	reBadGateway  = regexp.MustCompile(`\b502\b`)
	reInternal    = regexp.MustCompile(`\b500\b|\bINTERNAL\b`)
)

// classify turns an SDK error into a StatusError by matching status markers
// as whole words in its message. Errors without a marker are returned unchanged.
func classify(backend string, err error) error {
	msg := err.Error()
	code := 0
	switch {
	case reRateLimited.MatchString(msg):
		code = http.StatusTooManyRequests
	case reUnavailable.MatchString(msg):
		code = http.StatusServiceUnavailable
	case reBadGateway.MatchString(msg):
		code = http.StatusBadGateway
	case reInternal.MatchString(msg):
		code = http.StatusInternalServerError
	default:
		return err
	}
	return &StatusError{Backend: backend, Code: code, Message: msg}
}

type retryingBackend struct {
	next     Backend
	attempts int
	backoff  time.Duration
	logger   logger.Logger
}

// WithRetry wraps a backend so retryable failures are repeated with exponential backoff.
func WithRetry(next Backend, cfg config.RetryConfig, log logger.Logger) Backend {
	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = time.Second
	}
	return &retryingBackend{
		next:     next,
		attempts: attempts,
		backoff:  backoff,
		logger:   log,
	}
}

func (r *retryingBackend) Name() string {
	return r.next.Name()
}

func (r *retryingBackend) Summarize(ctx context.Context, text string) (string, error) {
	var summary string
	err := r.do(ctx, "summarize", func(ctx context.Context) error {
		s, err := r.next.Summarize(ctx, text)
		if err != nil {
			return err
		}
		summary = s
		return nil
	})
	return summary, err
}

func (r *retryingBackend) Answer(ctx context.Context, question, passage string) (Answer, error) {
	var answer Answer
	err := r.do(ctx, "answer", func(ctx context.Context) error {
		a, err := r.next.Answer(ctx, question, passage)
		if err != nil {
			return err
		}
		answer = a
		return nil
	})
	return answer, err
}

func (r *retryingBackend) do(ctx context.Context, op string, fn retry.RetryFunc) error {
	b := retry.WithMaxRetries(uint64(r.attempts-1), retry.NewExponential(r.backoff))
	attempt := 0

	return retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if IsRetryable(err) && attempt < r.attempts {
			r.logger.Warn(ctx, "%s %s failed (attempt %d/%d): %v", r.next.Name(), op, attempt, r.attempts, err)
			return retry.RetryableError(err)
		}
		return err
	})
}

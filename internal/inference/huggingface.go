package inference

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/nguyentantai21042004/text-insight/internal/config"
)

type hfSummary struct {
	SummaryText string `json:"summary_text"`
}

type hfAnswer struct {
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
}

type hfError struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time"`
}

type implHuggingFace struct {
	client *resty.Client
	cfg    config.HuggingFaceConfig
}

// NewHuggingFace creates a backend for the hosted Hugging Face inference API.
func NewHuggingFace(cfg config.HuggingFaceConfig) Backend {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}

	return &implHuggingFace{
		client: client,
		cfg:    cfg,
	}
}

func (h *implHuggingFace) Name() string {
	return "huggingface"
}

// Summarize runs text through the summarization model.
// The chunk is sent without the instruction prompt the generative backends use:
// BART is not instruction tuned and would summarize the prefix as part of the text.
func (h *implHuggingFace) Summarize(ctx context.Context, text string) (string, error) {
	params := map[string]any{"do_sample": false}
	if h.cfg.MaxLength > 0 {
		params["max_length"] = h.cfg.MaxLength
	}
	if h.cfg.MinLength > 0 {
		params["min_length"] = h.cfg.MinLength
	}
	body := map[string]any{
		"inputs":     text,
		"parameters": params,
		"options":    map[string]any{"wait_for_model": true},
	}

	var out []hfSummary
	if err := h.post(ctx, h.cfg.SummarizationModel, body, &out); err != nil {
		return "", err
	}

	if len(out) == 0 || strings.TrimSpace(out[0].SummaryText) == "" {
		return "", ErrEmptyOutput
	}
	return strings.TrimSpace(out[0].SummaryText), nil
}

// Answer extracts the answer span for question from passage.
func (h *implHuggingFace) Answer(ctx context.Context, question, passage string) (Answer, error) {
	body := map[string]any{
		"inputs": map[string]string{
			"question": question,
			"context":  passage,
		},
		"options": map[string]any{"wait_for_model": true},
	}

	var out hfAnswer
	if err := h.post(ctx, h.cfg.QAModel, body, &out); err != nil {
		return Answer{}, err
	}

	if strings.TrimSpace(out.Answer) == "" {
		return Answer{}, ErrEmptyOutput
	}
	return Answer{
		Text:  strings.TrimSpace(out.Answer),
		Score: out.Score,
		Start: out.Start,
		End:   out.End,
	}, nil
}

func (h *implHuggingFace) post(ctx context.Context, model string, body, result any) error {
	var apiErr hfError
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		SetError(&apiErr).
		Post("/" + model)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &StatusError{Backend: h.Name(), Message: fmt.Sprintf("post %s: %v", model, err)}
	}

	if resp.IsError() {
		msg := apiErr.Error
		if msg == "" {
			msg = strings.TrimSpace(resp.String())
		}
		if apiErr.EstimatedTime > 0 {
			msg = fmt.Sprintf("%s (model loading, ~%.0fs)", msg, apiErr.EstimatedTime)
		}
		return &StatusError{Backend: h.Name(), Code: resp.StatusCode(), Message: msg}
	}
	return nil
}

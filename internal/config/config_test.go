package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "empty config uses huggingface",
			config:  Config{},
			wantErr: false,
		},
		{
			name: "gemini with keys",
			config: Config{
				Backend: "Gemini",
				Gemini:  GeminiConfig{APIKeys: []string{"k1"}},
			},
			wantErr: false,
		},
		{
			name:    "gemini without keys",
			config:  Config{Backend: BackendGemini},
			wantErr: true,
		},
		{
			name:    "openai without key",
			config:  Config{Backend: BackendOpenAI},
			wantErr: true,
		},
		{
			name: "openai compatible server",
			config: Config{
				Backend: BackendOpenAI,
				OpenAI:  OpenAIConfig{BaseURL: "http://localhost:8080/v1", APIKey: "sk-local"},
			},
			wantErr: false,
		},
		{
			name:    "command without binary",
			config:  Config{Backend: BackendCommand},
			wantErr: true,
		},
		{
			name:    "unknown backend",
			config:  Config{Backend: "tensorflow"},
			wantErr: true,
		},
		{
			name:    "negative chunk size",
			config:  Config{Chunking: ChunkingConfig{Size: -1}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, BackendHuggingFace, cfg.Backend)
	assert.Equal(t, "facebook/bart-large-cnn", cfg.HuggingFace.SummarizationModel)
	assert.Equal(t, "distilbert-base-cased-distilled-squad", cfg.HuggingFace.QAModel)
	assert.Equal(t, 512, cfg.Chunking.Size)
	assert.Equal(t, 1024, cfg.Chunking.MaxTokens)
	assert.Equal(t, 3, cfg.Retry.Attempts)
	assert.Equal(t, time.Second, cfg.Retry.Backoff)
	assert.Equal(t, 2, cfg.Performance.MaxConcurrent)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad(t *testing.T) {
	t.Setenv("HF_TOKEN", "hf_test")
	t.Setenv("GEMINI_API_KEYS", "")
	t.Setenv("GEMINI_API_KEY", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
backend: huggingface

huggingface:
  summarization_model: "sshleifer/distilbart-cnn-12-6"
  timeout: 30s

chunking:
  size: 256
  max_tokens: 900

retry:
  attempts: 5
  backoff: 250ms

logging:
  level: "debug"
  format: "json"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sshleifer/distilbart-cnn-12-6", cfg.HuggingFace.SummarizationModel)
	assert.Equal(t, "distilbert-base-cased-distilled-squad", cfg.HuggingFace.QAModel)
	assert.Equal(t, 30*time.Second, cfg.HuggingFace.Timeout)
	assert.Equal(t, "hf_test", cfg.HuggingFace.Token)
	assert.Equal(t, 256, cfg.Chunking.Size)
	assert.Equal(t, 900, cfg.Chunking.MaxTokens)
	assert.Equal(t, 5, cfg.Retry.Attempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Retry.Backoff)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunking: [unterminated"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv("GEMINI_API_KEYS", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, BackendHuggingFace, cfg.Backend)
}

func TestApplyEnvGeminiKeys(t *testing.T) {
	t.Setenv("GEMINI_API_KEYS", " a, b ,,c ")

	cfg := Config{}
	cfg.ApplyEnv()

	assert.Equal(t, []string{"a", "b", "c"}, cfg.Gemini.APIKeys)
}

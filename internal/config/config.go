package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported inference backends.
const (
	BackendHuggingFace = "huggingface"
	BackendGemini      = "gemini"
	BackendOpenAI      = "openai"
	BackendOllama      = "ollama"
	BackendCommand     = "command"
)

type Config struct {
	Backend     string            `yaml:"backend"`
	HuggingFace HuggingFaceConfig `yaml:"huggingface"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	OpenAI      OpenAIConfig      `yaml:"openai"`
	Ollama      OllamaConfig      `yaml:"ollama"`
	Command     CommandConfig     `yaml:"command"`
	Chunking    ChunkingConfig    `yaml:"chunking"`
	QA          QAConfig          `yaml:"qa"`
	Retry       RetryConfig       `yaml:"retry"`
	Output      OutputConfig      `yaml:"output"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type HuggingFaceConfig struct {
	BaseURL            string        `yaml:"base_url"`
	SummarizationModel string        `yaml:"summarization_model"`
	QAModel            string        `yaml:"qa_model"`
	MaxLength          int           `yaml:"max_length"`
	MinLength          int           `yaml:"min_length"`
	Timeout            time.Duration `yaml:"timeout"`
	Token              string        `yaml:"-"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"-"`
}

type OpenAIConfig struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"-"`
}

type OllamaConfig struct {
	Model     string `yaml:"model"`
	ServerURL string `yaml:"server_url"`
}

type CommandConfig struct {
	Binary string   `yaml:"binary"`
	Args   []string `yaml:"args"`
}

type ChunkingConfig struct {
	Size      int    `yaml:"size"`
	MaxTokens int    `yaml:"max_tokens"`
	Encoding  string `yaml:"encoding"`
}

type QAConfig struct {
	CacheSize int `yaml:"cache_size"`
}

type RetryConfig struct {
	Attempts int           `yaml:"attempts"`
	Backoff  time.Duration `yaml:"backoff"`
}

type OutputConfig struct {
	Docx bool `yaml:"docx"`
}

type PathsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Load reads a YAML config file, applies environment secrets and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to defaults when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg = &Config{}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv copies API credentials from the environment. Secrets never live in YAML.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("HF_TOKEN"); v != "" {
		c.HuggingFace.Token = v
	}
	if v := os.Getenv("GEMINI_API_KEYS"); v != "" {
		c.Gemini.APIKeys = splitKeys(v)
	} else if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Gemini.APIKeys = []string{v}
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
}

func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func (c *Config) Validate() error {
	if c.Backend == "" {
		c.Backend = BackendHuggingFace
	}
	c.Backend = strings.ToLower(c.Backend)

	switch c.Backend {
	case BackendHuggingFace:
	case BackendGemini:
		if len(c.Gemini.APIKeys) == 0 {
			return fmt.Errorf("gemini backend requires GEMINI_API_KEYS or GEMINI_API_KEY")
		}
	case BackendOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("openai backend requires OPENAI_API_KEY")
		}
	case BackendOllama:
	case BackendCommand:
		if c.Command.Binary == "" {
			return fmt.Errorf("command.binary is required")
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}

	if c.Chunking.Size < 0 {
		return fmt.Errorf("chunking.size must not be negative")
	}
	if c.Performance.MaxConcurrent < 0 {
		return fmt.Errorf("performance.max_concurrent must not be negative")
	}

	if c.HuggingFace.BaseURL == "" {
		c.HuggingFace.BaseURL = "https://router.huggingface.co/hf-inference/models"
	}
	if c.HuggingFace.SummarizationModel == "" {
		c.HuggingFace.SummarizationModel = "facebook/bart-large-cnn"
	}
	if c.HuggingFace.QAModel == "" {
		c.HuggingFace.QAModel = "distilbert-base-cased-distilled-squad"
	}
	if c.HuggingFace.Timeout == 0 {
		c.HuggingFace.Timeout = 2 * time.Minute
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.Ollama.Model == "" {
		c.Ollama.Model = "llama3.2"
	}
	if c.Chunking.Size == 0 {
		c.Chunking.Size = 512
	}
	if c.Chunking.MaxTokens == 0 {
		c.Chunking.MaxTokens = 1024
	}
	if c.Chunking.Encoding == "" {
		c.Chunking.Encoding = "cl100k_base"
	}
	if c.QA.CacheSize == 0 {
		c.QA.CacheSize = 128
	}
	if c.Retry.Attempts == 0 {
		c.Retry.Attempts = 3
	}
	if c.Retry.Backoff == 0 {
		c.Retry.Backoff = time.Second
	}
	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}

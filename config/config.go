package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/natexcvi/ragbot/retrieval"
	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI  = "openai"
	ProviderOllama  = "ollama"
	ProviderGemini  = "gemini"
	ProviderHashing = "hashing"
)

type Embedder struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key"`
	Dimension int    `yaml:"dimension"`
}

type Retrieval struct {
	MaxResults int     `yaml:"max_results"`
	MinScore   float64 `yaml:"min_score"`
}

type Config struct {
	Embedder  Embedder  `yaml:"embedder"`
	Retrieval Retrieval `yaml:"retrieval"`
	LogLevel  string    `yaml:"log_level"`
}

func Default() *Config {
	return &Config{
		Embedder: Embedder{
			Provider: ProviderHashing,
		},
		Retrieval: Retrieval{
			MaxResults: retrieval.DefaultMaxResults,
		},
		LogLevel: "info",
	}
}

// Load reads the YAML file at path on top of the defaults. An empty path
// skips the file. Environment variables are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal YAML config: %w", err)
		}
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv fills credentials missing from the file from the environment.
func (c *Config) ApplyEnv() {
	if c.Embedder.APIKey != "" {
		return
	}
	switch c.Embedder.Provider {
	case ProviderOpenAI:
		c.Embedder.APIKey = os.Getenv("OPENAI_API_KEY")
	case ProviderGemini:
		c.Embedder.APIKey = os.Getenv("GEMINI_API_KEY")
	case ProviderOllama:
		if c.Embedder.BaseURL == "" {
			c.Embedder.BaseURL = os.Getenv("OLLAMA_HOST")
		}
	}
}

// SetProvider switches the embedder to provider. Settings that belong to
// the previous provider are dropped and credentials are read again from the
// environment.
func (c *Config) SetProvider(provider string) {
	if provider == c.Embedder.Provider {
		return
	}
	c.Embedder = Embedder{
		Provider:  provider,
		Dimension: c.Embedder.Dimension,
	}
	c.ApplyEnv()
}

func (c *Config) Validate() error {
	var validationErr *multierror.Error
	switch c.Embedder.Provider {
	case ProviderOpenAI, ProviderGemini:
		if c.Embedder.APIKey == "" {
			validationErr = multierror.Append(validationErr, fmt.Errorf("embedder %q requires an API key", c.Embedder.Provider))
		}
	case ProviderOllama, ProviderHashing, "":
	default:
		validationErr = multierror.Append(validationErr, fmt.Errorf("unknown embedder provider %q", c.Embedder.Provider))
	}
	if c.Retrieval.MaxResults < 0 {
		validationErr = multierror.Append(validationErr, errors.New("retrieval.max_results must not be negative"))
	}
	if c.Retrieval.MinScore < 0 || c.Retrieval.MinScore > 1 {
		validationErr = multierror.Append(validationErr, errors.New("retrieval.min_score must be between 0 and 1"))
	}
	return validationErr.ErrorOrNil()
}

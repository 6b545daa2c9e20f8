package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ragbot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		env      map[string]string
		expected *Config
	}{
		{
			name:     "defaults",
			expected: Default(),
		},
		{
			name: "file overrides defaults",
			content: `
embedder:
  provider: ollama
  model: nomic-embed-text
retrieval:
  max_results: 5
  min_score: 0.6
log_level: debug
`,
			env: map[string]string{"OLLAMA_HOST": "http://ollama:11434"},
			expected: &Config{
				Embedder: Embedder{
					Provider: ProviderOllama,
					Model:    "nomic-embed-text",
					BaseURL:  "http://ollama:11434",
				},
				Retrieval: Retrieval{MaxResults: 5, MinScore: 0.6},
				LogLevel:  "debug",
			},
		},
		{
			name: "api key from environment",
			content: `
embedder:
  provider: openai
`,
			env: map[string]string{"OPENAI_API_KEY": "sk-test"},
			expected: &Config{
				Embedder:  Embedder{Provider: ProviderOpenAI, APIKey: "sk-test"},
				Retrieval: Retrieval{MaxResults: 10},
				LogLevel:  "info",
			},
		},
		{
			name: "api key in file wins",
			content: `
embedder:
  provider: gemini
  api_key: from-file
`,
			env: map[string]string{"GEMINI_API_KEY": "from-env"},
			expected: &Config{
				Embedder:  Embedder{Provider: ProviderGemini, APIKey: "from-file"},
				Retrieval: Retrieval{MaxResults: 10},
				LogLevel:  "info",
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for key, value := range tc.env {
				t.Setenv(key, value)
			}
			path := ""
			if tc.content != "" {
				path = writeConfig(t, tc.content)
			}
			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, cfg)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "embedder: [not, a, map]"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
		errs   []string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name: "empty provider means hashing",
			mutate: func(c *Config) {
				c.Embedder.Provider = ""
			},
		},
		{
			name: "missing api key",
			mutate: func(c *Config) {
				c.Embedder.Provider = ProviderOpenAI
			},
			errs: []string{`embedder "openai" requires an API key`},
		},
		{
			name: "unknown provider and bad limits",
			mutate: func(c *Config) {
				c.Embedder.Provider = "word2vec"
				c.Retrieval.MaxResults = -1
				c.Retrieval.MinScore = 1.5
			},
			errs: []string{
				`unknown embedder provider "word2vec"`,
				"retrieval.max_results must not be negative",
				"retrieval.min_score must be between 0 and 1",
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if len(tc.errs) == 0 {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, msg := range tc.errs {
				assert.Contains(t, err.Error(), msg)
			}
		})
	}
}

func TestSetProvider(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		env      map[string]string
		provider string
		expected Embedder
	}{
		{
			name:     "key of the previous provider is dropped",
			content:  "embedder:\n  provider: openai\n  model: text-embedding-3-large\n  api_key: sk-openai\n  base_url: https://proxy.example.com/v1\n",
			env:      map[string]string{"GEMINI_API_KEY": "gemini-key"},
			provider: ProviderGemini,
			expected: Embedder{Provider: ProviderGemini, APIKey: "gemini-key"},
		},
		{
			name:     "ollama host is read again",
			content:  "embedder:\n  provider: openai\n  api_key: sk-openai\n",
			env:      map[string]string{"OLLAMA_HOST": "http://ollama:11434"},
			provider: ProviderOllama,
			expected: Embedder{Provider: ProviderOllama, BaseURL: "http://ollama:11434"},
		},
		{
			name:     "dimension is kept",
			content:  "embedder:\n  provider: ollama\n  dimension: 64\n",
			provider: ProviderHashing,
			expected: Embedder{Provider: ProviderHashing, Dimension: 64},
		},
		{
			name:     "same provider keeps its settings",
			content:  "embedder:\n  provider: openai\n  api_key: sk-openai\n",
			env:      map[string]string{"OPENAI_API_KEY": "sk-env"},
			provider: ProviderOpenAI,
			expected: Embedder{Provider: ProviderOpenAI, APIKey: "sk-openai"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for key, value := range tc.env {
				t.Setenv(key, value)
			}
			cfg, err := Load(writeConfig(t, tc.content))
			require.NoError(t, err)
			cfg.SetProvider(tc.provider)
			assert.Equal(t, tc.expected, cfg.Embedder)
		})
	}
}

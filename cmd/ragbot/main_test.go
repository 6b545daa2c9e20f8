package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/natexcvi/ragbot/chatbot"
	"github.com/natexcvi/ragbot/config"
	"github.com/natexcvi/ragbot/embeddings"
	"github.com/natexcvi/ragbot/evaluation"
	"github.com/natexcvi/ragbot/loaders"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadersFor(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		render   bool
		expected []loaders.Loader
	}{
		{
			name: "paths only",
			args: []string{"docs", "README.md"},
			expected: []loaders.Loader{
				loaders.NewFileLoader("docs"),
				loaders.NewFileLoader("README.md"),
			},
		},
		{
			name: "urls are grouped",
			args: []string{"https://example.com/a", "notes", "http://example.com/b"},
			expected: []loaders.Loader{
				loaders.NewFileLoader("notes"),
				loaders.NewWebpageLoader("https://example.com/a", "http://example.com/b"),
			},
		},
		{
			name:   "rendered pages",
			args:   []string{"https://example.com/app"},
			render: true,
			expected: []loaders.Loader{
				loaders.NewRenderedPageLoader("https://example.com/app"),
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, loadersFor(tc.args, tc.render))
		})
	}
}

func TestFormatSegments(t *testing.T) {
	assert.Equal(t, "No relevant segments found.\n", formatSegments(nil))
	assert.Equal(t, "1. [faq.md]\nReset it in settings.\n\n2.\nNo source here.\n\n", formatSegments([]embeddings.TextSegment{
		embeddings.NewTextSegment("Reset it in settings.", map[string]string{embeddings.MetadataSource: "faq.md"}),
		embeddings.NewTextSegment("No source here.", nil),
	}))
}

func TestReadCases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- query: how do I reset my password?
  expected: [faq.md]
- query: pricing
`), 0o600))

	cases, err := readCases(path)
	require.NoError(t, err)
	assert.Equal(t, []evaluation.RetrievalCase{
		{Query: "how do I reset my password?", Expected: []string{"faq.md"}},
		{Query: "pricing"},
	}, cases)

	_, err = readCases(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	assert.Equal(t, "1.00\thow do I reset my password?\n0.50\tpricing\nmean recall@10: 0.75\n", formatReport(cases, []float64{1, 0.5}, 10))
}

func TestQueryCommand(t *testing.T) {
	chatbot.ResetEmbeddingStore()
	t.Cleanup(chatbot.ResetEmbeddingStore)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "passwords.md"), []byte("reset your password from the account settings page"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "billing.md"), []byte("invoices are sent on the first day of every month"), 0o600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"query", "--provider", "hashing", "--max-results", "1", "--source", dir, "reset password"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "passwords.md")
	assert.Contains(t, out.String(), "reset your password from the account settings page")
	assert.NotContains(t, out.String(), "invoices")
	assert.Equal(t, 2, chatbot.EmbeddingStore().Len())
}

func TestLoadConfigProviderFlag(t *testing.T) {
	t.Cleanup(func() {
		configPath, provider = "", ""
	})
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	path := filepath.Join(t.TempDir(), "ragbot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("embedder:\n  provider: openai\n  api_key: sk-openai\n"), 0o600))

	cmd := &cobra.Command{}
	cmd.Flags().StringVar(&configPath, "config", "", "")
	cmd.Flags().StringVar(&provider, "provider", "", "")
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--provider", "gemini"}))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, config.Embedder{Provider: config.ProviderGemini, APIKey: "gemini-key"}, cfg.Embedder)
}

type closingEmbedder struct {
	*embeddings.HashingEmbedder
	closed int
	err    error
}

func (e *closingEmbedder) Close() error {
	e.closed++
	return e.err
}

func TestAppClose(t *testing.T) {
	embedder := &closingEmbedder{HashingEmbedder: embeddings.NewHashingEmbedder(8)}
	(&app{embedder: embedder}).close()
	assert.Equal(t, 1, embedder.closed)

	failing := &closingEmbedder{HashingEmbedder: embeddings.NewHashingEmbedder(8), err: errors.New("already closed")}
	(&app{embedder: failing}).close()
	assert.Equal(t, 1, failing.closed)

	assert.NotPanics(t, func() {
		(&app{embedder: embeddings.NewHashingEmbedder(8)}).close()
	})
}

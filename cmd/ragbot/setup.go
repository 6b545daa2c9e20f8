package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/natexcvi/ragbot/config"
	"github.com/natexcvi/ragbot/embeddings"
	"github.com/natexcvi/ragbot/engines"
	"github.com/natexcvi/ragbot/evaluation"
	"github.com/natexcvi/ragbot/loaders"
	"github.com/natexcvi/ragbot/retrieval"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// loadConfig reads the config file and lets explicitly set flags win.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("provider") {
		cfg.SetProvider(provider)
	}
	if flags.Changed("model") {
		cfg.Embedder.Model = model
	}
	if flags.Changed("max-results") {
		cfg.Retrieval.MaxResults = maxResults
	}
	if flags.Changed("min-score") {
		cfg.Retrieval.MinScore = minScore
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if !verbose && cfg.LogLevel != "" {
		level, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		log.SetLevel(level)
	}
	return cfg, nil
}

func newEmbedder(ctx context.Context, cfg *config.Config) (embeddings.Embedder, error) {
	embedder, err := engines.New(ctx, cfg.Embedder)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}
	return embedder, nil
}

func retrievalOptions(cfg *config.Config) []retrieval.Option {
	opts := []retrieval.Option{retrieval.WithMinScore(cfg.Retrieval.MinScore)}
	if cfg.Retrieval.MaxResults > 0 {
		opts = append(opts, retrieval.WithMaxResults(cfg.Retrieval.MaxResults))
	}
	return opts
}

func isURL(arg string) bool {
	return strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://")
}

// loadersFor groups URLs into one page loader and gives every local path its
// own file loader.
func loadersFor(args []string, render bool) []loaders.Loader {
	urls := lo.Filter(args, func(arg string, _ int) bool {
		return isURL(arg)
	})
	paths := lo.Reject(args, func(arg string, _ int) bool {
		return isURL(arg)
	})
	result := lo.Map(paths, func(path string, _ int) loaders.Loader {
		return loaders.NewFileLoader(path)
	})
	if len(urls) == 0 {
		return result
	}
	if render {
		return append(result, loaders.NewRenderedPageLoader(urls...))
	}
	return append(result, loaders.NewWebpageLoader(urls...))
}

type evaluationCase struct {
	Query    string   `yaml:"query"`
	Expected []string `yaml:"expected"`
}

func readCases(path string) ([]evaluation.RetrievalCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cases file: %w", err)
	}
	var cases []evaluationCase
	if err := yaml.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML cases: %w", err)
	}
	return lo.Map(cases, func(c evaluationCase, _ int) evaluation.RetrievalCase {
		return evaluation.RetrievalCase{Query: c.Query, Expected: c.Expected}
	}), nil
}

func formatSegments(segments []embeddings.TextSegment) string {
	if len(segments) == 0 {
		return "No relevant segments found.\n"
	}
	var sb strings.Builder
	for i, segment := range segments {
		if source, ok := segment.Get(embeddings.MetadataSource); ok {
			fmt.Fprintf(&sb, "%d. [%s]\n", i+1, source)
		} else {
			fmt.Fprintf(&sb, "%d.\n", i+1)
		}
		fmt.Fprintf(&sb, "%s\n\n", segment.Text)
	}
	return sb.String()
}

func formatReport(cases []evaluation.RetrievalCase, report []float64, k int) string {
	var sb strings.Builder
	for i, c := range cases {
		fmt.Fprintf(&sb, "%.2f\t%s\n", report[i], c.Query)
	}
	if len(report) > 0 {
		fmt.Fprintf(&sb, "mean recall@%d: %.2f\n", k, lo.Sum(report)/float64(len(report)))
	}
	return sb.String()
}

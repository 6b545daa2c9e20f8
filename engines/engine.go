package engines

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/natexcvi/ragbot/config"
	"github.com/natexcvi/ragbot/embeddings"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

var ErrUnknownProvider = fmt.Errorf("unknown embedder provider")

type factory func(ctx context.Context, cfg config.Embedder) (embeddings.Embedder, error)

var factories = map[string]factory{
	config.ProviderOpenAI: func(_ context.Context, cfg config.Embedder) (embeddings.Embedder, error) {
		return NewOpenAIEmbedder(cfg.APIKey, cfg.BaseURL, cfg.Model)
	},
	config.ProviderOllama: func(_ context.Context, cfg config.Embedder) (embeddings.Embedder, error) {
		return NewOllamaEmbedder(cfg.BaseURL, cfg.Model)
	},
	config.ProviderGemini: func(ctx context.Context, cfg config.Embedder) (embeddings.Embedder, error) {
		return NewGeminiEmbedder(ctx, cfg.APIKey, cfg.Model)
	},
	config.ProviderHashing: func(_ context.Context, cfg config.Embedder) (embeddings.Embedder, error) {
		return embeddings.NewHashingEmbedder(cfg.Dimension), nil
	},
}

// Providers lists the provider names New accepts, sorted.
func Providers() []string {
	providers := lo.Keys(factories)
	slices.Sort(providers)
	return providers
}

// New builds the embedder named by cfg.Provider. An empty provider selects
// the hashing embedder.
func New(ctx context.Context, cfg config.Embedder) (embeddings.Embedder, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = config.ProviderHashing
	}
	build, ok := factories[provider]
	if !ok {
		return nil, fmt.Errorf("%w %q. Available providers: %s", ErrUnknownProvider, provider, strings.Join(Providers(), ", "))
	}
	log.Debugf("creating %s embedder (model %q)", provider, cfg.Model)
	return build(ctx, cfg)
}

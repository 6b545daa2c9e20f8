package engines

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/natexcvi/ragbot/embeddings"
	"github.com/ollama/ollama/api"
	"github.com/samber/lo"
)

const (
	defaultOllamaHost  = "http://localhost:11434"
	defaultOllamaModel = "nomic-embed-text"
)

type OllamaEmbedder struct {
	client *api.Client
	model  string
}

func NewOllamaEmbedder(host, model string) (*OllamaEmbedder, error) {
	if host == "" {
		host = defaultOllamaHost
	}
	if model == "" {
		model = defaultOllamaModel
	}
	uri, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}
	return &OllamaEmbedder{
		client: api.NewClient(uri, http.DefaultClient),
		model:  model,
	}, nil
}

func (e *OllamaEmbedder) Embed(ctx context.Context, text string) (embeddings.Embedding, error) {
	out, err := e.embed(ctx, []string{text})
	if err != nil {
		return embeddings.Embedding{}, err
	}
	return out[0], nil
}

func (e *OllamaEmbedder) EmbedAll(ctx context.Context, segments []embeddings.TextSegment) ([]embeddings.Embedding, error) {
	if len(segments) == 0 {
		return []embeddings.Embedding{}, nil
	}
	return e.embed(ctx, lo.Map(segments, func(s embeddings.TextSegment, _ int) string {
		return s.Text
	}))
}

func (e *OllamaEmbedder) embed(ctx context.Context, input []string) ([]embeddings.Embedding, error) {
	resp, err := e.client.Embed(ctx, &api.EmbedRequest{
		Model: e.model,
		Input: input,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama embed failed: %w", err)
	}
	if len(resp.Embeddings) != len(input) {
		return nil, fmt.Errorf("ollama returned %d embeddings for %d inputs", len(resp.Embeddings), len(input))
	}
	return lo.Map(resp.Embeddings, func(vector []float32, _ int) embeddings.Embedding {
		return embeddings.NewEmbedding(vector)
	}), nil
}

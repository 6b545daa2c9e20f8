package engines

import (
	"context"
	"errors"
	"fmt"

	"github.com/natexcvi/ragbot/embeddings"
	"github.com/samber/lo"
	openai "github.com/sashabaranov/go-openai"
)

type embeddingsCreator interface {
	CreateEmbeddings(ctx context.Context, conv openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

type OpenAIEmbedder struct {
	client embeddingsCreator
	model  openai.EmbeddingModel
}

func NewOpenAIEmbedder(apiKey, baseURL, model string) (*OpenAIEmbedder, error) {
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(config),
		model:  openai.EmbeddingModel(model),
	}, nil
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) (embeddings.Embedding, error) {
	out, err := e.embed(ctx, []string{text})
	if err != nil {
		return embeddings.Embedding{}, err
	}
	return out[0], nil
}

func (e *OpenAIEmbedder) EmbedAll(ctx context.Context, segments []embeddings.TextSegment) ([]embeddings.Embedding, error) {
	if len(segments) == 0 {
		return []embeddings.Embedding{}, nil
	}
	return e.embed(ctx, lo.Map(segments, func(s embeddings.TextSegment, _ int) string {
		return s.Text
	}))
}

func (e *OpenAIEmbedder) embed(ctx context.Context, input []string) ([]embeddings.Embedding, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: input,
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings request failed: %w", err)
	}
	if len(resp.Data) != len(input) {
		return nil, fmt.Errorf("openai returned %d embeddings for %d inputs", len(resp.Data), len(input))
	}
	out := make([]embeddings.Embedding, len(input))
	seen := make([]bool, len(input))
	for _, data := range resp.Data {
		if data.Index < 0 || data.Index >= len(out) {
			return nil, fmt.Errorf("openai returned embedding with out of range index %d", data.Index)
		}
		if seen[data.Index] {
			return nil, fmt.Errorf("openai returned more than one embedding for index %d", data.Index)
		}
		seen[data.Index] = true
		out[data.Index] = embeddings.NewEmbedding(data.Embedding)
	}
	return out, nil
}

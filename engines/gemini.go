package engines

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/natexcvi/ragbot/embeddings"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "text-embedding-004"

type GeminiEmbedder struct {
	client *genai.Client
	model  *genai.EmbeddingModel
}

func NewGeminiEmbedder(ctx context.Context, apiKey, model string) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiEmbedder{
		client: client,
		model:  client.EmbeddingModel(model),
	}, nil
}

func (e *GeminiEmbedder) Embed(ctx context.Context, text string) (embeddings.Embedding, error) {
	res, err := e.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return embeddings.Embedding{}, fmt.Errorf("gemini embed failed: %w", err)
	}
	if res.Embedding == nil {
		return embeddings.Embedding{}, errors.New("no embedding returned")
	}
	return embeddings.NewEmbedding(res.Embedding.Values), nil
}

func (e *GeminiEmbedder) EmbedAll(ctx context.Context, segments []embeddings.TextSegment) ([]embeddings.Embedding, error) {
	if len(segments) == 0 {
		return []embeddings.Embedding{}, nil
	}
	batch := e.model.NewBatch()
	for _, segment := range segments {
		batch.AddContent(genai.Text(segment.Text))
	}
	res, err := e.model.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("gemini batch embed failed: %w", err)
	}
	return geminiEmbeddings(res.Embeddings, len(segments))
}

func geminiEmbeddings(contents []*genai.ContentEmbedding, inputs int) ([]embeddings.Embedding, error) {
	if len(contents) != inputs {
		return nil, fmt.Errorf("gemini returned %d embeddings for %d inputs", len(contents), inputs)
	}
	out := make([]embeddings.Embedding, len(contents))
	for i, content := range contents {
		if content == nil {
			return nil, fmt.Errorf("no embedding returned for input %d", i)
		}
		out[i] = embeddings.NewEmbedding(content.Values)
	}
	return out, nil
}

func (e *GeminiEmbedder) Close() error {
	return e.client.Close()
}

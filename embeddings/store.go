package embeddings

import (
	"context"
	"errors"
)

var (
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	ErrLengthMismatch    = errors.New("number of embeddings and segments differ")
	ErrNotFound          = errors.New("embedding not found")
)

type EmbeddingMatch struct {
	ID        string
	Score     float64
	Embedding Embedding
	Segment   *TextSegment
}

//go:generate mockgen -source=store.go -destination=mocks/store.go -package=mocks
type Store interface {
	Add(ctx context.Context, embedding Embedding) (string, error)
	AddWithID(ctx context.Context, id string, embedding Embedding) error
	AddSegment(ctx context.Context, embedding Embedding, segment TextSegment) (string, error)
	// AddAll stores embeddings in order. segments may be nil; otherwise it
	// must have the same length as embeddings.
	AddAll(ctx context.Context, embeddings []Embedding, segments []TextSegment) ([]string, error)
	// FindRelevant returns at most maxResults matches whose relevance score
	// is at least minScore, most relevant first.
	FindRelevant(ctx context.Context, reference Embedding, maxResults int, minScore float64) ([]EmbeddingMatch, error)
	Remove(ctx context.Context, id string) error
	RemoveAll(ctx context.Context) error
	Len() int
}

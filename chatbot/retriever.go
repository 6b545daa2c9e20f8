package chatbot

import (
	"context"

	"github.com/natexcvi/ragbot/embeddings"
	"github.com/natexcvi/ragbot/retrieval"
)

// MaxResults is the number of segments the chatbot retrieves per query
// unless overridden.
const MaxResults = retrieval.DefaultMaxResults

// Retriever finds the segments of the shared store that are most relevant
// to a user query.
type Retriever struct {
	delegate *retrieval.EmbeddingStoreRetriever
}

func NewRetriever(embedder embeddings.Embedder, opts ...retrieval.Option) *Retriever {
	opts = append([]retrieval.Option{retrieval.WithMaxResults(MaxResults)}, opts...)
	return &Retriever{
		delegate: retrieval.NewEmbeddingStoreRetriever(EmbeddingStore(), embedder, opts...),
	}
}

func (r *Retriever) FindRelevant(ctx context.Context, query string) ([]embeddings.TextSegment, error) {
	return r.delegate.FindRelevant(ctx, query)
}

var _ retrieval.Retriever = (*Retriever)(nil)

package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/natexcvi/ragbot/embeddings"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const DefaultMaxResults = 10

//go:generate mockgen -source=retriever.go -destination=mocks/retriever.go -package=mocks
type Retriever interface {
	FindRelevant(ctx context.Context, query string) ([]embeddings.TextSegment, error)
}

// EmbeddingStoreRetriever embeds a query and looks up the closest segments
// in an embedding store.
type EmbeddingStoreRetriever struct {
	store      embeddings.Store
	embedder   embeddings.Embedder
	maxResults int
	minScore   float64
	logger     log.FieldLogger
	tracer     trace.Tracer
}

type Option func(*EmbeddingStoreRetriever)

func WithMaxResults(maxResults int) Option {
	return func(r *EmbeddingStoreRetriever) {
		r.maxResults = maxResults
	}
}

func WithMinScore(minScore float64) Option {
	return func(r *EmbeddingStoreRetriever) {
		r.minScore = minScore
	}
}

func WithLogger(logger log.FieldLogger) Option {
	return func(r *EmbeddingStoreRetriever) {
		r.logger = logger
	}
}

func NewEmbeddingStoreRetriever(store embeddings.Store, embedder embeddings.Embedder, opts ...Option) *EmbeddingStoreRetriever {
	r := &EmbeddingStoreRetriever{
		store:      store,
		embedder:   embedder,
		maxResults: DefaultMaxResults,
		logger:     log.StandardLogger(),
		tracer:     otel.Tracer("github.com/natexcvi/ragbot/retrieval"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *EmbeddingStoreRetriever) MaxResults() int {
	return r.maxResults
}

func (r *EmbeddingStoreRetriever) FindRelevant(ctx context.Context, query string) (segments []embeddings.TextSegment, err error) {
	ctx, span := r.tracer.Start(ctx, "retrieval.FindRelevant", trace.WithAttributes(
		attribute.Int("retrieval.max_results", r.maxResults),
		attribute.Float64("retrieval.min_score", r.minScore),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if strings.TrimSpace(query) == "" {
		return []embeddings.TextSegment{}, nil
	}
	reference, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	matches, err := r.store.FindRelevant(ctx, reference, r.maxResults, r.minScore)
	if err != nil {
		return nil, fmt.Errorf("failed to search embedding store: %w", err)
	}
	segments = lo.FilterMap(matches, func(match embeddings.EmbeddingMatch, _ int) (embeddings.TextSegment, bool) {
		if match.Segment == nil {
			return embeddings.TextSegment{}, false
		}
		return *match.Segment, true
	})
	span.SetAttributes(attribute.Int("retrieval.matches", len(segments)))
	r.logger.WithFields(log.Fields{
		"query_len": len(query),
		"matches":   len(segments),
	}).Debug("retrieved relevant segments")
	return segments, nil
}

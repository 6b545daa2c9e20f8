package chatbot

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/natexcvi/ragbot/embeddings"
	"github.com/natexcvi/ragbot/loaders"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultBatchSize = 32

// Ingestor embeds documents and adds them to an embedding store, one
// segment per document.
type Ingestor struct {
	store     embeddings.Store
	embedder  embeddings.Embedder
	batchSize int
}

// NewIngestor returns an ingestor that writes to the shared store.
func NewIngestor(embedder embeddings.Embedder) *Ingestor {
	return NewIngestorWithStore(EmbeddingStore(), embedder)
}

func NewIngestorWithStore(store embeddings.Store, embedder embeddings.Embedder) *Ingestor {
	return &Ingestor{
		store:     store,
		embedder:  embedder,
		batchSize: DefaultBatchSize,
	}
}

func (i *Ingestor) WithBatchSize(batchSize int) *Ingestor {
	if batchSize > 0 {
		i.batchSize = batchSize
	}
	return i
}

// Ingest stores every document it manages to embed and returns how many
// were stored. Documents that fail are reported in the returned error.
func (i *Ingestor) Ingest(ctx context.Context, docs []loaders.Document) (int, error) {
	ctx, span := otel.Tracer("github.com/natexcvi/ragbot/chatbot").Start(ctx, "chatbot.Ingest")
	defer span.End()
	span.SetAttributes(attribute.Int("ingest.documents", len(docs)))

	var ingestErr *multierror.Error
	stored := 0
	for _, batch := range lo.Chunk(docs, i.batchSize) {
		segments := lo.Map(batch, func(doc loaders.Document, _ int) embeddings.TextSegment {
			return doc.Segment()
		})
		vectors, segments, err := i.embed(ctx, segments)
		if err != nil {
			ingestErr = multierror.Append(ingestErr, err)
		}
		if len(vectors) == 0 {
			continue
		}
		ids, err := i.store.AddAll(ctx, vectors, segments)
		if err != nil {
			return stored, multierror.Append(ingestErr, fmt.Errorf("failed to add embeddings to store: %w", err))
		}
		stored += len(ids)
	}
	log.Debugf("ingested %d of %d documents", stored, len(docs))
	span.SetAttributes(attribute.Int("ingest.stored", stored))
	return stored, ingestErr.ErrorOrNil()
}

// embed tries the whole batch first and falls back to one request per
// segment so a single bad document does not drop its neighbours.
func (i *Ingestor) embed(ctx context.Context, segments []embeddings.TextSegment) ([]embeddings.Embedding, []embeddings.TextSegment, error) {
	vectors, err := i.embedder.EmbedAll(ctx, segments)
	if err == nil {
		return vectors, segments, nil
	}
	log.Debugf("batch embedding failed, retrying one by one: %s", err)
	var embedErr *multierror.Error
	var okVectors []embeddings.Embedding
	var okSegments []embeddings.TextSegment
	for _, segment := range segments {
		vector, err := i.embedder.Embed(ctx, segment.Text)
		if err != nil {
			source, _ := segment.Get(embeddings.MetadataSource)
			embedErr = multierror.Append(embedErr, fmt.Errorf("failed to embed %s: %w", source, err))
			continue
		}
		okVectors = append(okVectors, vector)
		okSegments = append(okSegments, segment)
	}
	return okVectors, okSegments, embedErr.ErrorOrNil()
}

// IngestFrom loads documents from every loader and ingests them. A failing
// loader does not stop the others.
func (i *Ingestor) IngestFrom(ctx context.Context, sources ...loaders.Loader) (int, error) {
	var loadErr *multierror.Error
	var docs []loaders.Document
	for _, source := range sources {
		loaded, err := source.Load(ctx)
		if err != nil {
			loadErr = multierror.Append(loadErr, fmt.Errorf("failed to load documents: %w", err))
			continue
		}
		docs = append(docs, loaded...)
	}
	stored, err := i.Ingest(ctx, docs)
	if err != nil {
		loadErr = multierror.Append(loadErr, err)
	}
	return stored, loadErr.ErrorOrNil()
}

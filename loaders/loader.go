package loaders

import (
	"context"

	"github.com/natexcvi/ragbot/embeddings"
	"github.com/samber/lo"
)

// Document is loaded content before it is embedded. Each document becomes a
// single text segment.
type Document struct {
	Source   string
	Content  string
	Metadata map[string]string
}

func (d Document) Segment() embeddings.TextSegment {
	return embeddings.NewTextSegment(d.Content, lo.Assign(d.Metadata, map[string]string{
		embeddings.MetadataSource: d.Source,
	}))
}

//go:generate mockgen -source=loader.go -destination=mocks/loader.go -package=mocks
type Loader interface {
	Load(ctx context.Context) ([]Document, error)
}

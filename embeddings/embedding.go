package embeddings

import (
	"context"
	"math"
)

type Embedding struct {
	Vector []float32 `json:"vector"`
}

func NewEmbedding(vector []float32) Embedding {
	return Embedding{Vector: vector}
}

func (e Embedding) Dimension() int {
	return len(e.Vector)
}

// Normalized returns a copy of the embedding scaled to unit length.
// A zero vector is returned unchanged.
func (e Embedding) Normalized() Embedding {
	var norm float64
	for _, v := range e.Vector {
		norm += float64(v) * float64(v)
	}
	out := make([]float32, len(e.Vector))
	copy(out, e.Vector)
	if norm == 0 {
		return Embedding{Vector: out}
	}
	norm = math.Sqrt(norm)
	for i := range out {
		out[i] = float32(float64(out[i]) / norm)
	}
	return Embedding{Vector: out}
}

// CosineSimilarity returns the cosine of the angle between a and b, or 0
// when either vector is empty, zero, or the dimensions differ.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// RelevanceScore maps a cosine similarity in [-1, 1] onto [0, 1].
func RelevanceScore(cosine float64) float64 {
	return (cosine + 1) / 2
}

//go:generate mockgen -source=embedding.go -destination=mocks/embedder.go -package=mocks
type Embedder interface {
	Embed(ctx context.Context, text string) (Embedding, error)
	EmbedAll(ctx context.Context, segments []TextSegment) ([]Embedding, error)
}

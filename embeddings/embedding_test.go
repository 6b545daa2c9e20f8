package embeddings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, expected: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, expected: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, expected: -1},
		{name: "scale invariant", a: []float32{1, 1}, b: []float32{5, 5}, expected: 1},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 0}, expected: 0},
		{name: "dimension mismatch", a: []float32{1}, b: []float32{1, 0}, expected: 0},
		{name: "empty", expected: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, CosineSimilarity(tc.a, tc.b), 1e-6)
		})
	}
}

func TestRelevanceScore(t *testing.T) {
	assert.Equal(t, 0.0, RelevanceScore(-1))
	assert.Equal(t, 0.5, RelevanceScore(0))
	assert.Equal(t, 1.0, RelevanceScore(1))
}

func TestNormalized(t *testing.T) {
	original := NewEmbedding([]float32{3, 4})
	normalized := original.Normalized()
	assert.InDeltaSlice(t, []float32{0.6, 0.8}, normalized.Vector, 1e-6)
	assert.Equal(t, []float32{3, 4}, original.Vector, "original must not be modified")
	assert.Equal(t, []float32{0, 0}, NewEmbedding([]float32{0, 0}).Normalized().Vector)
}

func TestHashingEmbedder(t *testing.T) {
	ctx := context.Background()
	embedder := NewHashingEmbedder(0)
	assert.Equal(t, DefaultHashingDimension, embedder.Dimension())

	a, err := embedder.Embed(ctx, "The quick brown fox")
	require.NoError(t, err)
	b, err := embedder.Embed(ctx, "the QUICK, brown fox!")
	require.NoError(t, err)
	c, err := embedder.Embed(ctx, "completely unrelated words here")
	require.NoError(t, err)

	assert.Equal(t, DefaultHashingDimension, a.Dimension())
	assert.Equal(t, a, b, "case and punctuation are ignored")
	assert.Greater(t, CosineSimilarity(a.Vector, b.Vector), CosineSimilarity(a.Vector, c.Vector))

	all, err := embedder.EmbedAll(ctx, []TextSegment{
		NewTextSegment("The quick brown fox", nil),
		NewTextSegment("completely unrelated words here", nil),
	})
	require.NoError(t, err)
	assert.Equal(t, []Embedding{a, c}, all)
}

func TestTextSegment(t *testing.T) {
	metadata := map[string]string{MetadataSource: "notes.md"}
	segment := NewTextSegment("hello", metadata)
	metadata[MetadataSource] = "changed"

	source, ok := segment.Get(MetadataSource)
	require.True(t, ok)
	assert.Equal(t, "notes.md", source)
	assert.Equal(t, `TextSegment{source: "notes.md", text: "hello"}`, segment.String())
	assert.Equal(t, `TextSegment{text: "hi"}`, NewTextSegment("hi", nil).String())
}

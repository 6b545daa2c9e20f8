package embeddings

import (
	"context"
	"hash/fnv"
	"strings"
	"unicode"
)

const DefaultHashingDimension = 256

// HashingEmbedder maps text to a bag-of-words vector using feature hashing.
// It needs no network access and always returns the same vector for the
// same text, which makes it useful offline and in tests.
type HashingEmbedder struct {
	dimension int
}

func NewHashingEmbedder(dimension int) *HashingEmbedder {
	if dimension <= 0 {
		dimension = DefaultHashingDimension
	}
	return &HashingEmbedder{dimension: dimension}
}

func (e *HashingEmbedder) Dimension() int {
	return e.dimension
}

func (e *HashingEmbedder) Embed(ctx context.Context, text string) (Embedding, error) {
	if err := ctx.Err(); err != nil {
		return Embedding{}, err
	}
	vector := make([]float32, e.dimension)
	for _, token := range tokenize(text) {
		h := fnv.New32a()
		h.Write([]byte(token))
		sum := h.Sum32()
		// the top bit picks the sign so collisions tend to cancel out
		sign := float32(1)
		if sum&(1<<31) != 0 {
			sign = -1
		}
		vector[int(sum%uint32(e.dimension))] += sign
	}
	return NewEmbedding(vector).Normalized(), nil
}

func (e *HashingEmbedder) EmbedAll(ctx context.Context, segments []TextSegment) ([]Embedding, error) {
	out := make([]Embedding, 0, len(segments))
	for _, segment := range segments {
		embedding, err := e.Embed(ctx, segment.Text)
		if err != nil {
			return nil, err
		}
		out = append(out, embedding)
	}
	return out, nil
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

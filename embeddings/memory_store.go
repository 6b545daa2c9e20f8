package embeddings

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type storedEntry struct {
	id        string
	embedding Embedding
	segment   *TextSegment
}

// InMemoryStore keeps every entry in a slice and answers queries with a
// linear cosine scan. It is safe for concurrent use.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries []storedEntry
	index   map[string]int
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		index: map[string]int{},
	}
}

func (s *InMemoryStore) Add(ctx context.Context, embedding Embedding) (string, error) {
	id := uuid.NewString()
	if err := s.AddWithID(ctx, id, embedding); err != nil {
		return "", err
	}
	return id, nil
}

func (s *InMemoryStore) AddWithID(ctx context.Context, id string, embedding Embedding) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(storedEntry{id: id, embedding: embedding})
	return nil
}

func (s *InMemoryStore) AddSegment(ctx context.Context, embedding Embedding, segment TextSegment) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(storedEntry{id: id, embedding: embedding, segment: segment.clone()})
	return id, nil
}

func (s *InMemoryStore) AddAll(ctx context.Context, embeddings []Embedding, segments []TextSegment) ([]string, error) {
	if segments != nil && len(segments) != len(embeddings) {
		return nil, fmt.Errorf("%w: %d embeddings, %d segments", ErrLengthMismatch, len(embeddings), len(segments))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ids := make([]string, len(embeddings))
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, embedding := range embeddings {
		entry := storedEntry{id: uuid.NewString(), embedding: embedding}
		if segments != nil {
			entry.segment = segments[i].clone()
		}
		s.put(entry)
		ids[i] = entry.id
	}
	log.Debugf("stored %d embeddings, store size is now %d", len(ids), len(s.entries))
	return ids, nil
}

// put must be called with the write lock held. An existing id is replaced
// in place so it keeps its insertion position.
func (s *InMemoryStore) put(entry storedEntry) {
	if i, ok := s.index[entry.id]; ok {
		s.entries[i] = entry
		return
	}
	s.index[entry.id] = len(s.entries)
	s.entries = append(s.entries, entry)
}

func (s *InMemoryStore) FindRelevant(ctx context.Context, reference Embedding, maxResults int, minScore float64) ([]EmbeddingMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matches := []EmbeddingMatch{}
	if maxResults <= 0 {
		return matches, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.entries {
		if entry.embedding.Dimension() != reference.Dimension() {
			return nil, fmt.Errorf("%w: query has %d dimensions, entry %s has %d",
				ErrDimensionMismatch, reference.Dimension(), entry.id, entry.embedding.Dimension())
		}
		score := RelevanceScore(CosineSimilarity(reference.Vector, entry.embedding.Vector))
		if math.IsNaN(score) || score < minScore {
			continue
		}
		var segment *TextSegment
		if entry.segment != nil {
			segment = entry.segment.clone()
		}
		matches = append(matches, EmbeddingMatch{
			ID:        entry.id,
			Score:     score,
			Embedding: entry.embedding,
			Segment:   segment,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	return matches, nil
}

func (s *InMemoryStore) Remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.entries); j++ {
		s.index[s.entries[j].id] = j
	}
	return nil
}

func (s *InMemoryStore) RemoveAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.index = map[string]int{}
	return nil
}

func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

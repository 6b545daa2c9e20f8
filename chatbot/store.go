package chatbot

import (
	"sync"

	"github.com/natexcvi/ragbot/embeddings"
	log "github.com/sirupsen/logrus"
)

var (
	sharedStoreMu sync.Mutex
	sharedStore   embeddings.Store
)

// EmbeddingStore returns the store shared by every component of the
// process. It is created empty on first use.
func EmbeddingStore() embeddings.Store {
	sharedStoreMu.Lock()
	defer sharedStoreMu.Unlock()
	if sharedStore == nil {
		sharedStore = NewEmbeddingStore()
		log.Debug("created shared in-memory embedding store")
	}
	return sharedStore
}

func NewEmbeddingStore() embeddings.Store {
	return embeddings.NewInMemoryStore()
}

// ResetEmbeddingStore forgets the shared store so the next call to
// EmbeddingStore creates a new one. Meant for tests.
func ResetEmbeddingStore() {
	sharedStoreMu.Lock()
	defer sharedStoreMu.Unlock()
	sharedStore = nil
}

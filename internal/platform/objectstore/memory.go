package objectstore

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore keeps uploaded objects in process. Used for local runs and tests.
type MemoryStore struct {
	mu            sync.RWMutex
	objects       map[string][]byte
	publicBaseURL string
}

func NewMemory(publicBaseURL string) *MemoryStore {
	return &MemoryStore{
		objects:       make(map[string][]byte),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (m *MemoryStore) Put(_ context.Context, key, _ string, body []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = append([]byte(nil), body...)
	return m.publicBaseURL + "/" + key, nil
}

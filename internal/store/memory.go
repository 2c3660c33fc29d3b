package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/spacesedan/sentiscore/internal/apperr"
)

// MemoryGateway keeps documents in process memory.
type MemoryGateway struct {
	mu        sync.RWMutex
	documents map[string]map[string]string
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{documents: make(map[string]map[string]string)}
}

func (m *MemoryGateway) Get(_ context.Context, id, field string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	fields, ok := m.documents[id]
	if !ok {
		return "", apperr.NotFound(fmt.Sprintf("document %q does not exist", id)).
			WithContext("document_id", id)
	}
	value, ok := fields[field]
	if !ok {
		return "", apperr.NotFound(fmt.Sprintf("document %q has no field %q", id, field)).
			WithContext("document_id", id)
	}
	return value, nil
}

func (m *MemoryGateway) Put(_ context.Context, id, field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	fields, ok := m.documents[id]
	if !ok {
		fields = make(map[string]string)
		m.documents[id] = fields
	}
	fields[field] = value
	return nil
}

func (m *MemoryGateway) Ping(context.Context) error {
	return nil
}

func (m *MemoryGateway) Close() {}

package store

import (
	"context"
	"sync"
)

// Memory é um backend em processo, usado em execução local e testes
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemory() *Memory { return &Memory{docs: map[string][]byte{}} }

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.docs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Memory) PutAll(_ context.Context, docs []Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range docs {
		m.docs[d.Key] = append([]byte(nil), d.Value...)
	}
	return nil
}

// Put grava um valor cru, útil para semear dados
func (m *Memory) Put(key string, value []byte) {
	m.mu.Lock()
	m.docs[key] = append([]byte(nil), value...)
	m.mu.Unlock()
}

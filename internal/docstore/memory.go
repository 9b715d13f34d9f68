package docstore

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process Store used by tests and unconfigured local runs.
// Documents are kept in insertion order per collection.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]*memCollection
}

type memCollection struct {
	docs  map[string]map[string]any
	order []string
}

// NewMemory builds an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string]*memCollection)}
}

func (m *Memory) collection(name string) *memCollection {
	col, ok := m.collections[name]
	if !ok {
		col = &memCollection{docs: make(map[string]map[string]any)}
		m.collections[name] = col
	}
	return col
}

// Create stores the data under a generated id.
func (m *Memory) Create(_ context.Context, collection string, data map[string]any) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	col := m.collection(collection)
	col.docs[id] = cloneFields(data)
	col.order = append(col.order, id)
	return id, nil
}

// Put creates or replaces the document at a caller-chosen id.
func (m *Memory) Put(_ context.Context, collection, id string, data map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	col := m.collection(collection)
	if _, exists := col.docs[id]; !exists {
		col.order = append(col.order, id)
	}
	col.docs[id] = cloneFields(data)
	return nil
}

// Get returns a copy of the stored document.
func (m *Memory) Get(_ context.Context, collection, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	col, ok := m.collections[collection]
	if !ok {
		return Document{}, ErrNotFound
	}
	data, ok := col.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{ID: id, Data: cloneFields(data)}, nil
}

// List returns all documents in insertion order.
func (m *Memory) List(_ context.Context, collection string) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	col, ok := m.collections[collection]
	if !ok {
		return nil, nil
	}
	docs := make([]Document, 0, len(col.order))
	for _, id := range col.order {
		docs = append(docs, Document{ID: id, Data: cloneFields(col.docs[id])})
	}
	return docs, nil
}

// Query returns documents whose field equals value.
func (m *Memory) Query(_ context.Context, collection, field string, value any) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	col, ok := m.collections[collection]
	if !ok {
		return nil, nil
	}
	var docs []Document
	for _, id := range col.order {
		if col.docs[id][field] == value {
			docs = append(docs, Document{ID: id, Data: cloneFields(col.docs[id])})
		}
	}
	return docs, nil
}

// Update merges fields into an existing document.
func (m *Memory) Update(_ context.Context, collection, id string, partial map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	col, ok := m.collections[collection]
	if !ok {
		return ErrNotFound
	}
	doc, ok := col.docs[id]
	if !ok {
		return ErrNotFound
	}
	for field, value := range partial {
		doc[field] = value
	}
	return nil
}

// Delete removes the document, failing when the id is absent.
func (m *Memory) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	col, ok := m.collections[collection]
	if !ok {
		return ErrNotFound
	}
	if _, ok := col.docs[id]; !ok {
		return ErrNotFound
	}
	delete(col.docs, id)
	for i, existing := range col.order {
		if existing == id {
			col.order = append(col.order[:i], col.order[i+1:]...)
			break
		}
	}
	return nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error {
	return nil
}

func cloneFields(data map[string]any) map[string]any {
	copied := make(map[string]any, len(data))
	for k, v := range data {
		copied[k] = v
	}
	return copied
}

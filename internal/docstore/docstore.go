package docstore

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/survey-service/internal/config"
)

// ErrNotFound signals that a document id is absent from its collection.
var ErrNotFound = errors.New("document not found")

// Document is a schemaless record addressed by collection name and id.
type Document struct {
	ID   string
	Data map[string]any
}

// Store exposes document-level access to the backing database.
// Update merges the given fields into an existing document. Delete of an
// absent id fails with ErrNotFound on every backend.
type Store interface {
	Create(ctx context.Context, collection string, data map[string]any) (string, error)
	Put(ctx context.Context, collection, id string, data map[string]any) error
	Get(ctx context.Context, collection, id string) (Document, error)
	List(ctx context.Context, collection string) ([]Document, error)
	Query(ctx context.Context, collection, field string, value any) ([]Document, error)
	Update(ctx context.Context, collection, id string, partial map[string]any) error
	Delete(ctx context.Context, collection, id string) error
	Close() error
}

// New selects a backend from configuration. Without a project id the
// service falls back to the in-memory store so local runs and tests do not
// need a reachable database.
func New(ctx context.Context, cfg config.FirestoreConfig, logger *zap.Logger) (Store, error) {
	if cfg.ProjectID == "" {
		logger.Warn("GCP_PROJECT_ID not provided; using in-memory document store")
		return NewMemory(), nil
	}
	return NewFirestore(ctx, cfg, logger)
}

package docstore

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/spec-kit/survey-service/internal/config"
)

// Firestore implements Store against Google Cloud Firestore.
type Firestore struct {
	client *firestore.Client
}

// NewFirestore connects to the configured Firestore database. When an
// emulator host is configured the client library routes all traffic there.
func NewFirestore(ctx context.Context, cfg config.FirestoreConfig, logger *zap.Logger) (*Firestore, error) {
	if cfg.EmulatorHost != "" {
		if err := os.Setenv("FIRESTORE_EMULATOR_HOST", cfg.EmulatorHost); err != nil {
			return nil, fmt.Errorf("set emulator host: %w", err)
		}
		logger.Info("using firestore emulator", zap.String("host", cfg.EmulatorHost))
	}

	client, err := firestore.NewClientWithDatabase(ctx, cfg.ProjectID, cfg.Database)
	if err != nil {
		return nil, err
	}

	logger.Info("connected to firestore", zap.String("project", cfg.ProjectID))
	return &Firestore{client: client}, nil
}

// Create stores a new document under a generated id.
func (f *Firestore) Create(ctx context.Context, collection string, data map[string]any) (string, error) {
	ref, _, err := f.client.Collection(collection).Add(ctx, data)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

// Put creates or replaces the document at a caller-chosen id.
func (f *Firestore) Put(ctx context.Context, collection, id string, data map[string]any) error {
	_, err := f.client.Collection(collection).Doc(id).Set(ctx, data)
	return err
}

// Get fetches a single document.
func (f *Firestore) Get(ctx context.Context, collection, id string) (Document, error) {
	snap, err := f.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

// List streams every document in the collection. The query runs anew on
// each call; results are not cached.
func (f *Firestore) List(ctx context.Context, collection string) ([]Document, error) {
	return drain(f.client.Collection(collection).Documents(ctx))
}

// Query streams documents whose field equals value.
func (f *Firestore) Query(ctx context.Context, collection, field string, value any) ([]Document, error) {
	return drain(f.client.Collection(collection).Where(field, "==", value).Documents(ctx))
}

// Update merges fields into an existing document.
func (f *Firestore) Update(ctx context.Context, collection, id string, partial map[string]any) error {
	updates := make([]firestore.Update, 0, len(partial))
	for field, value := range partial {
		updates = append(updates, firestore.Update{Path: field, Value: value})
	}
	_, err := f.client.Collection(collection).Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

// Delete removes a document, failing when the id is absent.
func (f *Firestore) Delete(ctx context.Context, collection, id string) error {
	_, err := f.client.Collection(collection).Doc(id).Delete(ctx, firestore.Exists)
	if status.Code(err) == codes.NotFound || status.Code(err) == codes.FailedPrecondition {
		return ErrNotFound
	}
	return err
}

// Close releases the underlying client.
func (f *Firestore) Close() error {
	return f.client.Close()
}

func drain(iter *firestore.DocumentIterator) ([]Document, error) {
	defer iter.Stop()

	var docs []Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
}

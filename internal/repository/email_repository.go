package repository

import (
	"context"
	"time"

	"github.com/spec-kit/survey-service/internal/docstore"
	"github.com/spec-kit/survey-service/internal/domain"
)

// EmailRepository defines persistence access for collected emails.
type EmailRepository interface {
	Save(ctx context.Context, email string) (*domain.EmailRecord, error)
	Exists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]*domain.EmailRecord, error)
}

type emailRepository struct {
	store      docstore.Store
	collection string
}

// NewEmailRepository returns a document-store-backed implementation.
func NewEmailRepository(store docstore.Store, collection string) EmailRepository {
	return &emailRepository{store: store, collection: collection}
}

func (r *emailRepository) Save(ctx context.Context, email string) (*domain.EmailRecord, error) {
	record := &domain.EmailRecord{
		Email:      email,
		ReceivedAt: time.Now().UTC(),
	}
	id, err := r.store.Create(ctx, r.collection, map[string]any{
		"email":     record.Email,
		"timestamp": record.ReceivedAt,
	})
	if err != nil {
		return nil, err
	}
	record.ID = id
	return record, nil
}

func (r *emailRepository) Exists(ctx context.Context, email string) (bool, error) {
	docs, err := r.store.Query(ctx, r.collection, "email", email)
	if err != nil {
		return false, err
	}
	return len(docs) > 0, nil
}

func (r *emailRepository) List(ctx context.Context) ([]*domain.EmailRecord, error) {
	docs, err := r.store.List(ctx, r.collection)
	if err != nil {
		return nil, err
	}
	records := make([]*domain.EmailRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, &domain.EmailRecord{
			ID:         doc.ID,
			Email:      fieldString(doc.Data, "email"),
			ReceivedAt: fieldTime(doc.Data, "timestamp"),
		})
	}
	return records, nil
}

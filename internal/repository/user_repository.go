package repository

import (
	"context"
	"time"

	"github.com/spec-kit/survey-service/internal/docstore"
	"github.com/spec-kit/survey-service/internal/domain"
)

// UserRepository defines persistence access for registered accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, partial map[string]any) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	store      docstore.Store
	collection string
}

// NewUserRepository returns a document-store-backed implementation.
func NewUserRepository(store docstore.Store, collection string) UserRepository {
	return &userRepository{store: store, collection: collection}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	id, err := r.store.Create(ctx, r.collection, map[string]any{
		"name":          user.Name,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"created_at":    user.CreatedAt,
		"updated_at":    user.UpdatedAt,
	})
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	doc, err := r.store.Get(ctx, r.collection, id)
	if err != nil {
		return nil, err
	}
	return decodeUser(doc), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	docs, err := r.store.Query(ctx, r.collection, "email", email)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, docstore.ErrNotFound
	}
	return decodeUser(docs[0]), nil
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	docs, err := r.store.List(ctx, r.collection)
	if err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, decodeUser(doc))
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, id string, partial map[string]any) (*domain.User, error) {
	partial["updated_at"] = time.Now().UTC()
	if err := r.store.Update(ctx, r.collection, id, partial); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, r.collection, id)
}

func decodeUser(doc docstore.Document) *domain.User {
	return &domain.User{
		ID:           doc.ID,
		Name:         fieldString(doc.Data, "name"),
		Email:        fieldString(doc.Data, "email"),
		PasswordHash: fieldString(doc.Data, "password_hash"),
		CreatedAt:    fieldTime(doc.Data, "created_at"),
		UpdatedAt:    fieldTime(doc.Data, "updated_at"),
	}
}

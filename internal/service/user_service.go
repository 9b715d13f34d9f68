package service

import (
	"context"

	"github.com/spec-kit/survey-service/internal/auth"
	"github.com/spec-kit/survey-service/internal/domain"
	"github.com/spec-kit/survey-service/internal/repository"
)

// UserService coordinates account CRUD outside the auth flow.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// UserUpdateInput carries the optional fields of a partial update.
type UserUpdateInput struct {
	Name     *string
	Email    *string
	Password *string
}

// List returns all accounts. The query runs against the store on every
// call; nothing is cached in process.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// Get returns one account by id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// Create stores a new account without a duplicate-email check. This is the
// user-management variant's behavior; only the registration flow checks.
func (s *UserService) Create(ctx context.Context, name, email, password string) (*domain.User, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update merges the provided fields into the account. A new password is
// re-hashed before storage.
func (s *UserService) Update(ctx context.Context, id string, input UserUpdateInput) (*domain.User, error) {
	partial := map[string]any{}
	if input.Name != nil {
		partial["name"] = *input.Name
	}
	if input.Email != nil {
		partial["email"] = *input.Email
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		partial["password_hash"] = hash
	}
	return s.users.Update(ctx, id, partial)
}

// Delete removes the account. Deleting an absent id is an error, not a
// no-op.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/survey-service/internal/config"
	"github.com/spec-kit/survey-service/internal/docstore"
	"github.com/spec-kit/survey-service/internal/repository"
	apperrors "github.com/spec-kit/survey-service/pkg/util"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 30,
			BcryptCost:            4,
		},
		Survey: config.SurveyConfig{RatingMin: 1, RatingMax: 7},
	}
}

func newAuthService() (*AuthService, repository.UserRepository) {
	store := docstore.NewMemory()
	users := repository.NewUserRepository(store, "users")
	svc := NewAuthService(testConfig(), AuthDependencies{UserRepo: users})
	return svc, users
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %v", err)
	require.Equal(t, code, domainErr.Code)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	t.Parallel()
	svc, _ := newAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.NotEqual(t, "password123", user.PasswordHash)

	logged, token, exp, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	require.Equal(t, user.ID, logged.ID)
	require.NotEmpty(t, token)
	require.False(t, exp.IsZero())

	subject, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, subject)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	t.Parallel()
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other Alice", "alice@example.com", "password456")
	requireDomainCode(t, err, "CONFLICT")
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	t.Parallel()
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "alice@example.com", "wrong")
	requireDomainCode(t, err, "UNAUTHORIZED")
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	t.Parallel()
	svc, _ := newAuthService()

	_, _, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	requireDomainCode(t, err, "UNAUTHORIZED")
}

package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/survey-service/internal/api/http/handlers"
	"github.com/spec-kit/survey-service/internal/auth"
	"github.com/spec-kit/survey-service/internal/config"
	"github.com/spec-kit/survey-service/internal/docstore"
	"github.com/spec-kit/survey-service/internal/observability"
	"github.com/spec-kit/survey-service/internal/repository"
	"github.com/spec-kit/survey-service/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := config.Config{
		App: config.AppConfig{Name: "survey-service", Version: "test"},
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 30,
			BcryptCost:            4,
		},
		Survey: config.SurveyConfig{RatingMin: 1, RatingMax: 7},
	}

	store := docstore.NewMemory()
	userRepo := repository.NewUserRepository(store, "users")
	emailRepo := repository.NewEmailRepository(store, "emails")
	conversationRepo := repository.NewConversationRepository(store, "conversations")
	responseRepo := repository.NewSurveyResponseRepository(store, "survey_responses")
	participantRepo := repository.NewParticipantRepository(store, "participants")

	authService := service.NewAuthService(cfg, service.AuthDependencies{UserRepo: userRepo})
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	emailService := service.NewEmailService(emailRepo, nil)
	surveyService := service.NewSurveyService(cfg.Survey, service.SurveyDependencies{
		ResponseRepo:     responseRepo,
		ConversationRepo: conversationRepo,
		ParticipantRepo:  participantRepo,
	})

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Emails:         handlers.NewEmailsHandler(emailService),
		Survey:         handlers.NewSurveyHandler(surveyService),
		AuthMiddleware: auth.NewMiddleware(authService.TokenManager(), userRepo),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers map[string]string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	decoded := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

func TestHealthLive(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/health/live", nil, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "alive", body["status"])
}

func TestRegisterLoginMe(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/auth/register", map[string]any{
		"name": "Alice", "email": "alice@example.com", "password": "password123",
	}, nil)
	require.Equal(t, http.StatusCreated, status)
	created := body["data"].(map[string]any)
	require.NotEmpty(t, created["id"])
	require.NotContains(t, created, "password_hash")

	status, body = doJSON(t, app, http.MethodPost, "/auth/login", map[string]any{
		"email": "alice@example.com", "password": "password123",
	}, nil)
	require.Equal(t, http.StatusOK, status)
	authData := body["data"].(map[string]any)
	require.Equal(t, "bearer", authData["token_type"])
	token := authData["token"].(string)
	require.NotEmpty(t, token)

	status, body = doJSON(t, app, http.MethodGet, "/auth/me", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, status)
	me := body["data"].(map[string]any)
	require.Equal(t, "alice@example.com", me["email"])
}

func TestMeWithoutToken(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/auth/me", nil, nil)
	require.Equal(t, http.StatusUnauthorized, status)
	errBody := body["error"].(map[string]any)
	require.Equal(t, "UNAUTHORIZED", errBody["code"])
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	payload := map[string]any{"name": "Alice", "email": "dup@example.com", "password": "password123"}
	status, _ := doJSON(t, app, http.MethodPost, "/auth/register", payload, nil)
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, app, http.MethodPost, "/auth/register", payload, nil)
	require.Equal(t, http.StatusConflict, status)
	errBody := body["error"].(map[string]any)
	require.Equal(t, "CONFLICT", errBody["code"])
}

func TestRegisterValidationListsAllFields(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/auth/register", map[string]any{
		"password": "short",
	}, nil)
	require.Equal(t, http.StatusBadRequest, status)
	errBody := body["error"].(map[string]any)
	require.Equal(t, "VALIDATION_FAILED", errBody["code"])
	details := errBody["details"].(map[string]any)
	require.Contains(t, details, "name")
	require.Contains(t, details, "email")
	require.Contains(t, details, "password")
}

func TestUserCRUD(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	// seed an account and a token for the protected routes
	status, _ := doJSON(t, app, http.MethodPost, "/auth/register", map[string]any{
		"name": "Admin", "email": "admin@example.com", "password": "password123",
	}, nil)
	require.Equal(t, http.StatusCreated, status)
	status, body := doJSON(t, app, http.MethodPost, "/auth/login", map[string]any{
		"email": "admin@example.com", "password": "password123",
	}, nil)
	require.Equal(t, http.StatusOK, status)
	token := body["data"].(map[string]any)["token"].(string)
	authHeader := map[string]string{"Authorization": "Bearer " + token}

	// open create endpoint does not check duplicates
	status, body = doJSON(t, app, http.MethodPost, "/users", map[string]any{
		"name": "Bob", "email": "bob@example.com", "password": "password123",
	}, nil)
	require.Equal(t, http.StatusCreated, status)
	bobID := body["data"].(map[string]any)["id"].(string)

	status, body = doJSON(t, app, http.MethodGet, "/users", nil, authHeader)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body["data"].([]any), 2)

	status, body = doJSON(t, app, http.MethodPut, "/users/"+bobID, map[string]any{
		"name": "Bobby",
	}, authHeader)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Bobby", body["data"].(map[string]any)["name"])
	require.Equal(t, "bob@example.com", body["data"].(map[string]any)["email"])

	status, _ = doJSON(t, app, http.MethodDelete, "/users/"+bobID, nil, authHeader)
	require.Equal(t, http.StatusNoContent, status)

	status, _ = doJSON(t, app, http.MethodGet, "/users/"+bobID, nil, authHeader)
	require.Equal(t, http.StatusNotFound, status)

	// deleting an absent id is an error, not a no-op
	status, _ = doJSON(t, app, http.MethodDelete, "/users/"+bobID, nil, authHeader)
	require.Equal(t, http.StatusNotFound, status)
}

func TestSaveEmailAndDuplicate(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/save_email", map[string]any{
		"email": "signup@example.com",
	}, nil)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "success", body["status"])

	status, _ = doJSON(t, app, http.MethodPost, "/save_email", map[string]any{
		"email": "signup@example.com",
	}, nil)
	require.Equal(t, http.StatusConflict, status)

	status, body = doJSON(t, app, http.MethodGet, "/emails", nil, nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body["data"].([]any), 1)
}

func TestSurveyFlow(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/conversations", map[string]any{
		"uuid": "c1", "batch": 1,
		"turns": []map[string]any{{"role": "user", "content": "hi"}},
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	status, _ = doJSON(t, app, http.MethodPost, "/assign_batch", map[string]any{
		"username": "alice", "batch": 1,
	}, nil)
	require.Equal(t, http.StatusOK, status)

	status, body := doJSON(t, app, http.MethodGet, "/conversations/alice", nil, nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body["data"].([]any), 1)

	status, _ = doJSON(t, app, http.MethodPost, "/submit_survey", map[string]any{
		"username":         "alice",
		"conversation_id":  "c1",
		"ratings":          map[string]int{"manipulation": 2, "persuasion": 6, "helpfulness": 5},
		"highlighted_text": []string{"trust me"},
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	// answered items drop out of the working batch
	status, body = doJSON(t, app, http.MethodGet, "/conversations/alice", nil, nil)
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, body["data"].([]any))

	status, body = doJSON(t, app, http.MethodGet, "/completed_surveys/alice", nil, nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body["data"].([]any), 1)

	status, body = doJSON(t, app, http.MethodPost, "/complete_batch", map[string]any{
		"username": "alice", "batch": 1,
	}, nil)
	require.Equal(t, http.StatusOK, status)
	completed := body["data"].(map[string]any)["completed_batches"].([]any)
	require.Len(t, completed, 1)
}

func TestCompleteBatchUnknownUser(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/complete_batch", map[string]any{
		"username": "ghost", "batch": 1,
	}, nil)
	require.Equal(t, http.StatusNotFound, status)
	errBody := body["error"].(map[string]any)
	require.Equal(t, "NOT_FOUND", errBody["code"])
}

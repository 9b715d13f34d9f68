package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/survey-service/internal/api/http"
	"github.com/spec-kit/survey-service/internal/api/http/handlers"
	"github.com/spec-kit/survey-service/internal/auth"
	"github.com/spec-kit/survey-service/internal/config"
	"github.com/spec-kit/survey-service/internal/docstore"
	"github.com/spec-kit/survey-service/internal/events"
	"github.com/spec-kit/survey-service/internal/observability"
	"github.com/spec-kit/survey-service/internal/repository"
	"github.com/spec-kit/survey-service/internal/service"
	"github.com/spec-kit/survey-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := docstore.New(ctx, cfg.Firestore, logger)
	if err != nil {
		logger.Fatal("failed to connect document store", zap.Error(err))
	}
	defer store.Close() //nolint:errcheck

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	userRepo := repository.NewUserRepository(store, cfg.Firestore.UsersCollection)
	emailRepo := repository.NewEmailRepository(store, cfg.Firestore.EmailsCollection)
	conversationRepo := repository.NewConversationRepository(store, cfg.Firestore.ConversationsCollection)
	responseRepo := repository.NewSurveyResponseRepository(store, cfg.Firestore.ResponsesCollection)
	participantRepo := repository.NewParticipantRepository(store, cfg.Firestore.ParticipantsCollection)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
	})
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	emailService := service.NewEmailService(emailRepo, dispatcher)
	surveyService := service.NewSurveyService(cfg.Survey, service.SurveyDependencies{
		ResponseRepo:     responseRepo,
		ConversationRepo: conversationRepo,
		ParticipantRepo:  participantRepo,
		Dispatcher:       dispatcher,
	})

	auditService := service.NewAuditService(dispatcher, logger)
	worker.StartAuditWorker(auditService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Emails:         handlers.NewEmailsHandler(emailService),
		Survey:         handlers.NewSurveyHandler(surveyService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

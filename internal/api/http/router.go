package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/survey-service/internal/api/http/handlers"
	"github.com/spec-kit/survey-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Emails         *handlers.EmailsHandler
	Survey         *handlers.SurveyHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	users := app.Group("/users")
	users.Post("/", cfg.Users.Create)
	users.Get("/", cfg.AuthMiddleware.Handle, cfg.Users.List)
	users.Get("/:id", cfg.AuthMiddleware.Handle, cfg.Users.Get)
	users.Put("/:id", cfg.AuthMiddleware.Handle, cfg.Users.Update)
	users.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.Users.Delete)

	app.Post("/save_email", cfg.Emails.Save)
	app.Get("/emails", cfg.Emails.List)

	app.Post("/submit_survey", cfg.Survey.Submit)
	app.Get("/completed_surveys/:username", cfg.Survey.Completed)
	app.Post("/complete_batch", cfg.Survey.CompleteBatch)
	app.Post("/assign_batch", cfg.Survey.AssignBatch)
	app.Get("/conversations/:username", cfg.Survey.Conversations)
	app.Post("/conversations", cfg.Survey.SaveConversation)
}

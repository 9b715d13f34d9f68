package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/survey-service/internal/api/dto"
	"github.com/spec-kit/survey-service/internal/service"
	apperrors "github.com/spec-kit/survey-service/pkg/util"
)

// EmailsHandler exposes the email-collection endpoints.
type EmailsHandler struct {
	emails *service.EmailService
}

// NewEmailsHandler constructs handler.
func NewEmailsHandler(emailService *service.EmailService) *EmailsHandler {
	return &EmailsHandler{emails: emailService}
}

// Save handles POST /save_email.
func (h *EmailsHandler) Save(c *fiber.Ctx) error {
	var req dto.SaveEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := req.Validate(); len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details)
	}

	record, err := h.emails.Save(c.Context(), req.Email)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   dto.NewEmailResponse(record),
	})
}

// List handles GET /emails.
func (h *EmailsHandler) List(c *fiber.Ctx) error {
	records, err := h.emails.List(c.Context())
	if err != nil {
		return err
	}
	responses := make([]dto.EmailResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, dto.NewEmailResponse(record))
	}
	return c.JSON(fiber.Map{"data": responses})
}

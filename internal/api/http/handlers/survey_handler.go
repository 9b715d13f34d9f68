package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/survey-service/internal/api/dto"
	"github.com/spec-kit/survey-service/internal/domain"
	"github.com/spec-kit/survey-service/internal/service"
	apperrors "github.com/spec-kit/survey-service/pkg/util"
)

// SurveyHandler exposes submission, completion and batch endpoints.
type SurveyHandler struct {
	survey *service.SurveyService
}

// NewSurveyHandler constructs handler.
func NewSurveyHandler(surveyService *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{survey: surveyService}
}

// Submit handles POST /submit_survey.
func (h *SurveyHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitSurveyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := req.Validate(); len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details)
	}

	response, err := h.survey.SubmitResponse(c.Context(), service.SubmitInput{
		Username:       req.Username,
		ConversationID: req.ConversationID,
		Ratings:        req.Ratings,
		Highlights:     req.HighlightedText,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   dto.NewSurveyResponseBody(response),
	})
}

// Completed handles GET /completed_surveys/:username.
func (h *SurveyHandler) Completed(c *fiber.Ctx) error {
	responses, err := h.survey.CompletedSurveys(c.Context(), c.Params("username"))
	if err != nil {
		return err
	}
	bodies := make([]dto.SurveyResponseBody, 0, len(responses))
	for _, response := range responses {
		bodies = append(bodies, dto.NewSurveyResponseBody(response))
	}
	return c.JSON(fiber.Map{"data": bodies})
}

// CompleteBatch handles POST /complete_batch.
func (h *SurveyHandler) CompleteBatch(c *fiber.Ctx) error {
	var req dto.CompleteBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := req.Validate(); len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details)
	}

	participant, err := h.survey.CompleteBatch(c.Context(), req.Username, *req.Batch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   dto.NewParticipantResponse(participant),
	})
}

// AssignBatch handles POST /assign_batch.
func (h *SurveyHandler) AssignBatch(c *fiber.Ctx) error {
	var req dto.CompleteBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := req.Validate(); len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details)
	}

	participant, err := h.survey.AssignBatch(c.Context(), req.Username, *req.Batch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   dto.NewParticipantResponse(participant),
	})
}

// Conversations handles GET /conversations/:username.
func (h *SurveyHandler) Conversations(c *fiber.Ctx) error {
	conversations, err := h.survey.ConversationsForUser(c.Context(), c.Params("username"))
	if err != nil {
		return err
	}
	if conversations == nil {
		conversations = []*domain.Conversation{}
	}
	return c.JSON(fiber.Map{"data": conversations})
}

// SaveConversation handles POST /conversations.
func (h *SurveyHandler) SaveConversation(c *fiber.Ctx) error {
	var req dto.SaveConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := req.Validate(); len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details)
	}

	conversation := &domain.Conversation{
		UUID:  req.UUID,
		Batch: req.Batch,
		Turns: req.Turns,
	}
	if err := h.survey.SaveConversation(c.Context(), conversation); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"status": "success"})
}

package dto

import (
	"time"

	"github.com/spec-kit/survey-service/internal/domain"
)

// SaveEmailRequest payload.
type SaveEmailRequest struct {
	Email string `json:"email"`
}

// Validate reports every failing field at once.
func (r SaveEmailRequest) Validate() map[string]any {
	details := map[string]any{}
	if r.Email == "" {
		details["email"] = "required"
	}
	return details
}

// EmailResponse is one collected email record.
type EmailResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	ReceivedAt time.Time `json:"timestamp"`
}

// NewEmailResponse maps the domain model.
func NewEmailResponse(record *domain.EmailRecord) EmailResponse {
	return EmailResponse{
		ID:         record.ID,
		Email:      record.Email,
		ReceivedAt: record.ReceivedAt,
	}
}

// SubmitSurveyRequest payload for one answered conversation.
type SubmitSurveyRequest struct {
	Username        string         `json:"username"`
	ConversationID  string         `json:"conversation_id"`
	Ratings         map[string]int `json:"ratings"`
	HighlightedText []string       `json:"highlighted_text"`
}

// Validate reports every failing field at once.
func (r SubmitSurveyRequest) Validate() map[string]any {
	details := map[string]any{}
	if r.Username == "" {
		details["username"] = "required"
	}
	if r.ConversationID == "" {
		details["conversation_id"] = "required"
	}
	if len(r.Ratings) == 0 {
		details["ratings"] = "required"
	}
	return details
}

// SurveyResponseBody is one stored survey response.
type SurveyResponseBody struct {
	ID             string         `json:"id"`
	Username       string         `json:"username"`
	ConversationID string         `json:"conversation_id"`
	Ratings        map[string]int `json:"ratings"`
	Highlights     []string       `json:"highlighted_text"`
	SubmittedAt    time.Time      `json:"submitted_at"`
}

// NewSurveyResponseBody maps the domain model.
func NewSurveyResponseBody(response *domain.SurveyResponse) SurveyResponseBody {
	return SurveyResponseBody{
		ID:             response.ID,
		Username:       response.Username,
		ConversationID: response.ConversationID,
		Ratings:        response.Ratings,
		Highlights:     response.Highlights,
		SubmittedAt:    response.SubmittedAt,
	}
}

// CompleteBatchRequest payload.
type CompleteBatchRequest struct {
	Username string `json:"username"`
	Batch    *int   `json:"batch"`
}

// Validate reports every failing field at once.
func (r CompleteBatchRequest) Validate() map[string]any {
	details := map[string]any{}
	if r.Username == "" {
		details["username"] = "required"
	}
	if r.Batch == nil {
		details["batch"] = "required"
	}
	return details
}

// SaveConversationRequest payload for seeding survey items.
type SaveConversationRequest struct {
	UUID  string        `json:"uuid"`
	Batch int           `json:"batch"`
	Turns []domain.Turn `json:"turns"`
}

// Validate reports every failing field at once.
func (r SaveConversationRequest) Validate() map[string]any {
	details := map[string]any{}
	if r.UUID == "" {
		details["uuid"] = "required"
	}
	if len(r.Turns) == 0 {
		details["turns"] = "required"
	}
	return details
}

// ParticipantResponse reports batch assignment state.
type ParticipantResponse struct {
	Username         string `json:"username"`
	Batches          []int  `json:"batches"`
	CompletedBatches []int  `json:"completed_batches"`
}

// NewParticipantResponse maps the domain model.
func NewParticipantResponse(participant *domain.Participant) ParticipantResponse {
	return ParticipantResponse{
		Username:         participant.Username,
		Batches:          participant.Batches,
		CompletedBatches: participant.CompletedBatches,
	}
}

package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventEmailCollected  EventType = "email_collected"
	EventSurveySubmitted EventType = "survey_submitted"
	EventBatchCompleted  EventType = "batch_completed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// EmailCollectedPayload payload.
type EmailCollectedPayload struct {
	Email string `json:"email"`
}

// SurveySubmittedPayload payload.
type SurveySubmittedPayload struct {
	Username       string `json:"username"`
	ConversationID string `json:"conversation_id"`
}

// BatchCompletedPayload payload.
type BatchCompletedPayload struct {
	Username string `json:"username"`
	Batch    int    `json:"batch"`
}

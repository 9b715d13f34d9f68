package domain

import "time"

// Turn is a single utterance inside a conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation is one survey item: a transcript assigned to a batch.
type Conversation struct {
	UUID  string `json:"uuid"`
	Batch int    `json:"batch"`
	Turns []Turn `json:"turns"`
}

// SurveyResponse records a participant's ratings for one conversation.
// At most one response exists per (username, conversation) pair.
type SurveyResponse struct {
	ID             string
	Username       string
	ConversationID string
	Ratings        map[string]int
	Highlights     []string
	SubmittedAt    time.Time
}

// Participant tracks batch assignment and completion for a survey user.
type Participant struct {
	Username         string
	Batches          []int
	CompletedBatches []int
}

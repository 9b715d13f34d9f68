package service

import (
	"context"

	"github.com/spec-kit/survey-service/internal/domain"
	"github.com/spec-kit/survey-service/internal/survey"
)

// SurveyRunner adapts SurveyService to the state machine's loader and
// submitter, so a batch can be driven end to end against the real
// endpoints' logic.
type SurveyRunner struct {
	survey *SurveyService
}

// NewSurveyRunner builds the runner.
func NewSurveyRunner(surveyService *SurveyService) *SurveyRunner {
	return &SurveyRunner{survey: surveyService}
}

// NewMachine starts a machine for the participant, in the loading state.
func (r *SurveyRunner) NewMachine(username string) *survey.Machine {
	return survey.NewMachine(username, r, r)
}

// PendingConversations implements survey.Loader.
func (r *SurveyRunner) PendingConversations(ctx context.Context, username string) ([]*domain.Conversation, error) {
	return r.survey.ConversationsForUser(ctx, username)
}

// Submit implements survey.Submitter.
func (r *SurveyRunner) Submit(ctx context.Context, username string, conversation *domain.Conversation, answers survey.AnswerSet) error {
	_, err := r.survey.SubmitResponse(ctx, SubmitInput{
		Username:       username,
		ConversationID: conversation.UUID,
		Ratings:        answers.Ratings,
		Highlights:     answers.Highlights,
	})
	return err
}

// CompleteBatch implements survey.Submitter.
func (r *SurveyRunner) CompleteBatch(ctx context.Context, username string, batch int) error {
	_, err := r.survey.CompleteBatch(ctx, username, batch)
	return err
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/survey-service/internal/config"
	"github.com/spec-kit/survey-service/internal/domain"
	"github.com/spec-kit/survey-service/internal/events"
	"github.com/spec-kit/survey-service/internal/repository"
	apperrors "github.com/spec-kit/survey-service/pkg/util"
)

// SurveyService coordinates batch assignment, submission and completion.
type SurveyService struct {
	responses     repository.SurveyResponseRepository
	conversations repository.ConversationRepository
	participants  repository.ParticipantRepository
	dispatcher    events.Dispatcher
	ratingMin     int
	ratingMax     int
}

// SurveyDependencies bundles repositories for the survey service.
type SurveyDependencies struct {
	ResponseRepo     repository.SurveyResponseRepository
	ConversationRepo repository.ConversationRepository
	ParticipantRepo  repository.ParticipantRepository
	Dispatcher       events.Dispatcher
}

// NewSurveyService builds the service.
func NewSurveyService(cfg config.SurveyConfig, deps SurveyDependencies) *SurveyService {
	return &SurveyService{
		responses:     deps.ResponseRepo,
		conversations: deps.ConversationRepo,
		participants:  deps.ParticipantRepo,
		dispatcher:    deps.Dispatcher,
		ratingMin:     cfg.RatingMin,
		ratingMax:     cfg.RatingMax,
	}
}

// SubmitInput describes one survey submission.
type SubmitInput struct {
	Username       string
	ConversationID string
	Ratings        map[string]int
	Highlights     []string
}

// SubmitResponse stores a participant's ratings for one conversation. Only
// one response per (username, conversation) pair is accepted; the check is
// a read before the write.
func (s *SurveyService) SubmitResponse(ctx context.Context, input SubmitInput) (*domain.SurveyResponse, error) {
	details := map[string]any{}
	for question, rating := range input.Ratings {
		if rating < s.ratingMin || rating > s.ratingMax {
			details[question] = fmt.Sprintf("rating must be between %d and %d", s.ratingMin, s.ratingMax)
		}
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid ratings", details)
	}

	exists, err := s.responses.Exists(ctx, input.Username, input.ConversationID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflict("conversation already answered", map[string]any{
			"username":        input.Username,
			"conversation_id": input.ConversationID,
		})
	}

	response := &domain.SurveyResponse{
		Username:       input.Username,
		ConversationID: input.ConversationID,
		Ratings:        input.Ratings,
		Highlights:     input.Highlights,
	}
	if err := s.responses.Save(ctx, response); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventSurveySubmitted, response.ID, events.SurveySubmittedPayload{
		Username:       response.Username,
		ConversationID: response.ConversationID,
	})
	return response, nil
}

// CompletedSurveys returns all prior responses for a participant.
func (s *SurveyService) CompletedSurveys(ctx context.Context, username string) ([]*domain.SurveyResponse, error) {
	return s.responses.ListByUsername(ctx, username)
}

// CompleteBatch marks the batch finished for the participant.
func (s *SurveyService) CompleteBatch(ctx context.Context, username string, batch int) (*domain.Participant, error) {
	participant, err := s.participants.CompleteBatch(ctx, username, batch)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventBatchCompleted, username, events.BatchCompletedPayload{
		Username: username,
		Batch:    batch,
	})
	return participant, nil
}

// AssignBatch adds a batch to the participant's working set, creating the
// participant record when missing.
func (s *SurveyService) AssignBatch(ctx context.Context, username string, batch int) (*domain.Participant, error) {
	return s.participants.AssignBatch(ctx, username, batch)
}

// ConversationsForUser expands the participant's assigned batches into the
// conversations still awaiting an answer. Already-answered items are
// filtered out so a participant resuming mid-batch does not repeat them.
func (s *SurveyService) ConversationsForUser(ctx context.Context, username string) ([]*domain.Conversation, error) {
	participant, err := s.participants.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	answered, err := s.responses.ListByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	answeredSet := make(map[string]struct{}, len(answered))
	for _, response := range answered {
		answeredSet[response.ConversationID] = struct{}{}
	}

	var pending []*domain.Conversation
	for _, batch := range participant.Batches {
		conversations, err := s.conversations.ListByBatch(ctx, batch)
		if err != nil {
			return nil, err
		}
		for _, conversation := range conversations {
			if _, done := answeredSet[conversation.UUID]; !done {
				pending = append(pending, conversation)
			}
		}
	}
	return pending, nil
}

// SaveConversation stores or replaces one survey item.
func (s *SurveyService) SaveConversation(ctx context.Context, conversation *domain.Conversation) error {
	return s.conversations.Save(ctx, conversation)
}

func (s *SurveyService) publish(ctx context.Context, eventType events.EventType, subject string, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}

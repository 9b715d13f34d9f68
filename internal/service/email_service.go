package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/survey-service/internal/domain"
	"github.com/spec-kit/survey-service/internal/events"
	"github.com/spec-kit/survey-service/internal/repository"
	apperrors "github.com/spec-kit/survey-service/pkg/util"
)

// EmailService collects email addresses.
type EmailService struct {
	emails     repository.EmailRepository
	dispatcher events.Dispatcher
}

// NewEmailService builds the service.
func NewEmailService(emails repository.EmailRepository, dispatcher events.Dispatcher) *EmailService {
	return &EmailService{emails: emails, dispatcher: dispatcher}
}

// Save stores a new email record. Deduplication is a read before the
// write; the store enforces no uniqueness, so two identical concurrent
// submissions can both land.
func (s *EmailService) Save(ctx context.Context, email string) (*domain.EmailRecord, error) {
	exists, err := s.emails.Exists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflict("email already saved", map[string]any{"email": email})
	}

	record, err := s.emails.Save(ctx, email)
	if err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventEmailCollected,
			Subject:   record.ID,
			Timestamp: time.Now().UTC(),
			Payload:   events.EmailCollectedPayload{Email: record.Email},
		})
	}
	return record, nil
}

// List returns every collected record.
func (s *EmailService) List(ctx context.Context) ([]*domain.EmailRecord, error) {
	return s.emails.List(ctx)
}

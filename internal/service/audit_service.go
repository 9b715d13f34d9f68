package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/survey-service/internal/events"
)

// AuditService writes a structured log line for every domain event,
// giving operators a submission trail without a separate audit store.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserRegistered, a.handle)
	a.dispatcher.Subscribe(events.EventEmailCollected, a.handle)
	a.dispatcher.Subscribe(events.EventSurveySubmitted, a.handle)
	a.dispatcher.Subscribe(events.EventBatchCompleted, a.handle)
}

func (a *AuditService) handle(_ context.Context, event events.Event) error {
	a.logger.Info("domain event",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.String("subject", event.Subject),
		zap.Any("payload", event.Payload))
	return nil
}

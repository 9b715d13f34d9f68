package repository

import (
	"context"
	"time"

	"github.com/spec-kit/survey-service/internal/docstore"
	"github.com/spec-kit/survey-service/internal/domain"
)

// SurveyResponseRepository defines persistence access for submitted ratings.
type SurveyResponseRepository interface {
	Save(ctx context.Context, response *domain.SurveyResponse) error
	ListByUsername(ctx context.Context, username string) ([]*domain.SurveyResponse, error)
	Exists(ctx context.Context, username, conversationID string) (bool, error)
}

type surveyResponseRepository struct {
	store      docstore.Store
	collection string
}

// NewSurveyResponseRepository returns a document-store-backed implementation.
func NewSurveyResponseRepository(store docstore.Store, collection string) SurveyResponseRepository {
	return &surveyResponseRepository{store: store, collection: collection}
}

func (r *surveyResponseRepository) Save(ctx context.Context, response *domain.SurveyResponse) error {
	response.SubmittedAt = time.Now().UTC()

	ratings := make(map[string]any, len(response.Ratings))
	for question, rating := range response.Ratings {
		ratings[question] = rating
	}
	highlights := make([]any, 0, len(response.Highlights))
	for _, span := range response.Highlights {
		highlights = append(highlights, span)
	}

	id, err := r.store.Create(ctx, r.collection, map[string]any{
		"username":        response.Username,
		"conversation_id": response.ConversationID,
		"ratings":         ratings,
		"highlights":      highlights,
		"submitted_at":    response.SubmittedAt,
	})
	if err != nil {
		return err
	}
	response.ID = id
	return nil
}

func (r *surveyResponseRepository) ListByUsername(ctx context.Context, username string) ([]*domain.SurveyResponse, error) {
	docs, err := r.store.Query(ctx, r.collection, "username", username)
	if err != nil {
		return nil, err
	}
	responses := make([]*domain.SurveyResponse, 0, len(docs))
	for _, doc := range docs {
		responses = append(responses, &domain.SurveyResponse{
			ID:             doc.ID,
			Username:       fieldString(doc.Data, "username"),
			ConversationID: fieldString(doc.Data, "conversation_id"),
			Ratings:        fieldIntMap(doc.Data, "ratings"),
			Highlights:     fieldStringSlice(doc.Data, "highlights"),
			SubmittedAt:    fieldTime(doc.Data, "submitted_at"),
		})
	}
	return responses, nil
}

func (r *surveyResponseRepository) Exists(ctx context.Context, username, conversationID string) (bool, error) {
	responses, err := r.ListByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	for _, response := range responses {
		if response.ConversationID == conversationID {
			return true, nil
		}
	}
	return false, nil
}

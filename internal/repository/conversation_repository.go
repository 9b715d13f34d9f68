package repository

import (
	"context"

	"github.com/spec-kit/survey-service/internal/docstore"
	"github.com/spec-kit/survey-service/internal/domain"
)

// ConversationRepository defines persistence access for survey items.
// Conversations are keyed by their own uuid rather than a generated id.
type ConversationRepository interface {
	Save(ctx context.Context, conversation *domain.Conversation) error
	Get(ctx context.Context, uuid string) (*domain.Conversation, error)
	ListByBatch(ctx context.Context, batch int) ([]*domain.Conversation, error)
}

type conversationRepository struct {
	store      docstore.Store
	collection string
}

// NewConversationRepository returns a document-store-backed implementation.
func NewConversationRepository(store docstore.Store, collection string) ConversationRepository {
	return &conversationRepository{store: store, collection: collection}
}

func (r *conversationRepository) Save(ctx context.Context, conversation *domain.Conversation) error {
	turns := make([]any, 0, len(conversation.Turns))
	for _, turn := range conversation.Turns {
		turns = append(turns, map[string]any{
			"role":    turn.Role,
			"content": turn.Content,
		})
	}
	return r.store.Put(ctx, r.collection, conversation.UUID, map[string]any{
		"uuid":  conversation.UUID,
		"batch": conversation.Batch,
		"turns": turns,
	})
}

func (r *conversationRepository) Get(ctx context.Context, uuid string) (*domain.Conversation, error) {
	doc, err := r.store.Get(ctx, r.collection, uuid)
	if err != nil {
		return nil, err
	}
	return decodeConversation(doc), nil
}

func (r *conversationRepository) ListByBatch(ctx context.Context, batch int) ([]*domain.Conversation, error) {
	docs, err := r.store.Query(ctx, r.collection, "batch", batch)
	if err != nil {
		return nil, err
	}
	conversations := make([]*domain.Conversation, 0, len(docs))
	for _, doc := range docs {
		conversations = append(conversations, decodeConversation(doc))
	}
	return conversations, nil
}

func decodeConversation(doc docstore.Document) *domain.Conversation {
	conversation := &domain.Conversation{
		UUID: fieldString(doc.Data, "uuid"),
	}
	if conversation.UUID == "" {
		conversation.UUID = doc.ID
	}
	if batch, ok := fieldInt(doc.Data["batch"]); ok {
		conversation.Batch = batch
	}
	if raw, ok := doc.Data["turns"].([]any); ok {
		for _, item := range raw {
			if turn, ok := item.(map[string]any); ok {
				conversation.Turns = append(conversation.Turns, domain.Turn{
					Role:    fieldString(turn, "role"),
					Content: fieldString(turn, "content"),
				})
			}
		}
	}
	return conversation
}

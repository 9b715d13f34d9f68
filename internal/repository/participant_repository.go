package repository

import (
	"context"

	"github.com/spec-kit/survey-service/internal/docstore"
	"github.com/spec-kit/survey-service/internal/domain"
)

// ParticipantRepository defines persistence access for survey participants.
// Participants are keyed by username. Batch assignment and completion are
// read-modify-write; the store offers no atomic array union, so concurrent
// updates to the same participant can lose an element (documented behavior).
type ParticipantRepository interface {
	Get(ctx context.Context, username string) (*domain.Participant, error)
	Save(ctx context.Context, participant *domain.Participant) error
	AssignBatch(ctx context.Context, username string, batch int) (*domain.Participant, error)
	CompleteBatch(ctx context.Context, username string, batch int) (*domain.Participant, error)
}

type participantRepository struct {
	store      docstore.Store
	collection string
}

// NewParticipantRepository returns a document-store-backed implementation.
func NewParticipantRepository(store docstore.Store, collection string) ParticipantRepository {
	return &participantRepository{store: store, collection: collection}
}

func (r *participantRepository) Get(ctx context.Context, username string) (*domain.Participant, error) {
	doc, err := r.store.Get(ctx, r.collection, username)
	if err != nil {
		return nil, err
	}
	return &domain.Participant{
		Username:         username,
		Batches:          fieldIntSlice(doc.Data, "batches"),
		CompletedBatches: fieldIntSlice(doc.Data, "completed_batches"),
	}, nil
}

func (r *participantRepository) Save(ctx context.Context, participant *domain.Participant) error {
	return r.store.Put(ctx, r.collection, participant.Username, map[string]any{
		"username":          participant.Username,
		"batches":           intsToAny(participant.Batches),
		"completed_batches": intsToAny(participant.CompletedBatches),
	})
}

func (r *participantRepository) AssignBatch(ctx context.Context, username string, batch int) (*domain.Participant, error) {
	participant, err := r.Get(ctx, username)
	if err == docstore.ErrNotFound {
		participant = &domain.Participant{Username: username}
	} else if err != nil {
		return nil, err
	}

	if !containsInt(participant.Batches, batch) {
		participant.Batches = append(participant.Batches, batch)
	}
	if err := r.Save(ctx, participant); err != nil {
		return nil, err
	}
	return participant, nil
}

func (r *participantRepository) CompleteBatch(ctx context.Context, username string, batch int) (*domain.Participant, error) {
	participant, err := r.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	if !containsInt(participant.CompletedBatches, batch) {
		participant.CompletedBatches = append(participant.CompletedBatches, batch)
	}
	if err := r.Save(ctx, participant); err != nil {
		return nil, err
	}
	return participant, nil
}

func intsToAny(values []int) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

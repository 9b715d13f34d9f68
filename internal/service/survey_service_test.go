package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/survey-service/internal/config"
	"github.com/spec-kit/survey-service/internal/docstore"
	"github.com/spec-kit/survey-service/internal/domain"
	"github.com/spec-kit/survey-service/internal/repository"
	apperrors "github.com/spec-kit/survey-service/pkg/util"
)

func newSurveyService() *SurveyService {
	store := docstore.NewMemory()
	return NewSurveyService(config.SurveyConfig{RatingMin: 1, RatingMax: 7}, SurveyDependencies{
		ResponseRepo:     repository.NewSurveyResponseRepository(store, "survey_responses"),
		ConversationRepo: repository.NewConversationRepository(store, "conversations"),
		ParticipantRepo:  repository.NewParticipantRepository(store, "participants"),
	})
}

func validRatings() map[string]int {
	return map[string]int{"manipulation": 3, "persuasion": 5, "helpfulness": 6}
}

func TestSurveyService_SubmitAndListCompleted(t *testing.T) {
	t.Parallel()
	svc := newSurveyService()
	ctx := context.Background()

	response, err := svc.SubmitResponse(ctx, SubmitInput{
		Username:       "alice",
		ConversationID: "conv-1",
		Ratings:        validRatings(),
		Highlights:     []string{"you really should"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, response.ID)

	completed, err := svc.CompletedSurveys(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, completed, 1)
	require.Equal(t, "conv-1", completed[0].ConversationID)
	require.Equal(t, []string{"you really should"}, completed[0].Highlights)
	require.Equal(t, validRatings(), completed[0].Ratings)
}

func TestSurveyService_SubmitTwiceConflicts(t *testing.T) {
	t.Parallel()
	svc := newSurveyService()
	ctx := context.Background()

	_, err := svc.SubmitResponse(ctx, SubmitInput{
		Username: "alice", ConversationID: "conv-1", Ratings: validRatings(),
	})
	require.NoError(t, err)

	_, err = svc.SubmitResponse(ctx, SubmitInput{
		Username: "alice", ConversationID: "conv-1", Ratings: validRatings(),
	})
	requireDomainCode(t, err, "CONFLICT")

	// a different conversation for the same user is fine
	_, err = svc.SubmitResponse(ctx, SubmitInput{
		Username: "alice", ConversationID: "conv-2", Ratings: validRatings(),
	})
	require.NoError(t, err)
}

func TestSurveyService_SubmitReportsEveryBadRating(t *testing.T) {
	t.Parallel()
	svc := newSurveyService()

	_, err := svc.SubmitResponse(context.Background(), SubmitInput{
		Username:       "alice",
		ConversationID: "conv-1",
		Ratings:        map[string]int{"manipulation": 0, "persuasion": 9, "helpfulness": 4},
	})

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	require.Contains(t, domainErr.Details, "manipulation")
	require.Contains(t, domainErr.Details, "persuasion")
	require.NotContains(t, domainErr.Details, "helpfulness")
}

func TestSurveyService_ConversationsForUserFiltersAnswered(t *testing.T) {
	t.Parallel()
	svc := newSurveyService()
	ctx := context.Background()

	for _, conversation := range []*domain.Conversation{
		{UUID: "c1", Batch: 1, Turns: []domain.Turn{{Role: "user", Content: "hi"}}},
		{UUID: "c2", Batch: 1, Turns: []domain.Turn{{Role: "user", Content: "hello"}}},
		{UUID: "c3", Batch: 2, Turns: []domain.Turn{{Role: "user", Content: "hey"}}},
	} {
		require.NoError(t, svc.SaveConversation(ctx, conversation))
	}

	_, err := svc.AssignBatch(ctx, "alice", 1)
	require.NoError(t, err)
	_, err = svc.AssignBatch(ctx, "alice", 2)
	require.NoError(t, err)

	_, err = svc.SubmitResponse(ctx, SubmitInput{
		Username: "alice", ConversationID: "c1", Ratings: validRatings(),
	})
	require.NoError(t, err)

	pending, err := svc.ConversationsForUser(ctx, "alice")
	require.NoError(t, err)

	uuids := make([]string, 0, len(pending))
	for _, conversation := range pending {
		uuids = append(uuids, conversation.UUID)
	}
	require.ElementsMatch(t, []string{"c2", "c3"}, uuids)
}

func TestSurveyService_ConversationsForUnknownUser(t *testing.T) {
	t.Parallel()
	svc := newSurveyService()

	_, err := svc.ConversationsForUser(context.Background(), "ghost")
	require.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestSurveyService_CompleteBatch(t *testing.T) {
	t.Parallel()
	svc := newSurveyService()
	ctx := context.Background()

	_, err := svc.AssignBatch(ctx, "alice", 3)
	require.NoError(t, err)

	participant, err := svc.CompleteBatch(ctx, "alice", 3)
	require.NoError(t, err)
	require.Equal(t, []int{3}, participant.CompletedBatches)

	// marking the same batch twice stays idempotent
	participant, err = svc.CompleteBatch(ctx, "alice", 3)
	require.NoError(t, err)
	require.Equal(t, []int{3}, participant.CompletedBatches)
}

func TestSurveyService_CompleteBatchUnknownUser(t *testing.T) {
	t.Parallel()
	svc := newSurveyService()

	_, err := svc.CompleteBatch(context.Background(), "ghost", 1)
	require.ErrorIs(t, err, docstore.ErrNotFound)
}

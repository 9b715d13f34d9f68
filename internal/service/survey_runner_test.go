package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/survey-service/internal/domain"
	"github.com/spec-kit/survey-service/internal/survey"
)

// Drives the state machine against the real service layer and in-memory
// store: load a 2-item batch, answer both, finish, and resume with an
// empty working set.
func TestSurveyRunner_EndToEnd(t *testing.T) {
	t.Parallel()
	svc := newSurveyService()
	runner := NewSurveyRunner(svc)
	ctx := context.Background()

	for _, conversation := range []*domain.Conversation{
		{UUID: "c1", Batch: 4, Turns: []domain.Turn{{Role: "user", Content: "hi"}}},
		{UUID: "c2", Batch: 4, Turns: []domain.Turn{{Role: "assistant", Content: "hello"}}},
	} {
		require.NoError(t, svc.SaveConversation(ctx, conversation))
	}
	_, err := svc.AssignBatch(ctx, "alice", 4)
	require.NoError(t, err)

	m := runner.NewMachine("alice")
	require.NoError(t, m.Load(ctx))
	require.Equal(t, survey.StatePresenting, m.State())

	for m.State() == survey.StatePresenting {
		for _, question := range survey.RequiredQuestions {
			require.NoError(t, m.SetRating(question, 4))
		}
		require.NoError(t, m.Next(ctx))
	}
	require.Equal(t, survey.StateCompleted, m.State())
	require.NoError(t, m.FinishBatch(ctx))

	completed, err := svc.CompletedSurveys(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, completed, 2)

	participant, err := svc.CompleteBatch(ctx, "alice", 4)
	require.NoError(t, err)
	require.Equal(t, []int{4}, participant.CompletedBatches)

	// resuming after completion: nothing pending, machine completes
	// immediately without submitting
	resumed := runner.NewMachine("alice")
	require.NoError(t, resumed.Load(ctx))
	require.Equal(t, survey.StateCompleted, resumed.State())

	completed, err = svc.CompletedSurveys(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, completed, 2)
}

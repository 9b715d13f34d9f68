package survey

import (
	"context"
	"errors"

	"github.com/spec-kit/survey-service/internal/domain"
)

// State enumerates the machine's states.
type State int

const (
	StateLoading State = iota
	StatePresenting
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StatePresenting:
		return "presenting"
	case StateCompleted:
		return "completed"
	}
	return "unknown"
}

// RequiredQuestions is the closed set of ratings every item needs before
// forward navigation unlocks.
var RequiredQuestions = []string{"manipulation", "persuasion", "helpfulness"}

var (
	ErrInvalidTransition = errors.New("transition not allowed in current state")
	ErrIncompleteAnswers = errors.New("all required questions must be answered")
	ErrUnknownQuestion   = errors.New("question is not part of the survey")
	ErrNoPreviousItem    = errors.New("already at the first item")
)

// AnswerSet holds the selections for the item currently presented.
type AnswerSet struct {
	Ratings    map[string]int
	Highlights []string
}

// Loader fetches the participant's working batch with already-answered
// items filtered out.
type Loader interface {
	PendingConversations(ctx context.Context, username string) ([]*domain.Conversation, error)
}

// Submitter sends per-item answers and batch completion to the server.
type Submitter interface {
	Submit(ctx context.Context, username string, conversation *domain.Conversation, answers AnswerSet) error
	CompleteBatch(ctx context.Context, username string, batch int) error
}

// Machine drives a participant through a batch of conversations:
// loading -> presenting(i) -> {presenting(i+1) | completed}, with a back
// transition presenting(i) -> presenting(i-1). Submissions are synchronous,
// so at most one is in flight.
type Machine struct {
	username  string
	loader    Loader
	submitter Submitter

	state   State
	index   int
	items   []*domain.Conversation
	answers AnswerSet
}

// NewMachine builds a machine in the loading state.
func NewMachine(username string, loader Loader, submitter Submitter) *Machine {
	return &Machine{
		username:  username,
		loader:    loader,
		submitter: submitter,
		state:     StateLoading,
	}
}

// Load fetches the working batch and presents the first item. An empty
// batch transitions straight to completed without any submission.
func (m *Machine) Load(ctx context.Context) error {
	if m.state != StateLoading {
		return ErrInvalidTransition
	}

	items, err := m.loader.PendingConversations(ctx, m.username)
	if err != nil {
		return err
	}
	m.items = items

	if len(items) == 0 {
		m.state = StateCompleted
		return nil
	}
	m.state = StatePresenting
	m.index = 0
	m.resetAnswers()
	return nil
}

// State reports the current state.
func (m *Machine) State() State {
	return m.state
}

// Current returns the item being presented.
func (m *Machine) Current() *domain.Conversation {
	if m.state != StatePresenting {
		return nil
	}
	return m.items[m.index]
}

// Progress reports the 1-based position within the working batch.
func (m *Machine) Progress() (current, total int) {
	if m.state == StateCompleted {
		return len(m.items), len(m.items)
	}
	if m.state == StateLoading {
		return 0, 0
	}
	return m.index + 1, len(m.items)
}

// SetRating records an answer for the current item.
func (m *Machine) SetRating(question string, value int) error {
	if m.state != StatePresenting {
		return ErrInvalidTransition
	}
	if !isRequiredQuestion(question) {
		return ErrUnknownQuestion
	}
	m.answers.Ratings[question] = value
	return nil
}

// SetHighlights records the free-text highlighted spans for the current
// item. Highlights are optional.
func (m *Machine) SetHighlights(spans []string) error {
	if m.state != StatePresenting {
		return ErrInvalidTransition
	}
	m.answers.Highlights = spans
	return nil
}

// CanAdvance reports whether every required question has a selection.
func (m *Machine) CanAdvance() bool {
	if m.state != StatePresenting {
		return false
	}
	for _, question := range RequiredQuestions {
		if _, ok := m.answers.Ratings[question]; !ok {
			return false
		}
	}
	return true
}

// Next submits the current answers and advances. Submitting the last item
// transitions to completed; the caller then has only FinishBatch left.
func (m *Machine) Next(ctx context.Context) error {
	if m.state != StatePresenting {
		return ErrInvalidTransition
	}
	if !m.CanAdvance() {
		return ErrIncompleteAnswers
	}

	if err := m.submitter.Submit(ctx, m.username, m.items[m.index], m.answers); err != nil {
		// state unchanged; the caller may retry the same item
		return err
	}

	if m.index == len(m.items)-1 {
		m.state = StateCompleted
		return nil
	}
	m.index++
	m.resetAnswers()
	return nil
}

// Back re-presents the previous item without resubmitting it.
func (m *Machine) Back() error {
	if m.state != StatePresenting {
		return ErrInvalidTransition
	}
	if m.index == 0 {
		return ErrNoPreviousItem
	}
	m.index--
	m.resetAnswers()
	return nil
}

// FinishBatch reports completion for every distinct batch in the working
// set. With an empty working set there is nothing to report.
func (m *Machine) FinishBatch(ctx context.Context) error {
	if m.state != StateCompleted {
		return ErrInvalidTransition
	}

	seen := map[int]struct{}{}
	for _, item := range m.items {
		if _, done := seen[item.Batch]; done {
			continue
		}
		seen[item.Batch] = struct{}{}
		if err := m.submitter.CompleteBatch(ctx, m.username, item.Batch); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) resetAnswers() {
	m.answers = AnswerSet{Ratings: make(map[string]int)}
}

func isRequiredQuestion(question string) bool {
	for _, q := range RequiredQuestions {
		if q == question {
			return true
		}
	}
	return false
}

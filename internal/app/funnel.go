package app

import (
	"afh-prelander-service/internal/domain"
)

// FunnelState is the explicit state of one quiz run: the current step and the
// draft answers collected so far. Steps 0..N-1 are the qualification
// questions; step N is the contact step. Transitions are pure functions so
// the flow is testable without any transport.
type FunnelState struct {
	Step  int          `json:"step"`
	Draft domain.Draft `json:"draft"`
}

// NewFunnelState starts a run at the first question with an empty draft.
func NewFunnelState() FunnelState {
	return FunnelState{}
}

// ContactStep reports whether the state has advanced past the last question.
func (s FunnelState) ContactStep() bool {
	return s.Step >= domain.QuestionCount()
}

// CurrentQuestion returns the question for the current step, or false on the
// contact step.
func (s FunnelState) CurrentQuestion() (domain.Question, bool) {
	if s.ContactStep() {
		return domain.Question{}, false
	}
	return domain.Questions()[s.Step], true
}

// Progress is the percentage shown on the funnel progress bar. It saturates
// at 100 on the contact step.
func (s FunnelState) Progress() float64 {
	total := domain.QuestionCount() + 1
	if s.ContactStep() {
		return 100
	}
	return float64(s.Step+1) / float64(total) * 100
}

// SelectOption answers the current step's question and advances one step.
// The answer must target the current question and use one of its defined
// option values; nothing else in the draft is touched.
func SelectOption(s FunnelState, questionID, value string) (FunnelState, error) {
	question, ok := s.CurrentQuestion()
	if !ok {
		return s, domain.ErrFunnelComplete
	}
	if question.ID != questionID {
		return s, domain.ErrQuestionMismatch
	}
	if !question.HasOption(value) {
		return s, domain.ErrOptionNotFound
	}
	if err := s.Draft.SetAnswer(questionID, value); err != nil {
		return s, err
	}
	s.Step++
	return s, nil
}

// Retreat moves back one step. It is a no-op at step 0 and never clears the
// answer of the step being left.
func Retreat(s FunnelState) FunnelState {
	if s.Step > 0 {
		s.Step--
	}
	return s
}

// SetContactField writes name, email or phone into the draft. Unlike answer
// selection it does not advance the step.
func SetContactField(s FunnelState, field, value string) (FunnelState, error) {
	if err := s.Draft.SetContact(field, value); err != nil {
		return s, err
	}
	return s, nil
}

// ValidateContact enforces the submit precondition: name and email present.
func ValidateContact(s FunnelState) error {
	if s.Draft.Name == "" || s.Draft.Email == "" {
		return domain.ErrContactIncomplete
	}
	return nil
}

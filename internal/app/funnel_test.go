package app_test

import (
	"testing"

	"afh-prelander-service/internal/app"
	"afh-prelander-service/internal/domain"
)

func TestSelectOptionWritesOnlySelectedField(t *testing.T) {
	state := app.NewFunnelState()

	next, err := app.SelectOption(state, domain.QuestionSearchingFor, "mom")
	if err != nil {
		t.Fatalf("select option: %v", err)
	}
	if next.Step != 1 {
		t.Fatalf("expected step 1, got %d", next.Step)
	}
	if next.Draft.SearchingFor != "mom" {
		t.Fatalf("expected searchingFor=mom, got %q", next.Draft.SearchingFor)
	}
	if next.Draft != (domain.Draft{SearchingFor: "mom"}) {
		t.Fatalf("expected all other fields untouched, got %+v", next.Draft)
	}
}

func TestSelectOptionRejectsWrongQuestion(t *testing.T) {
	state := app.NewFunnelState()

	if _, err := app.SelectOption(state, domain.QuestionTimeline, "immediate"); err != domain.ErrQuestionMismatch {
		t.Fatalf("expected question mismatch, got %v", err)
	}
	if _, err := app.SelectOption(state, domain.QuestionSearchingFor, "grandma"); err != domain.ErrOptionNotFound {
		t.Fatalf("expected option not found, got %v", err)
	}
}

func TestSelectOptionRejectedOnContactStep(t *testing.T) {
	state := answerAll(t)
	if _, err := app.SelectOption(state, domain.QuestionTimeline, "immediate"); err != domain.ErrFunnelComplete {
		t.Fatalf("expected funnel complete, got %v", err)
	}
}

func TestRetreat(t *testing.T) {
	state := app.NewFunnelState()
	if back := app.Retreat(state); back.Step != 0 {
		t.Fatalf("expected retreat at step 0 to be a no-op, got step %d", back.Step)
	}

	state, err := app.SelectOption(state, domain.QuestionSearchingFor, "dad")
	if err != nil {
		t.Fatalf("select option: %v", err)
	}
	back := app.Retreat(state)
	if back.Step != 0 {
		t.Fatalf("expected step 0 after retreat, got %d", back.Step)
	}
	if back.Draft.SearchingFor != "dad" {
		t.Fatalf("expected retreat to preserve the draft, got %+v", back.Draft)
	}
}

func TestProgressSaturatesOnContactStep(t *testing.T) {
	state := app.NewFunnelState()
	total := domain.QuestionCount() + 1
	want := float64(1) / float64(total) * 100
	if got := state.Progress(); got != want {
		t.Fatalf("expected progress %.2f at step 0, got %.2f", want, got)
	}

	state = answerAll(t)
	if !state.ContactStep() {
		t.Fatalf("expected contact step after answering all questions")
	}
	if got := state.Progress(); got != 100 {
		t.Fatalf("expected progress 100 on contact step, got %.2f", got)
	}
}

func TestSetContactField(t *testing.T) {
	state := app.NewFunnelState()

	state, err := app.SetContactField(state, "name", "John Smith")
	if err != nil {
		t.Fatalf("set name: %v", err)
	}
	if state.Step != 0 {
		t.Fatalf("expected contact updates not to advance, got step %d", state.Step)
	}
	if _, err := app.SetContactField(state, "address", "nope"); err != domain.ErrContactFieldNotFound {
		t.Fatalf("expected contact field rejection, got %v", err)
	}
}

func TestValidateContact(t *testing.T) {
	state := app.NewFunnelState()
	if err := app.ValidateContact(state); err != domain.ErrContactIncomplete {
		t.Fatalf("expected incomplete contact, got %v", err)
	}

	state.Draft.Name = "John Smith"
	if err := app.ValidateContact(state); err != domain.ErrContactIncomplete {
		t.Fatalf("expected incomplete contact without email, got %v", err)
	}

	state.Draft.Email = "john@example.com"
	if err := app.ValidateContact(state); err != nil {
		t.Fatalf("expected valid contact, got %v", err)
	}
}

func answerAll(t *testing.T) app.FunnelState {
	t.Helper()
	state := app.NewFunnelState()
	for _, q := range domain.Questions() {
		var err error
		state, err = app.SelectOption(state, q.ID, q.Options[0].Value)
		if err != nil {
			t.Fatalf("answer %s: %v", q.ID, err)
		}
	}
	return state
}

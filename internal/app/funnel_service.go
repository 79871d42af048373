package app

import (
	"context"
	"net/url"
	"strings"
	"time"

	"afh-prelander-service/internal/domain"
)

// DraftStore holds in-progress funnel sessions keyed by opaque session ID
// (in-memory, Redis, etc). Implementations expire drafts after a TTL.
type DraftStore interface {
	Create(ctx context.Context, state FunnelState) (string, error)
	Get(ctx context.Context, id string) (FunnelState, error)
	Save(ctx context.Context, id string, state FunnelState) error
	Delete(ctx context.Context, id string) error
}

// FunnelService drives funnel sessions through the pure state transitions
// and hands completed drafts to the lead pipeline.
type FunnelService struct {
	drafts      DraftStore
	leads       *LeadService
	redirectURL string
	now         func() time.Time
}

func NewFunnelService(drafts DraftStore, leads *LeadService, redirectURL string) *FunnelService {
	return &FunnelService{
		drafts:      drafts,
		leads:       leads,
		redirectURL: redirectURL,
		now:         time.Now,
	}
}

// Start creates a fresh session at the first question.
func (s *FunnelService) Start(ctx context.Context) (string, FunnelState, error) {
	state := NewFunnelState()
	id, err := s.drafts.Create(ctx, state)
	if err != nil {
		return "", FunnelState{}, err
	}
	return id, state, nil
}

// Get returns the current state of a session.
func (s *FunnelService) Get(ctx context.Context, id string) (FunnelState, error) {
	return s.drafts.Get(ctx, id)
}

// Answer applies SelectOption to the session and persists the result.
func (s *FunnelService) Answer(ctx context.Context, id, questionID, value string) (FunnelState, error) {
	return s.apply(ctx, id, func(state FunnelState) (FunnelState, error) {
		return SelectOption(state, questionID, value)
	})
}

// Back applies Retreat to the session.
func (s *FunnelService) Back(ctx context.Context, id string) (FunnelState, error) {
	return s.apply(ctx, id, func(state FunnelState) (FunnelState, error) {
		return Retreat(state), nil
	})
}

// SetContact writes one contact field into the session draft.
func (s *FunnelService) SetContact(ctx context.Context, id, field, value string) (FunnelState, error) {
	return s.apply(ctx, id, func(state FunnelState) (FunnelState, error) {
		return SetContactField(state, field, value)
	})
}

func (s *FunnelService) apply(ctx context.Context, id string, transition func(FunnelState) (FunnelState, error)) (FunnelState, error) {
	state, err := s.drafts.Get(ctx, id)
	if err != nil {
		return FunnelState{}, err
	}
	next, err := transition(state)
	if err != nil {
		return state, err
	}
	if err := s.drafts.Save(ctx, id, next); err != nil {
		return state, err
	}
	return next, nil
}

// SubmitOutcome is what the funnel client needs after submitting: where to
// send the visitor, and what actually happened to the lead.
type SubmitOutcome struct {
	RedirectURL string
	Result      SubmitResult
}

// Submit validates the contact fields, runs the lead pipeline and discards
// the draft. Pipeline failures are swallowed: the visitor is forwarded to the
// destination site no matter what, so the redirect URL is always populated on
// a validated draft.
func (s *FunnelService) Submit(ctx context.Context, id string) (SubmitOutcome, error) {
	state, err := s.drafts.Get(ctx, id)
	if err != nil {
		return SubmitOutcome{}, err
	}
	if err := ValidateContact(state); err != nil {
		return SubmitOutcome{}, err
	}

	lead := leadFromDraft(state.Draft)
	lead.SubmittedAt = s.now().UTC()
	result, _ := s.leads.Submit(ctx, lead)

	if err := s.drafts.Delete(ctx, id); err != nil {
		return SubmitOutcome{}, err
	}
	return SubmitOutcome{
		RedirectURL: RedirectURL(s.redirectURL, state.Draft),
		Result:      result,
	}, nil
}

// RedirectURL appends every non-empty draft field to the destination origin
// as query parameters, preserving funnel field order.
func RedirectURL(base string, draft domain.Draft) string {
	fields := draft.Fields()
	if len(fields) == 0 {
		return base
	}
	var query strings.Builder
	for i, f := range fields {
		if i > 0 {
			query.WriteByte('&')
		}
		query.WriteString(url.QueryEscape(f.Key))
		query.WriteByte('=')
		query.WriteString(url.QueryEscape(f.Value))
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + query.String()
}

func leadFromDraft(draft domain.Draft) domain.Lead {
	return domain.Lead{
		Name:          draft.Name,
		Email:         draft.Email,
		Phone:         draft.Phone,
		SearchingFor:  draft.SearchingFor,
		CareLevel:     draft.CareLevel,
		MobilityLevel: draft.MobilityLevel,
		MemoryCare:    draft.MemoryCare,
		MedicalNeeds:  draft.MedicalNeeds,
		PriceRange:    draft.PriceRange,
		Timeline:      draft.Timeline,
		Source:        domain.DefaultSource,
	}
}

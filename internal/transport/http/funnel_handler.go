package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"afh-prelander-service/internal/app"
	"afh-prelander-service/internal/domain"
)

// FunnelHandler exposes the quiz flow over HTTP: one session per visitor,
// one transition per request.
type FunnelHandler struct {
	funnel *app.FunnelService
}

func NewFunnelHandler(funnel *app.FunnelService) *FunnelHandler {
	return &FunnelHandler{funnel: funnel}
}

type funnelStateView struct {
	SessionID   string           `json:"sessionId,omitempty"`
	Step        int              `json:"step"`
	TotalSteps  int              `json:"totalSteps"`
	Progress    float64          `json:"progress"`
	ContactStep bool             `json:"contactStep"`
	Question    *domain.Question `json:"question,omitempty"`
	Draft       domain.Draft     `json:"draft"`
}

func newStateView(sessionID string, state app.FunnelState) funnelStateView {
	view := funnelStateView{
		SessionID:   sessionID,
		Step:        state.Step,
		TotalSteps:  domain.QuestionCount() + 1,
		Progress:    state.Progress(),
		ContactStep: state.ContactStep(),
		Draft:       state.Draft,
	}
	if q, ok := state.CurrentQuestion(); ok {
		view.Question = &q
	}
	return view
}

// Start handles POST /api/funnel/session.
func (h *FunnelHandler) Start(w http.ResponseWriter, r *http.Request) {
	id, state, err := h.funnel.Start(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to start session")
		return
	}
	writeJSON(w, http.StatusOK, newStateView(id, state))
}

// Get handles GET /api/funnel/session/{id}.
func (h *FunnelHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	state, err := h.funnel.Get(r.Context(), id)
	if err != nil {
		h.writeFunnelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newStateView(id, state))
}

type answerRequest struct {
	QuestionID string `json:"questionId"`
	Value      string `json:"value"`
}

// Answer handles POST /api/funnel/session/{id}/answer.
func (h *FunnelHandler) Answer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid answer payload")
		return
	}
	state, err := h.funnel.Answer(r.Context(), id, req.QuestionID, req.Value)
	if err != nil {
		h.writeFunnelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newStateView(id, state))
}

// Back handles POST /api/funnel/session/{id}/back.
func (h *FunnelHandler) Back(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	state, err := h.funnel.Back(r.Context(), id)
	if err != nil {
		h.writeFunnelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newStateView(id, state))
}

type contactRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// Contact handles POST /api/funnel/session/{id}/contact.
func (h *FunnelHandler) Contact(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid contact payload")
		return
	}
	state, err := h.funnel.SetContact(r.Context(), id, req.Field, req.Value)
	if err != nil {
		h.writeFunnelError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newStateView(id, state))
}

type submitResponse struct {
	Success     bool    `json:"success"`
	RedirectURL string  `json:"redirectUrl"`
	ID          *string `json:"id"`
	Stored      bool    `json:"stored"`
}

// Submit handles POST /api/funnel/session/{id}/submit. Validation failures
// are the only errors a visitor sees; a broken store or notifier still
// forwards them to the destination site.
func (h *FunnelHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	outcome, err := h.funnel.Submit(r.Context(), id)
	if err != nil {
		h.writeFunnelError(w, err)
		return
	}
	var leadID *string
	if outcome.Result.ID != "" {
		leadID = &outcome.Result.ID
	}
	writeJSON(w, http.StatusOK, submitResponse{
		Success:     true,
		RedirectURL: outcome.RedirectURL,
		ID:          leadID,
		Stored:      outcome.Result.Stored,
	})
}

func (h *FunnelHandler) writeFunnelError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrQuestionMismatch), errors.Is(err, domain.ErrFunnelComplete):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrOptionNotFound),
		errors.Is(err, domain.ErrContactFieldNotFound),
		errors.Is(err, domain.ErrContactIncomplete):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

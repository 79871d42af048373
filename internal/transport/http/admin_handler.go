package http

import (
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"afh-prelander-service/internal/app"
	"afh-prelander-service/internal/domain"
)

//go:embed templates/admin.html
var adminPage []byte

//go:embed templates/login.html
var loginPageHTML []byte

// AdminHandler serves the dashboard pages and the authenticated JSON APIs
// behind the admin gate.
type AdminHandler struct {
	auth      *app.AuthService
	dashboard *app.DashboardService
	now       func() time.Time
}

func NewAdminHandler(auth *app.AuthService, dashboard *app.DashboardService) *AdminHandler {
	return &AdminHandler{auth: auth, dashboard: dashboard, now: time.Now}
}

// DashboardPage serves the embedded dashboard shell.
func (h *AdminHandler) DashboardPage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(adminPage)
}

// LoginPage serves the embedded login form.
func (h *AdminHandler) LoginPage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(loginPageHTML)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Email   string `json:"email"`
}

// Login handles POST /admin/api/login. The error body distinguishes bad
// credentials from an unconfigured backend from a timed-out check.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid login payload")
		return
	}

	session, err := h.auth.Login(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	case errors.Is(err, domain.ErrAuthDisabled):
		writeError(w, http.StatusServiceUnavailable, "authentication is not configured")
		return
	case errors.Is(err, domain.ErrAuthTimeout):
		writeError(w, http.StatusGatewayTimeout, "login timed out, try again")
		return
	default:
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, loginResponse{Success: true, Email: session.Email})
}

// Logout handles POST /admin/api/logout.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		h.auth.Logout(r.Context(), cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type leadView struct {
	domain.Lead
	SubmittedRelative string `json:"submittedRelative"`
	SubmittedDisplay  string `json:"submittedDisplay"`
	SearchingForLabel string `json:"searchingForLabel"`
	CareLevelLabel    string `json:"careLevelLabel"`
	PriceRangeLabel   string `json:"priceRangeLabel"`
	TimelineLabel     string `json:"timelineLabel"`
}

type leadsResponse struct {
	Leads []leadView `json:"leads"`
	Count int        `json:"count"`
}

// Leads handles GET /admin/api/leads?q=.
func (h *AdminHandler) Leads(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	leads := h.dashboard.Leads(r.Context(), query)
	now := h.now()

	views := make([]leadView, 0, len(leads))
	for _, lead := range leads {
		views = append(views, leadView{
			Lead:              lead,
			SubmittedRelative: app.FormatRelative(lead.SubmittedAt, now),
			SubmittedDisplay:  app.FormatAbsolute(lead.SubmittedAt),
			SearchingForLabel: domain.OptionLabel(domain.QuestionSearchingFor, lead.SearchingFor),
			CareLevelLabel:    domain.OptionLabel(domain.QuestionCareLevel, lead.CareLevel),
			PriceRangeLabel:   domain.OptionLabel(domain.QuestionPriceRange, lead.PriceRange),
			TimelineLabel:     domain.OptionLabel(domain.QuestionTimeline, lead.Timeline),
		})
	}
	writeJSON(w, http.StatusOK, leadsResponse{Leads: views, Count: len(views)})
}

// Stats handles GET /admin/api/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dashboard.Stats(r.Context()))
}

// Export handles GET /admin/api/leads/export, streaming the full lead set as
// a CSV download.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	csv, err := h.dashboard.ExportCSV(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="leads.csv"`)
	_, _ = w.Write(csv)
}

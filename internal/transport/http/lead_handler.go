package http

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"afh-prelander-service/internal/app"
	"afh-prelander-service/internal/domain"
)

// LeadHandler exposes the direct submission endpoint used by clients that
// collected the whole draft themselves.
type LeadHandler struct {
	leads *app.LeadService
}

func NewLeadHandler(leads *app.LeadService) *LeadHandler {
	return &LeadHandler{leads: leads}
}

type submitLeadRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	SearchingFor  string `json:"searchingFor"`
	CareLevel     string `json:"careLevel"`
	MobilityLevel string `json:"mobilityLevel"`
	MemoryCare    string `json:"memoryCare"`
	MedicalNeeds  string `json:"medicalNeeds"`
	PriceRange    string `json:"priceRange"`
	Timeline      string `json:"timeline"`
	Source        string `json:"source"`
	SubmittedAt   string `json:"submittedAt"`
}

type submitLeadResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	ID      *string `json:"id"`
	Stored  bool    `json:"stored"`
}

// Submit handles POST /api/submit-lead. A syntactically valid body always
// gets a 200: store and notifier failures are logged, never surfaced.
func (h *LeadHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("submit lead: bad body: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to submit lead")
		return
	}

	lead := domain.Lead{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		SearchingFor:  req.SearchingFor,
		CareLevel:     req.CareLevel,
		MobilityLevel: req.MobilityLevel,
		MemoryCare:    req.MemoryCare,
		MedicalNeeds:  req.MedicalNeeds,
		PriceRange:    req.PriceRange,
		Timeline:      req.Timeline,
		Source:        req.Source,
	}
	if t, err := time.Parse(time.RFC3339, req.SubmittedAt); err == nil {
		lead.SubmittedAt = t
	}

	result, err := h.leads.Submit(r.Context(), lead)
	if err != nil {
		log.Printf("submit lead: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to submit lead")
		return
	}

	var id *string
	if result.ID != "" {
		id = &result.ID
	}
	writeJSON(w, http.StatusOK, submitLeadResponse{
		Success: true,
		Message: "Lead submitted successfully",
		ID:      id,
		Stored:  result.Stored,
	})
}

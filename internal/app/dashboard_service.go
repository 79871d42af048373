package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"afh-prelander-service/internal/domain"
)

// LeadReader is the read side of the lead store; the dashboard depends on
// nothing else.
type LeadReader interface {
	ListBySubmitted(ctx context.Context) ([]domain.Lead, error)
}

// DashboardService serves the authenticated review surface: listing,
// searching, stats and CSV export over the persisted leads.
type DashboardService struct {
	leads LeadReader
	now   func() time.Time
}

func NewDashboardService(leads LeadReader) *DashboardService {
	return &DashboardService{leads: leads, now: time.Now}
}

// Leads returns all leads, newest first, filtered by the free-text query.
// A load failure degrades to an empty list; the dashboard never blocks on a
// backend error.
func (s *DashboardService) Leads(ctx context.Context, query string) []domain.Lead {
	leads, err := s.leads.ListBySubmitted(ctx)
	if err != nil {
		log.Printf("dashboard lead load failed: %v", err)
		return []domain.Lead{}
	}
	return FilterLeads(leads, query)
}

// Stats summarizes submission volume for the dashboard header.
type Stats struct {
	Total    int `json:"total"`
	LastWeek int `json:"lastWeek"`
	Today    int `json:"today"`
}

// Stats computes counts over the full lead set. Day and week boundaries use
// the server's local wall clock.
func (s *DashboardService) Stats(ctx context.Context) Stats {
	leads, err := s.leads.ListBySubmitted(ctx)
	if err != nil {
		log.Printf("dashboard stats load failed: %v", err)
		return Stats{}
	}
	return ComputeStats(leads, s.now())
}

// ExportCSV renders the full, unfiltered lead set as CSV.
func (s *DashboardService) ExportCSV(ctx context.Context) ([]byte, error) {
	leads, err := s.leads.ListBySubmitted(ctx)
	if err != nil {
		return nil, err
	}
	return ExportCSV(leads), nil
}

// FilterLeads keeps leads whose name, email, phone, searching-for label or
// price-range label contains the query, case-insensitively. An empty query
// keeps everything.
func FilterLeads(leads []domain.Lead, query string) []domain.Lead {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return leads
	}
	filtered := make([]domain.Lead, 0, len(leads))
	for _, lead := range leads {
		haystacks := []string{
			lead.Name,
			lead.Email,
			lead.Phone,
			domain.OptionLabel(domain.QuestionSearchingFor, lead.SearchingFor),
			domain.OptionLabel(domain.QuestionPriceRange, lead.PriceRange),
		}
		for _, h := range haystacks {
			if strings.Contains(strings.ToLower(h), query) {
				filtered = append(filtered, lead)
				break
			}
		}
	}
	return filtered
}

// ComputeStats counts all leads, those submitted in the last 7 days, and
// those submitted since local midnight.
func ComputeStats(leads []domain.Lead, now time.Time) Stats {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)

	stats := Stats{Total: len(leads)}
	for _, lead := range leads {
		submitted := lead.SubmittedAt.In(now.Location())
		if !submitted.Before(weekAgo) {
			stats.LastWeek++
		}
		if !submitted.Before(midnight) {
			stats.Today++
		}
	}
	return stats
}

var csvColumns = []string{
	"submitted_at", "name", "email", "phone",
	"searching_for", "care_level", "mobility_level", "memory_care",
	"medical_needs", "price_range", "timeline", "source",
}

// ExportCSV renders leads with a fixed column order. Every field is
// double-quoted so commas inside values can never shift columns.
func ExportCSV(leads []domain.Lead) []byte {
	var b strings.Builder
	writeCSVRow(&b, csvColumns)
	for _, lead := range leads {
		writeCSVRow(&b, []string{
			lead.SubmittedAt.UTC().Format(time.RFC3339),
			lead.Name,
			lead.Email,
			lead.Phone,
			lead.SearchingFor,
			lead.CareLevel,
			lead.MobilityLevel,
			lead.MemoryCare,
			lead.MedicalNeeds,
			lead.PriceRange,
			lead.Timeline,
			lead.Source,
		})
	}
	return []byte(b.String())
}

func writeCSVRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

// FormatRelative renders a submission time for the dashboard list: recent
// leads get a relative age, older ones the absolute form.
func FormatRelative(t, now time.Time) string {
	age := now.Sub(t)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	case age < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	default:
		return FormatAbsolute(t)
	}
}

// FormatAbsolute renders a timestamp the way the dashboard detail view shows it.
func FormatAbsolute(t time.Time) string {
	return t.Format("Jan 2, 2006 3:04 PM")
}

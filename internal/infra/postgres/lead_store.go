package postgres

import (
	"context"
	"fmt"

	"afh-prelander-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// LeadStore persists leads in the leads table. Rows are insert-only.
type LeadStore struct {
	pool *pgxpool.Pool
}

func NewLeadStore(pool *pgxpool.Pool) *LeadStore {
	return &LeadStore{pool: pool}
}

func (s *LeadStore) Insert(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO leads (
			name, email, phone,
			searching_for, care_level, mobility_level, memory_care,
			medical_needs, price_range, timeline,
			source, submitted_at
		) VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`,
		lead.Name, lead.Email, lead.Phone,
		lead.SearchingFor, lead.CareLevel, lead.MobilityLevel, lead.MemoryCare,
		lead.MedicalNeeds, lead.PriceRange, lead.Timeline,
		lead.Source, lead.SubmittedAt,
	)
	if err := row.Scan(&lead.ID, &lead.CreatedAt); err != nil {
		return domain.Lead{}, fmt.Errorf("insert lead: %w", err)
	}
	return lead, nil
}

func (s *LeadStore) ListBySubmitted(ctx context.Context) ([]domain.Lead, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, email, COALESCE(phone, ''),
			searching_for, care_level, mobility_level, memory_care,
			medical_needs, price_range, timeline,
			source, submitted_at, created_at
		FROM leads
		ORDER BY submitted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]domain.Lead, 0)
	for rows.Next() {
		var lead domain.Lead
		if err := rows.Scan(
			&lead.ID, &lead.Name, &lead.Email, &lead.Phone,
			&lead.SearchingFor, &lead.CareLevel, &lead.MobilityLevel, &lead.MemoryCare,
			&lead.MedicalNeeds, &lead.PriceRange, &lead.Timeline,
			&lead.Source, &lead.SubmittedAt, &lead.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read leads: %w", err)
	}
	return leads, nil
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Distriops-api/internal/domain/entity"
	"github.com/jhoicas/Distriops-api/internal/domain/repository"
)

var _ repository.AdSpendRepository = (*AdSpendRepo)(nil)

// AdSpendRepo implementación de AdSpendRepository sobre PostgreSQL.
type AdSpendRepo struct {
	q Querier
}

// NewAdSpendRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdSpendRepository(q Querier) *AdSpendRepo {
	return &AdSpendRepo{q: q}
}

// Create inserta un gasto publicitario.
func (r *AdSpendRepo) Create(s *entity.AdSpend) error {
	query := `
		INSERT INTO ad_spends (id, marketer_id, platform, amount, spend_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.MarketerID, s.Platform, s.Amount, s.SpendDate, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create ad spend: %w", err)
	}
	return nil
}

// ListByMarketer gastos de un marketer en el rango.
func (r *AdSpendRepo) ListByMarketer(marketerID string, from, to time.Time) ([]*entity.AdSpend, error) {
	query := `SELECT id, marketer_id, platform, amount, spend_date, created_at
		FROM ad_spends
		WHERE marketer_id = $1 AND spend_date >= $2 AND spend_date <= $3
		ORDER BY spend_date`
	return r.list(query, marketerID, from, to)
}

// ListAll gastos de toda la red en el rango.
func (r *AdSpendRepo) ListAll(from, to time.Time) ([]*entity.AdSpend, error) {
	query := `SELECT id, marketer_id, platform, amount, spend_date, created_at
		FROM ad_spends
		WHERE spend_date >= $1 AND spend_date <= $2
		ORDER BY spend_date`
	return r.list(query, from, to)
}

func (r *AdSpendRepo) list(query string, args ...any) ([]*entity.AdSpend, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ad spends: %w", err)
	}
	defer rows.Close()

	var out []*entity.AdSpend
	for rows.Next() {
		var s entity.AdSpend
		if err := rows.Scan(&s.ID, &s.MarketerID, &s.Platform, &s.Amount, &s.SpendDate, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ad spend: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

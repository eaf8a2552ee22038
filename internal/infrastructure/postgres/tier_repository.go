package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Distriops-api/internal/domain/entity"
	"github.com/jhoicas/Distriops-api/internal/domain/repository"
)

var _ repository.TierRepository = (*TierRepo)(nil)

// TierRepo implementación de TierRepository sobre PostgreSQL.
type TierRepo struct {
	q Querier
}

// NewTierRepository construye el adaptador de tiers. Pasar pool o tx (Querier).
func NewTierRepository(q Querier) *TierRepo {
	return &TierRepo{q: q}
}

// ListRewardTiers tiers de premio activos para rol y período, ordenados por min_quantity ASC.
func (r *TierRepo) ListRewardTiers(role string, month, year int) ([]*entity.RewardTier, error) {
	query := `
		SELECT id, role, period_month, period_year, min_quantity, description, active
		FROM reward_tiers
		WHERE role = $1 AND period_month = $2 AND period_year = $3 AND active = true
		ORDER BY min_quantity ASC`
	rows, err := r.q.Query(context.Background(), query, role, month, year)
	if err != nil {
		return nil, fmt.Errorf("list reward tiers: %w", err)
	}
	defer rows.Close()

	var out []*entity.RewardTier
	for rows.Next() {
		var t entity.RewardTier
		if err := rows.Scan(&t.ID, &t.Role, &t.PeriodMonth, &t.PeriodYear, &t.MinQuantity, &t.Description, &t.Active); err != nil {
			return nil, fmt.Errorf("scan reward tier: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// ListCommissionTiers bandas de comisión activas para el rol, ordenadas por min_sales ASC.
func (r *TierRepo) ListCommissionTiers(role string) ([]*entity.CommissionTier, error) {
	query := `
		SELECT id, role, min_sales, max_sales, roas_min, roas_max, commission_pct, bonus_amount, active
		FROM commission_tiers
		WHERE role = $1 AND active = true
		ORDER BY min_sales ASC`
	rows, err := r.q.Query(context.Background(), query, role)
	if err != nil {
		return nil, fmt.Errorf("list commission tiers: %w", err)
	}
	defer rows.Close()

	var out []*entity.CommissionTier
	for rows.Next() {
		var t entity.CommissionTier
		if err := rows.Scan(&t.ID, &t.Role, &t.MinSales, &t.MaxSales, &t.RoasMin, &t.RoasMax, &t.CommissionPct, &t.BonusAmount, &t.Active); err != nil {
			return nil, fmt.Errorf("scan commission tier: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

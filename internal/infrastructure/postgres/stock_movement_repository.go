package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Distriops-api/internal/domain/entity"
	"github.com/jhoicas/Distriops-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del rastro de movimientos sobre PostgreSQL.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements
			(id, actor_id, product_id, quantity, direction, counterparty_id, description, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ActorID, m.ProductID, m.Quantity, m.Direction,
		m.CounterpartyID, m.Description, m.Date, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID; nil si no existe.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `
		SELECT id, actor_id, product_id, quantity, direction, counterparty_id, description, date, created_at, created_by
		FROM stock_movements WHERE id = $1`
	var m entity.StockMovement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ActorID, &m.ProductID, &m.Quantity, &m.Direction,
		&m.CounterpartyID, &m.Description, &m.Date, &m.CreatedAt, &m.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// Delete elimina un movimiento (solo lo usa la reversión, dentro de su tx).
func (r *StockMovementRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	return nil
}

// ListByActor lista movimientos de un actor, más recientes primero, con rango de fechas opcional.
func (r *StockMovementRepo) ListByActor(actorID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, actor_id, product_id, quantity, direction, counterparty_id, description, date, created_at, created_by
		FROM stock_movements
		WHERE actor_id = $1
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
		ORDER BY date DESC, created_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, actorID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ActorID, &m.ProductID, &m.Quantity, &m.Direction,
			&m.CounterpartyID, &m.Description, &m.Date, &m.CreatedAt, &m.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Distriops-api/internal/domain"
	"github.com/jhoicas/Distriops-api/internal/domain/entity"
	"github.com/jhoicas/Distriops-api/internal/domain/repository"
)

var _ repository.BundleRepository = (*BundleRepo)(nil)

// BundleRepo implementación de BundleRepository sobre PostgreSQL.
// Un combo son dos tablas: bundles y bundle_items (productos constituyentes).
type BundleRepo struct {
	q Querier
}

// NewBundleRepository construye el adaptador de combos. Pasar pool o tx (Querier).
func NewBundleRepository(q Querier) *BundleRepo {
	return &BundleRepo{q: q}
}

// Create inserta el combo y sus items. Se asume llamado dentro de una tx cuando
// la atomicidad entre ambas tablas importa.
func (r *BundleRepo) Create(b *entity.Bundle) error {
	query := `
		INSERT INTO bundles (id, name, master_agent_price, agent_price, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.Name, b.MasterAgentPrice, b.AgentPrice, b.Active, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create bundle: %w", err)
	}
	for _, item := range b.Items {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO bundle_items (bundle_id, product_id, quantity) VALUES ($1, $2, $3)`,
			b.ID, item.ProductID, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("create bundle item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un combo con sus items; nil si no existe.
func (r *BundleRepo) GetByID(id string) (*entity.Bundle, error) {
	query := `SELECT id, name, master_agent_price, agent_price, active, created_at, updated_at
		FROM bundles WHERE id = $1`
	var b entity.Bundle
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.Name, &b.MasterAgentPrice, &b.AgentPrice, &b.Active, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bundle: %w", err)
	}
	items, err := r.itemsFor(id)
	if err != nil {
		return nil, err
	}
	b.Items = items
	return &b, nil
}

// List lista combos con sus items, opcionalmente solo activos.
func (r *BundleRepo) List(onlyActive bool) ([]*entity.Bundle, error) {
	query := `SELECT id, name, master_agent_price, agent_price, active, created_at, updated_at
		FROM bundles WHERE ($1 = false OR active = true) ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list bundles: %w", err)
	}
	defer rows.Close()

	var out []*entity.Bundle
	for rows.Next() {
		var b entity.Bundle
		if err := rows.Scan(&b.ID, &b.Name, &b.MasterAgentPrice, &b.AgentPrice, &b.Active, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bundle: %w", err)
		}
		out = append(out, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, b := range out {
		items, err := r.itemsFor(b.ID)
		if err != nil {
			return nil, err
		}
		b.Items = items
	}
	return out, nil
}

func (r *BundleRepo) itemsFor(bundleID string) ([]entity.BundleItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT product_id, quantity FROM bundle_items WHERE bundle_id = $1 ORDER BY product_id`, bundleID)
	if err != nil {
		return nil, fmt.Errorf("list bundle items: %w", err)
	}
	defer rows.Close()

	var items []entity.BundleItem
	for rows.Next() {
		var it entity.BundleItem
		if err := rows.Scan(&it.ProductID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan bundle item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distriops-api/internal/domain/entity"
	"github.com/jhoicas/Distriops-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el saldo actual de un producto para un actor. Sin fila = saldo cero.
func (r *StockRepo) Get(actorID, productID string) (*entity.Stock, error) {
	query := `
		SELECT actor_id, product_id, quantity, updated_at
		FROM stock WHERE actor_id = $1 AND product_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, actorID, productID).Scan(
		&s.ActorID, &s.ProductID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ActorID: actorID, ProductID: productID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Add aplica un delta sobre el saldo (negativo = débito). El brazo de conflicto
// es aditivo: si dos transacciones insertan a la vez la primera fila del par, la
// segunda suma su delta sobre lo ya comprometido en vez de sobreescribirlo.
func (r *StockRepo) Add(actorID, productID string, delta decimal.Decimal) error {
	query := `
		INSERT INTO stock (actor_id, product_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (actor_id, product_id)
		DO UPDATE SET quantity = stock.quantity + EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, actorID, productID, delta)
	if err != nil {
		return fmt.Errorf("add stock: %w", err)
	}
	return nil
}

// GetForUpdate obtiene el saldo y bloquea la fila para update (SELECT FOR UPDATE).
// Sin fila devuelve saldo cero y no bloquea nada; por eso las escrituras van
// siempre por Add (delta), nunca como total calculado de esta lectura.
func (r *StockRepo) GetForUpdate(actorID, productID string) (*entity.Stock, error) {
	query := `
		SELECT actor_id, product_id, quantity, updated_at
		FROM stock WHERE actor_id = $1 AND product_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, actorID, productID).Scan(
		&s.ActorID, &s.ProductID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ActorID: actorID, ProductID: productID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// ListByActor lista los saldos de todos los productos de un actor.
func (r *StockRepo) ListByActor(actorID string) ([]*entity.Stock, error) {
	query := `
		SELECT actor_id, product_id, quantity, updated_at
		FROM stock WHERE actor_id = $1
		ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), query, actorID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var out []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ActorID, &s.ProductID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distriops-api/internal/domain"
	"github.com/jhoicas/Distriops-api/internal/domain/entity"
	"github.com/jhoicas/Distriops-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create inserta un producto. ErrDuplicate si el SKU ya existe.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, base_cost, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.SKU, p.Name, p.BaseCost, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto; nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getBy(`id = $1`, id)
}

// GetBySKU obtiene un producto por SKU; nil si no existe.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	return r.getBy(`sku = $1`, sku)
}

func (r *ProductRepo) getBy(where string, arg any) (*entity.Product, error) {
	query := `SELECT id, sku, name, base_cost, active, created_at, updated_at
		FROM products WHERE ` + where
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.SKU, &p.Name, &p.BaseCost, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List lista productos, opcionalmente solo activos.
func (r *ProductRepo) List(onlyActive bool, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT id, sku, name, base_cost, active, created_at, updated_at
		FROM products
		WHERE ($1 = false OR active = true)
		ORDER BY sku LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, onlyActive, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.BaseCost, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// UpdateCost actualiza el costo base.
func (r *ProductRepo) UpdateCost(id string, cost decimal.Decimal) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE products SET base_cost = $1, updated_at = now() WHERE id = $2`, cost, id)
	if err != nil {
		return fmt.Errorf("update cost: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetActive activa o desactiva el producto.
func (r *ProductRepo) SetActive(id string, active bool) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE products SET active = $1, updated_at = now() WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("set active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de órdenes. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, buyer_id, seller_id, product_id, bundle_id, product_name,
	quantity, unit_price, total_price, status, payment_ref, receipt_url, remarks,
	created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.BuyerID, &o.SellerID, &o.ProductID, &o.BundleID, &o.ProductName,
		&o.Quantity, &o.UnitPrice, &o.TotalPrice, &o.Status, &o.PaymentRef,
		&o.ReceiptURL, &o.Remarks, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserta una orden.
func (r *OrderRepo) Create(o *entity.Order) error {
	query := `
		INSERT INTO orders
			(id, buyer_id, seller_id, product_id, bundle_id, product_name,
			 quantity, unit_price, total_price, status, payment_ref, receipt_url, remarks,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.BuyerID, o.SellerID, o.ProductID, o.BundleID, o.ProductName,
		o.Quantity, o.UnitPrice, o.TotalPrice, o.Status, o.PaymentRef,
		o.ReceiptURL, o.Remarks, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create order: orden duplicada: %w", err)
		}
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden; nil si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(context.Background(),
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// GetForUpdate obtiene la orden bloqueando la fila (SELECT FOR UPDATE); nil si no existe.
func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(context.Background(),
		`SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order for update: %w", err)
	}
	return o, nil
}

// UpdateStatusIf compare-and-set de estado: cambia solo si el actual es fromStatus.
// Retorna false si ninguna fila cambió (otro operador ganó la carrera).
func (r *OrderRepo) UpdateStatusIf(id, fromStatus, toStatus string, updatedAt time.Time) (bool, error) {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		toStatus, updatedAt, id, fromStatus,
	)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListByStatus lista órdenes por estado, más antiguas primero (cola de aprobación).
func (r *OrderRepo) ListByStatus(status string, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE status = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`
	return r.list(query, status, limit, offset)
}

// ListByBuyer lista órdenes de un comprador con rango de fechas opcional, más recientes primero.
func (r *OrderRepo) ListByBuyer(buyerID string, from, to *time.Time, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE buyer_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`
	return r.list(query, buyerID, from, to, limit, offset)
}

func (r *OrderRepo) list(query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

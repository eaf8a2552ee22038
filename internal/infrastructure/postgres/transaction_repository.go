package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distriops-api/internal/domain/entity"
	"github.com/jhoicas/Distriops-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL.
// Las transacciones son inmutables: solo INSERT y lecturas.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const txnColumns = `id, order_id, buyer_id, seller_id, product_id, product_name,
	quantity, unit_price, total_price, type, created_at`

// Create inserta una transacción. El índice único por order_id respalda la
// liquidación exactamente una vez también a nivel de datos.
func (r *TransactionRepo) Create(t *entity.Transaction) error {
	query := `
		INSERT INTO transactions
			(id, order_id, buyer_id, seller_id, product_id, product_name,
			 quantity, unit_price, total_price, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.OrderID, t.BuyerID, t.SellerID, t.ProductID, t.ProductName,
		t.Quantity, t.UnitPrice, t.TotalPrice, t.Type, t.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create transaction: la orden ya fue liquidada: %w", err)
		}
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// GetByOrderID obtiene la transacción de una orden; nil si no existe.
func (r *TransactionRepo) GetByOrderID(orderID string) (*entity.Transaction, error) {
	var t entity.Transaction
	err := r.q.QueryRow(context.Background(),
		`SELECT `+txnColumns+` FROM transactions WHERE order_id = $1`, orderID).Scan(
		&t.ID, &t.OrderID, &t.BuyerID, &t.SellerID, &t.ProductID, &t.ProductName,
		&t.Quantity, &t.UnitPrice, &t.TotalPrice, &t.Type, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}

// ListByBuyer lista transacciones de un comprador en el rango.
func (r *TransactionRepo) ListByBuyer(buyerID string, from, to time.Time) ([]*entity.Transaction, error) {
	return r.list(`SELECT `+txnColumns+` FROM transactions
		WHERE buyer_id = $1 AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at DESC`, buyerID, from, to)
}

// ListBySeller lista transacciones de un vendedor en el rango.
func (r *TransactionRepo) ListBySeller(sellerID string, from, to time.Time) ([]*entity.Transaction, error) {
	return r.list(`SELECT `+txnColumns+` FROM transactions
		WHERE seller_id = $1 AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at DESC`, sellerID, from, to)
}

// SumByBuyer total comprado (monto y unidades) del actor en el rango.
func (r *TransactionRepo) SumByBuyer(buyerID string, from, to time.Time) (amount, quantity decimal.Decimal, err error) {
	query := `
		SELECT COALESCE(SUM(total_price), 0), COALESCE(SUM(quantity), 0)
		FROM transactions
		WHERE buyer_id = $1 AND created_at >= $2 AND created_at <= $3`
	err = r.q.QueryRow(context.Background(), query, buyerID, from, to).Scan(&amount, &quantity)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("sum transactions: %w", err)
	}
	return amount, quantity, nil
}

func (r *TransactionRepo) list(query string, args ...any) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(
			&t.ID, &t.OrderID, &t.BuyerID, &t.SellerID, &t.ProductID, &t.ProductName,
			&t.Quantity, &t.UnitPrice, &t.TotalPrice, &t.Type, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

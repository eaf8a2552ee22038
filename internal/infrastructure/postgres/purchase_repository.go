package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Distriops-api/internal/domain/entity"
	"github.com/jhoicas/Distriops-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL.
// El filtro de fechas es amplio (cualquiera de las tres fechas en el rango):
// la ventana exacta por métrica la aplica el motor de agregación en memoria.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `id, marketer_id, product_id, product_name, platform,
	customer_type, delivery_status, quantity, total_price, order_date, processed_date, return_date`

// Create inserta una línea de venta al cliente final.
func (r *PurchaseRepo) Create(p *entity.CustomerPurchase) error {
	query := `
		INSERT INTO customer_purchases
			(id, marketer_id, product_id, product_name, platform, customer_type,
			 delivery_status, quantity, total_price, order_date, processed_date, return_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.MarketerID, p.ProductID, p.ProductName, p.Platform, p.CustomerType,
		p.DeliveryStatus, p.Quantity, p.TotalPrice, p.OrderDate, p.ProcessedDate, p.ReturnDate,
	)
	if err != nil {
		return fmt.Errorf("create purchase: %w", err)
	}
	return nil
}

// ListByMarketer líneas de un marketer con alguna fecha dentro del rango.
func (r *PurchaseRepo) ListByMarketer(marketerID string, from, to time.Time) ([]*entity.CustomerPurchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM customer_purchases
		WHERE marketer_id = $1 AND (
			(order_date >= $2 AND order_date <= $3) OR
			(processed_date >= $2 AND processed_date <= $3) OR
			(return_date >= $2 AND return_date <= $3))
		ORDER BY order_date`
	return r.list(query, marketerID, from, to)
}

// ListAll líneas de toda la red con alguna fecha dentro del rango.
func (r *PurchaseRepo) ListAll(from, to time.Time) ([]*entity.CustomerPurchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM customer_purchases
		WHERE (order_date >= $1 AND order_date <= $2) OR
		      (processed_date >= $1 AND processed_date <= $2) OR
		      (return_date >= $1 AND return_date <= $2)
		ORDER BY order_date`
	return r.list(query, from, to)
}

func (r *PurchaseRepo) list(query string, args ...any) ([]*entity.CustomerPurchase, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var out []*entity.CustomerPurchase
	for rows.Next() {
		var p entity.CustomerPurchase
		if err := rows.Scan(
			&p.ID, &p.MarketerID, &p.ProductID, &p.ProductName, &p.Platform,
			&p.CustomerType, &p.DeliveryStatus, &p.Quantity, &p.TotalPrice,
			&p.OrderDate, &p.ProcessedDate, &p.ReturnDate,
		); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

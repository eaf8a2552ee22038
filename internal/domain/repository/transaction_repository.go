package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distriops-api/internal/domain/entity"
)

// TransactionRepository puerto de transacciones liquidadas (inmutables).
type TransactionRepository interface {
	Create(txn *entity.Transaction) error
	GetByOrderID(orderID string) (*entity.Transaction, error)
	ListByBuyer(buyerID string, from, to time.Time) ([]*entity.Transaction, error)
	ListBySeller(sellerID string, from, to time.Time) ([]*entity.Transaction, error)
	// SumByBuyer total vendido (monto y unidades) del comprador en el rango.
	SumByBuyer(buyerID string, from, to time.Time) (amount, quantity decimal.Decimal, err error)
}

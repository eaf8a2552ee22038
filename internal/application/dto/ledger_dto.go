package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveStockRequest entrada de stock externa a un actor.
type ReceiveStockRequest struct {
	ActorID     string          `json:"actor_id" validate:"required,uuid"`
	ProductID   string          `json:"product_id" validate:"required,uuid"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	Date        string          `json:"date" validate:"omitempty"` // 2006-01-02; vacío = hoy
	Description string          `json:"description" validate:"omitempty,max=500"`
}

// IssueStockRequest salida de stock de un actor.
type IssueStockRequest struct {
	ActorID     string          `json:"actor_id" validate:"required,uuid"`
	ProductID   string          `json:"product_id" validate:"required,uuid"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	Date        string          `json:"date" validate:"omitempty"`
	Description string          `json:"description" validate:"omitempty,max=500"`
}

// TransferStockRequest traslado entre dos actores. product_id o bundle_id, exactamente uno.
type TransferStockRequest struct {
	FromActorID string           `json:"from_actor_id" validate:"required,uuid"`
	ToActorID   string           `json:"to_actor_id" validate:"required,uuid"`
	ProductID   string           `json:"product_id" validate:"omitempty,uuid"`
	BundleID    string           `json:"bundle_id" validate:"omitempty,uuid"`
	Quantity    decimal.Decimal  `json:"quantity" validate:"required"`
	UnitPrice   *decimal.Decimal `json:"unit_price" validate:"omitempty"`
	Date        string           `json:"date" validate:"omitempty"`
}

// StockResponse saldo actual de un actor para un producto.
type StockResponse struct {
	ActorID   string          `json:"actor_id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// StockMovementResponse movimiento del libro de inventario.
type StockMovementResponse struct {
	ID             string          `json:"id"`
	ActorID        string          `json:"actor_id"`
	ProductID      string          `json:"product_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	Direction      string          `json:"direction"`
	CounterpartyID string          `json:"counterparty_id,omitempty"`
	Description    string          `json:"description,omitempty"`
	Date           time.Time       `json:"date"`
	CreatedAt      time.Time       `json:"created_at"`
	CreatedBy      string          `json:"created_by,omitempty"`
}

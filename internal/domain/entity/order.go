package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden. PENDING es el único estado no terminal:
// PENDING → COMPLETED o PENDING → FAILED, exactamente una vez.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusFailed    = "FAILED"
)

// Order orden de compra de un actor de la red (comprador) contra su nivel superior.
// ProductID o BundleID identifican lo comprado; ProductName conserva el nombre de la
// línea (en combos sin product_id es el nombre sintético "SKU-A + SKU-B").
type Order struct {
	ID          string
	BuyerID     string
	SellerID    string
	ProductID   *string
	BundleID    *string
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	Status      string
	PaymentRef  *string // referencia en la pasarela de pago externa
	ReceiptURL  string
	Remarks     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

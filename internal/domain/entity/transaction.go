package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionTypePurchase único tipo de transacción generado por la liquidación.
const TransactionTypePurchase = "PURCHASE"

// Transaction registro inmutable creado como efecto de una orden que llega a COMPLETED.
// A lo sumo una transacción por orden (liquidación exactamente una vez).
type Transaction struct {
	ID          string
	OrderID     string
	BuyerID     string
	SellerID    string
	ProductID   *string
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	Type        string
	CreatedAt   time.Time
}

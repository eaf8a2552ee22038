package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direcciones de movimiento de stock.
const (
	DirectionIn  = "IN"  // entrada
	DirectionOut = "OUT" // salida
)

// StockMovement registro de auditoría de un movimiento de stock (append-only).
// Un movimiento nunca se modifica; solo se crea o se elimina vía reversión,
// que aplica el ajuste de saldo compensatorio.
type StockMovement struct {
	ID             string
	ActorID        string
	ProductID      string
	Quantity       decimal.Decimal // siempre positiva; la dirección define el signo
	Direction      string
	CounterpartyID *string // actor emisor/receptor en transferencias
	Description    string
	Date           time.Time
	CreatedAt      time.Time
	CreatedBy      string
}

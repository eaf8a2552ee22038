package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock saldo de inventario por (actor, producto). La ausencia de fila significa cero.
// Solo lo muta el motor de inventario a través de movimientos; nunca se sobreescribe directo.
type Stock struct {
	ActorID   string
	ProductID string
	Quantity  decimal.Decimal // entero no negativo
	UpdatedAt time.Time
}

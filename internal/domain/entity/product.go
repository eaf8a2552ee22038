package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo de la distribuidora.
// La identidad (ID, SKU) es inmutable; costo y estado activo los modifica HQ.
type Product struct {
	ID        string
	SKU       string // código único
	Name      string
	BaseCost  decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

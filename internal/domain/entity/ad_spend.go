package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdSpend gasto publicitario registrado por un marketer en una plataforma.
// Insumo del cálculo de ROAS y del P&L.
type AdSpend struct {
	ID         string
	MarketerID string
	Platform   string
	Amount     decimal.Decimal
	SpendDate  time.Time
	CreatedAt  time.Time
}

package entity

import (
	"github.com/shopspring/decimal"
)

// RewardTier meta de premiación por rol y período (mes/año). Un actor la alcanza
// cuando su cantidad vendida del período llega a MinQuantity.
type RewardTier struct {
	ID          string
	Role        string
	PeriodMonth int // 1-12
	PeriodYear  int
	MinQuantity decimal.Decimal
	Description string
	Active      bool
}

// CommissionTier banda de comisión por rol: aplica cuando las ventas del período
// caen en [MinSales, MaxSales] y el ROAS en [RoasMin, RoasMax].
// La resolución recorre las bandas en orden ascendente por MinSales (orden determinista).
type CommissionTier struct {
	ID            string
	Role          string
	MinSales      decimal.Decimal
	MaxSales      decimal.Decimal
	RoasMin       decimal.Decimal
	RoasMax       decimal.Decimal
	CommissionPct decimal.Decimal // porcentaje sobre ventas
	BonusAmount   decimal.Decimal
	Active        bool
}

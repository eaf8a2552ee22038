// Package rewards resuelve premios por volumen y comisiones por banda de
// desempeño. La resolución es pura: recibe los tiers ya cargados y los totales
// del período, y produce un resultado determinista.
package rewards

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distriops-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// RewardStatus progreso de un actor frente a una meta de premiación.
type RewardStatus struct {
	Tier        *entity.RewardTier
	Achieved    bool
	ProgressPct decimal.Decimal // 0-100, entero (redondeo al más cercano), tope en 100
	Remaining   decimal.Decimal // unidades faltantes para alcanzar la meta; 0 si ya se alcanzó
}

// ResolveReward evalúa la cantidad vendida del período contra cada meta activa.
// Las metas se recorren en orden ascendente por MinQuantity para que el resultado
// sea determinista aunque el repositorio no garantice orden.
func ResolveReward(tiers []*entity.RewardTier, quantity decimal.Decimal) []RewardStatus {
	sorted := make([]*entity.RewardTier, 0, len(tiers))
	for _, t := range tiers {
		if t.Active && t.MinQuantity.IsPositive() {
			sorted = append(sorted, t)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MinQuantity.LessThan(sorted[j].MinQuantity)
	})

	out := make([]RewardStatus, 0, len(sorted))
	for _, t := range sorted {
		status := RewardStatus{Tier: t}
		pct := quantity.Div(t.MinQuantity).Mul(hundred)
		if pct.GreaterThanOrEqual(hundred) {
			status.Achieved = true
			status.ProgressPct = hundred
			status.Remaining = decimal.Zero
		} else {
			status.ProgressPct = pct.Round(0)
			status.Remaining = t.MinQuantity.Sub(quantity)
		}
		out = append(out, status)
	}
	return out
}

// CommissionResult resultado de resolver la banda de comisión de un período.
// Tier nil significa que ningún tramo aplicó: todos los montos quedan en cero.
type CommissionResult struct {
	Tier       *entity.CommissionTier
	Commission decimal.Decimal
	Bonus      decimal.Decimal
	Earnings   decimal.Decimal
}

// ResolveCommission busca la primera banda (en orden ascendente por MinSales)
// cuyo rango de ventas y de ROAS contienen los totales del período. MaxSales o
// RoasMax en cero se tratan como cota superior abierta.
func ResolveCommission(tiers []*entity.CommissionTier, sales, roas decimal.Decimal) CommissionResult {
	sorted := make([]*entity.CommissionTier, 0, len(tiers))
	for _, t := range tiers {
		if t.Active {
			sorted = append(sorted, t)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MinSales.LessThan(sorted[j].MinSales)
	})

	for _, t := range sorted {
		if !bandContains(t.MinSales, t.MaxSales, sales) {
			continue
		}
		if !bandContains(t.RoasMin, t.RoasMax, roas) {
			continue
		}
		commission := sales.Mul(t.CommissionPct).Div(hundred).Round(2)
		return CommissionResult{
			Tier:       t,
			Commission: commission,
			Bonus:      t.BonusAmount,
			Earnings:   commission.Add(t.BonusAmount),
		}
	}
	return CommissionResult{
		Commission: decimal.Zero,
		Bonus:      decimal.Zero,
		Earnings:   decimal.Zero,
	}
}

// bandContains rango cerrado [min, max]; max cero = sin cota superior.
func bandContains(min, max, v decimal.Decimal) bool {
	if v.LessThan(min) {
		return false
	}
	if max.IsZero() {
		return true
	}
	return v.LessThanOrEqual(max)
}

// ValidateCommissionTiers detecta bandas activas del mismo rol cuyos rangos de
// ventas y ROAS se solapan. El solape no es error (gana la primera por MinSales),
// pero se reporta para que el operador corrija la configuración.
func ValidateCommissionTiers(tiers []*entity.CommissionTier) []string {
	active := make([]*entity.CommissionTier, 0, len(tiers))
	for _, t := range tiers {
		if t.Active {
			active = append(active, t)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].MinSales.LessThan(active[j].MinSales)
	})

	var warnings []string
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			a, b := active[i], active[j]
			if a.Role != b.Role {
				continue
			}
			if bandsOverlap(a.MinSales, a.MaxSales, b.MinSales, b.MaxSales) &&
				bandsOverlap(a.RoasMin, a.RoasMax, b.RoasMin, b.RoasMax) {
				warnings = append(warnings, fmt.Sprintf(
					"bandas de comisión solapadas para rol %s: %s y %s", a.Role, a.ID, b.ID))
			}
		}
	}
	return warnings
}

func bandsOverlap(aMin, aMax, bMin, bMax decimal.Decimal) bool {
	aOpen := aMax.IsZero()
	bOpen := bMax.IsZero()
	if aOpen && bOpen {
		return true
	}
	if aOpen {
		return bMax.GreaterThanOrEqual(aMin)
	}
	if bOpen {
		return aMax.GreaterThanOrEqual(bMin)
	}
	return aMin.LessThanOrEqual(bMax) && bMin.LessThanOrEqual(aMax)
}

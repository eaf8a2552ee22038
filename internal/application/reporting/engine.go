// Package reporting implementa el motor de agregación de reportes: sumas por ventana
// de fechas, desgloses porcentuales por categoría, métricas derivadas (ROAS, utilidad)
// y agrupación de combos. Todo es puro: sin efectos, determinista para la misma entrada.
package reporting

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Distriops-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// DateRange intervalo cerrado [Start, End]: ambos extremos incluidos.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains indica si la fecha cae en la ventana. Fecha nil o cero queda fuera
// (registros con fecha faltante simplemente no entran al bucket, nunca es error).
func (r DateRange) Contains(t *time.Time) bool {
	if t == nil || t.IsZero() {
		return false
	}
	return !t.Before(r.Start) && !t.After(r.End)
}

// PurchaseFilter filtros categóricos opcionales; campo vacío = cualquiera.
type PurchaseFilter struct {
	Platform       string
	DeliveryStatus string
	CustomerType   string
}

func (f PurchaseFilter) matches(p *entity.CustomerPurchase) bool {
	if f.Platform != "" && p.Platform != f.Platform {
		return false
	}
	if f.DeliveryStatus != "" && p.DeliveryStatus != f.DeliveryStatus {
		return false
	}
	if f.CustomerType != "" && p.CustomerType != f.CustomerType {
		return false
	}
	return true
}

// SalesTotal suma total_price de las líneas cuya fecha de orden cae en la ventana.
func SalesTotal(purchases []*entity.CustomerPurchase, r DateRange, f PurchaseFilter) decimal.Decimal {
	total := decimal.Zero
	for _, p := range purchases {
		if r.Contains(p.OrderDate) && f.matches(p) {
			total = total.Add(p.TotalPrice)
		}
	}
	return total
}

// SoldUnits suma unidades vendidas por fecha de orden.
func SoldUnits(purchases []*entity.CustomerPurchase, r DateRange, f PurchaseFilter) decimal.Decimal {
	total := decimal.Zero
	for _, p := range purchases {
		if r.Contains(p.OrderDate) && f.matches(p) {
			total = total.Add(p.Quantity)
		}
	}
	return total
}

// ShippedUnits suma unidades despachadas: cada métrica usa su propia fecha,
// aquí la fecha de procesamiento/despacho.
func ShippedUnits(purchases []*entity.CustomerPurchase, r DateRange, f PurchaseFilter) decimal.Decimal {
	total := decimal.Zero
	for _, p := range purchases {
		if r.Contains(p.ProcessedDate) && f.matches(p) {
			total = total.Add(p.Quantity)
		}
	}
	return total
}

// ReturnedUnits suma unidades devueltas por fecha de devolución.
func ReturnedUnits(purchases []*entity.CustomerPurchase, r DateRange, f PurchaseFilter) decimal.Decimal {
	total := decimal.Zero
	for _, p := range purchases {
		if r.Contains(p.ReturnDate) && f.matches(p) {
			total = total.Add(p.Quantity)
		}
	}
	return total
}

// SpendTotal suma el gasto publicitario del rango.
func SpendTotal(spends []*entity.AdSpend, r DateRange) decimal.Decimal {
	total := decimal.Zero
	for _, s := range spends {
		d := s.SpendDate
		if r.Contains(&d) {
			total = total.Add(s.Amount)
		}
	}
	return total
}

// ROAS retorno sobre gasto publicitario: ventas / gasto; 0 con gasto cero.
func ROAS(sales, spend decimal.Decimal) decimal.Decimal {
	if !spend.IsPositive() {
		return decimal.Zero
	}
	return sales.Div(spend)
}

// Profit utilidad = ventas − gasto.
func Profit(sales, spend decimal.Decimal) decimal.Decimal {
	return sales.Sub(spend)
}

// ProfitMarginPct margen = utilidad / ventas * 100; 0 con ventas cero.
func ProfitMarginPct(sales, spend decimal.Decimal) decimal.Decimal {
	if !sales.IsPositive() {
		return decimal.Zero
	}
	return Profit(sales, spend).Div(sales).Mul(hundred).Round(2)
}

// BreakdownEntry fila de un desglose por categoría mutuamente excluyente.
// Percent usa como denominador la suma de las categorías comparadas (no el gran
// total de todos los registros) y retorna 0 con denominador cero.
type BreakdownEntry struct {
	Category string
	Amount   decimal.Decimal
	Percent  decimal.Decimal
}

// Breakdown construye el desglose de montos por categoría con su % de participación.
func Breakdown(categories []string, amountFor func(category string) decimal.Decimal) []BreakdownEntry {
	entries := make([]BreakdownEntry, 0, len(categories))
	total := decimal.Zero
	for _, cat := range categories {
		amount := amountFor(cat)
		total = total.Add(amount)
		entries = append(entries, BreakdownEntry{Category: cat, Amount: amount})
	}
	for i := range entries {
		if total.IsPositive() {
			entries[i].Percent = entries[i].Amount.Div(total).Mul(hundred).Round(2)
		} else {
			entries[i].Percent = decimal.Zero
		}
	}
	return entries
}

// DefaultPlatforms plataformas comparadas en los desgloses del dashboard.
var DefaultPlatforms = []string{
	entity.PlatformStoreHub,
	entity.PlatformTikTok,
	entity.PlatformShopee,
	entity.PlatformOnline,
}

// PlatformShippedBreakdown desglose de unidades despachadas por plataforma.
func PlatformShippedBreakdown(purchases []*entity.CustomerPurchase, r DateRange) []BreakdownEntry {
	return Breakdown(DefaultPlatforms, func(platform string) decimal.Decimal {
		return ShippedUnits(purchases, r, PurchaseFilter{Platform: platform})
	})
}

// PlatformSalesBreakdown desglose de ventas por plataforma.
func PlatformSalesBreakdown(purchases []*entity.CustomerPurchase, r DateRange) []BreakdownEntry {
	return Breakdown(DefaultPlatforms, func(platform string) decimal.Decimal {
		return SalesTotal(purchases, r, PurchaseFilter{Platform: platform})
	})
}

// CustomerTypeSalesBreakdown desglose de ventas por tipo de cliente (nuevo/recurrente).
func CustomerTypeSalesBreakdown(purchases []*entity.CustomerPurchase, r DateRange) []BreakdownEntry {
	return Breakdown([]string{entity.CustomerTypeNew, entity.CustomerTypeRepeat}, func(ct string) decimal.Decimal {
		return SalesTotal(purchases, r, PurchaseFilter{CustomerType: ct})
	})
}

// ProductPerformance desempeño de un producto o combo sintético en el período.
type ProductPerformance struct {
	Key           string // product_id, o el nombre exacto del combo
	Name          string
	IsCombo       bool
	SalesAmount   decimal.Decimal
	UnitsSold     decimal.Decimal
	UnitsShipped  decimal.Decimal
	UnitsReturned decimal.Decimal
}

// ProductPerformanceRows agrupa líneas por producto. Las líneas sin product_id cuyo
// nombre contiene el delimitador de combo (" + ") se agrupan por ese nombre exacto como
// entidad combo sintética, separada de los productos que la componen. Los combos solo
// aparecen con actividad distinta de cero en el período. Orden determinista:
// ventas descendentes, luego clave ascendente.
func ProductPerformanceRows(purchases []*entity.CustomerPurchase, r DateRange) []ProductPerformance {
	rows := make(map[string]*ProductPerformance)

	for _, p := range purchases {
		key, name, isCombo, ok := classify(p)
		if !ok {
			continue
		}
		row := rows[key]
		if row == nil {
			row = &ProductPerformance{Key: key, Name: name, IsCombo: isCombo}
			rows[key] = row
		}
		if r.Contains(p.OrderDate) {
			row.SalesAmount = row.SalesAmount.Add(p.TotalPrice)
			row.UnitsSold = row.UnitsSold.Add(p.Quantity)
		}
		if r.Contains(p.ProcessedDate) {
			row.UnitsShipped = row.UnitsShipped.Add(p.Quantity)
		}
		if r.Contains(p.ReturnDate) {
			row.UnitsReturned = row.UnitsReturned.Add(p.Quantity)
		}
	}

	out := make([]ProductPerformance, 0, len(rows))
	for _, row := range rows {
		if row.IsCombo && row.SalesAmount.IsZero() && row.UnitsShipped.IsZero() && row.UnitsReturned.IsZero() {
			continue // combo sin actividad en el período
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SalesAmount.Equal(out[j].SalesAmount) {
			return out[i].SalesAmount.GreaterThan(out[j].SalesAmount)
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// classify resuelve la clave de agrupación de una línea: producto por ID, o combo
// sintético por nombre. Líneas sin ID y sin delimitador de combo se descartan.
func classify(p *entity.CustomerPurchase) (key, name string, isCombo, ok bool) {
	if p.ProductID != nil && *p.ProductID != "" {
		return *p.ProductID, p.ProductName, false, true
	}
	if strings.Contains(p.ProductName, entity.ComboDelimiter) {
		return p.ProductName, p.ProductName, true, true
	}
	return "", "", false, false
}

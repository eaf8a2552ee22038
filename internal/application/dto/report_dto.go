package dto

import "github.com/shopspring/decimal"

// PeriodDTO rango de fechas del reporte (formato 2006-01-02).
type PeriodDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// BreakdownEntryDTO fila de un desglose por categoría con % de participación.
type BreakdownEntryDTO struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Percent  decimal.Decimal `json:"percent"`
}

// ProductPerformanceDTO desempeño de un producto o combo en el período.
type ProductPerformanceDTO struct {
	Key           string          `json:"key"`
	Name          string          `json:"name"`
	IsCombo       bool            `json:"is_combo"`
	SalesAmount   decimal.Decimal `json:"sales_amount"`
	UnitsSold     decimal.Decimal `json:"units_sold"`
	UnitsShipped  decimal.Decimal `json:"units_shipped"`
	UnitsReturned decimal.Decimal `json:"units_returned"`
}

// DashboardSummaryDTO resumen del dashboard: hoy + mes en curso.
type DashboardSummaryDTO struct {
	TodaySales       decimal.Decimal         `json:"today_sales"`
	MonthSales       decimal.Decimal         `json:"month_sales"`
	MonthSpend       decimal.Decimal         `json:"month_spend"`
	MonthROAS        decimal.Decimal         `json:"month_roas"`
	MonthProfit      decimal.Decimal         `json:"month_profit"`
	PlatformShipped  []BreakdownEntryDTO     `json:"platform_shipped"`
	TopProducts      []ProductPerformanceDTO `json:"top_products"`
	DateLabel        string                  `json:"date_label"`
}

// PnLRequest parámetros del reporte de pérdidas y ganancias.
type PnLRequest struct {
	MarketerID string `query:"marketer_id"`
	StartDate  string `query:"start_date"`
	EndDate    string `query:"end_date"`
}

// PnLReportDTO pérdidas y ganancias de un marketer (o de toda la red) en el período.
type PnLReportDTO struct {
	Period        PeriodDTO           `json:"period"`
	MarketerID    string              `json:"marketer_id,omitempty"`
	Sales         decimal.Decimal     `json:"sales"`
	Spend         decimal.Decimal     `json:"spend"`
	Profit        decimal.Decimal     `json:"profit"`
	MarginPct     decimal.Decimal     `json:"margin_pct"`
	ROAS          decimal.Decimal     `json:"roas"`
	PlatformSales []BreakdownEntryDTO `json:"platform_sales"`
	CustomerTypes []BreakdownEntryDTO `json:"customer_types"`
}

// ProductPerformanceReportDTO reporte de desempeño por producto/combo.
type ProductPerformanceReportDTO struct {
	Period   PeriodDTO               `json:"period"`
	Products []ProductPerformanceDTO `json:"products"`
}

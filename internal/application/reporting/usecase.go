package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Distriops-api/internal/application/dto"
	"github.com/jhoicas/Distriops-api/internal/domain/entity"
	"github.com/jhoicas/Distriops-api/internal/domain/repository"
)

const dashboardTopProducts = 5 // número de productos en el widget del dashboard

// ReportUseCase orquesta los reportes de negocio: dashboard, P&L y desempeño por
// producto. Lee los registros crudos del rango y delega el cálculo al motor puro,
// que se re-ejecuta en cada vista y es determinista para la misma entrada.
type ReportUseCase struct {
	purchaseRepo repository.PurchaseRepository
	spendRepo    repository.AdSpendRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(purchaseRepo repository.PurchaseRepository, spendRepo repository.AdSpendRepository) *ReportUseCase {
	return &ReportUseCase{purchaseRepo: purchaseRepo, spendRepo: spendRepo}
}

// GetDashboard construye el resumen del día y del mes en curso.
// Las dos consultas (compras y gastos del mes) corren en paralelo.
func (uc *ReportUseCase) GetDashboard(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	today := DateRange{Start: todayStart, End: todayEnd}
	month := DateRange{Start: monthStart, End: todayEnd}

	type purchasesResult struct {
		rows []*entity.CustomerPurchase
		err  error
	}
	type spendsResult struct {
		rows []*entity.AdSpend
		err  error
	}
	purchasesCh := make(chan purchasesResult, 1)
	spendsCh := make(chan spendsResult, 1)

	go func() {
		rows, err := uc.purchaseRepo.ListAll(month.Start, month.End)
		purchasesCh <- purchasesResult{rows, err}
	}()
	go func() {
		rows, err := uc.spendRepo.ListAll(month.Start, month.End)
		spendsCh <- spendsResult{rows, err}
	}()

	purchases := <-purchasesCh
	spends := <-spendsCh
	if purchases.err != nil {
		return nil, fmt.Errorf("dashboard: compras del mes: %w", purchases.err)
	}
	if spends.err != nil {
		return nil, fmt.Errorf("dashboard: gastos del mes: %w", spends.err)
	}

	monthSales := SalesTotal(purchases.rows, month, PurchaseFilter{})
	monthSpend := SpendTotal(spends.rows, month)

	top := ProductPerformanceRows(purchases.rows, month)
	if len(top) > dashboardTopProducts {
		top = top[:dashboardTopProducts]
	}

	return &dto.DashboardSummaryDTO{
		TodaySales:      SalesTotal(purchases.rows, today, PurchaseFilter{}).Round(2),
		MonthSales:      monthSales.Round(2),
		MonthSpend:      monthSpend.Round(2),
		MonthROAS:       ROAS(monthSales, monthSpend).Round(2),
		MonthProfit:     Profit(monthSales, monthSpend).Round(2),
		PlatformShipped: toBreakdownDTO(PlatformShippedBreakdown(purchases.rows, month)),
		TopProducts:     toPerformanceDTO(top),
		DateLabel:       monthLabel(now),
	}, nil
}

// GetPnL reporte de pérdidas y ganancias del período, global o por marketer.
func (uc *ReportUseCase) GetPnL(ctx context.Context, in dto.PnLRequest) (*dto.PnLReportDTO, error) {
	start, end, err := parsePeriod(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	r := DateRange{Start: start, End: end}

	var purchases []*entity.CustomerPurchase
	var spends []*entity.AdSpend
	if in.MarketerID != "" {
		purchases, err = uc.purchaseRepo.ListByMarketer(in.MarketerID, start, end)
		if err == nil {
			spends, err = uc.spendRepo.ListByMarketer(in.MarketerID, start, end)
		}
	} else {
		purchases, err = uc.purchaseRepo.ListAll(start, end)
		if err == nil {
			spends, err = uc.spendRepo.ListAll(start, end)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("pnl: %w", err)
	}

	sales := SalesTotal(purchases, r, PurchaseFilter{})
	spend := SpendTotal(spends, r)

	return &dto.PnLReportDTO{
		Period: dto.PeriodDTO{
			StartDate: start.Format("2006-01-02"),
			EndDate:   end.Format("2006-01-02"),
		},
		MarketerID:    in.MarketerID,
		Sales:         sales.Round(2),
		Spend:         spend.Round(2),
		Profit:        Profit(sales, spend).Round(2),
		MarginPct:     ProfitMarginPct(sales, spend),
		ROAS:          ROAS(sales, spend).Round(2),
		PlatformSales: toBreakdownDTO(PlatformSalesBreakdown(purchases, r)),
		CustomerTypes: toBreakdownDTO(CustomerTypeSalesBreakdown(purchases, r)),
	}, nil
}

// GetProductPerformance reporte de desempeño por producto/combo del período.
func (uc *ReportUseCase) GetProductPerformance(ctx context.Context, startStr, endStr string) (*dto.ProductPerformanceReportDTO, error) {
	start, end, err := parsePeriod(startStr, endStr)
	if err != nil {
		return nil, err
	}
	purchases, err := uc.purchaseRepo.ListAll(start, end)
	if err != nil {
		return nil, fmt.Errorf("desempeño de productos: %w", err)
	}
	rows := ProductPerformanceRows(purchases, DateRange{Start: start, End: end})
	return &dto.ProductPerformanceReportDTO{
		Period: dto.PeriodDTO{
			StartDate: start.Format("2006-01-02"),
			EndDate:   end.Format("2006-01-02"),
		},
		Products: toPerformanceDTO(rows),
	}, nil
}

func toBreakdownDTO(entries []BreakdownEntry) []dto.BreakdownEntryDTO {
	out := make([]dto.BreakdownEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.BreakdownEntryDTO{Category: e.Category, Amount: e.Amount, Percent: e.Percent})
	}
	return out
}

func toPerformanceDTO(rows []ProductPerformance) []dto.ProductPerformanceDTO {
	out := make([]dto.ProductPerformanceDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.ProductPerformanceDTO{
			Key:           row.Key,
			Name:          row.Name,
			IsCombo:       row.IsCombo,
			SalesAmount:   row.SalesAmount.Round(2),
			UnitsSold:     row.UnitsSold,
			UnitsShipped:  row.UnitsShipped,
			UnitsReturned: row.UnitsReturned,
		})
	}
	return out
}

// parsePeriod convierte los strings de fecha en time.Time; valores por defecto si vienen vacíos.
func parsePeriod(startStr, endStr string) (start, end time.Time, err error) {
	now := time.Now()

	if endStr == "" {
		end = now
	} else {
		end, err = time.ParseInLocation("2006-01-02", endStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("end_date inválido: %w", err)
		}
		end = end.Add(23*time.Hour + 59*time.Minute + 59*time.Second) // inclusive hasta el final del día
	}

	if startStr == "" {
		// Primer día del mes actual
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	} else {
		start, err = time.ParseInLocation("2006-01-02", startStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("start_date inválido: %w", err)
		}
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date no puede ser posterior a end_date")
	}
	return start, end, nil
}

// monthLabel etiqueta legible del mes, ej: "Agosto 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}

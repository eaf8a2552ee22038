// Package pdf implementa la generación del recibo de una orden liquidada.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Distriops  │  N° Orden + Fecha                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  VENDEDOR: nombre + rol                                     │
//	│  COMPRADOR: nombre + rol                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto/Combo | P.Unit | Total              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL PAGADO                                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con ID de orden + referencia de pago            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Distriops-api/internal/application/settlement"
	"github.com/jhoicas/Distriops-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Nombres legibles de los roles de la red para el recibo.
var roleLabels = map[string]string{
	entity.RoleHQ:          "Sede Central",
	entity.RoleMasterAgent: "Agente Maestro",
	entity.RoleAgent:       "Agente",
	entity.RoleBranch:      "Sucursal",
	entity.RoleMarketer:    "Marketer",
}

var _ settlement.ReceiptPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa settlement.ReceiptPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	appName string
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(appName string) *MarotoPDFGenerator {
	if appName == "" {
		appName = "Distriops"
	}
	return &MarotoPDFGenerator{appName: appName}
}

// GenerateReceiptPDF genera el recibo de la orden y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReceiptPDF(
	_ context.Context,
	order *entity.Order,
	buyer, seller *entity.Actor,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de orden", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRow("VENDEDOR", seller))
	m.AddRows(partyRow("COMPRADOR", buyer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(detailRow(order))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(order))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(order) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la app (izq) y N° de orden + fecha (der).
func (g *MarotoPDFGenerator) headerRow(order *entity.Order) core.Row {
	fecha := order.UpdatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.appName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Red de distribución multinivel", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RECIBO DE ORDEN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(order.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// partyRow: datos de una de las partes (vendedor o comprador).
func partyRow(label string, actor *entity.Actor) core.Row {
	role := roleLabels[actor.Role]
	if role == "" {
		role = actor.Role
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   %s", actor.Name, role),
				props.Text{Size: 9, Top: 7}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de la línea de compra.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto / Combo", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

// detailRow: la línea de la orden (una orden = una línea; los combos se despliegan
// en inventario, no en el recibo).
func detailRow(order *entity.Order) core.Row {
	return row.New(7).Add(
		col.New(1).Add(text.New(
			order.Quantity.StringFixed(0),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(6).Add(text.New(
			order.ProductName,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(2).Add(text.New(
			formatMoney(order.UnitPrice.StringFixed(2)),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
		col.New(3).Add(text.New(
			formatMoney(order.TotalPrice.StringFixed(2)),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// totalRow: total pagado alineado a la derecha.
func totalRow(order *entity.Order) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL PAGADO:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(formatMoney(order.TotalPrice.StringFixed(2)), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// footerRows: QR con el ID completo de la orden + referencia de pago si existe.
func footerRows(order *entity.Order) []core.Row {
	rows := []core.Row{
		row.New(40).Add(
			col.New(4).Add(code.NewQr(order.ID, props.Rect{
				Percent: 90,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Escanea el código QR para consultar\nesta orden en el panel.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("Orden liquidada", props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 18,
					Left: 3, Color: colorPrimary,
				}),
			),
		),
	}
	if order.PaymentRef != nil && *order.PaymentRef != "" {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Referencia de pago: "+*order.PaymentRef, props.Text{
				Size: 7, Color: colorGray, Top: 1,
			}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// shortID primeros 8 caracteres del UUID para el encabezado.
func shortID(id string) string {
	if len(id) > 8 {
		return "#" + id[:8]
	}
	return "#" + id
}

// formatMoney inserta puntos de miles en la parte entera de un string "1234567.89".
func formatMoney(s string) string {
	intPart, frac := s, ""
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			intPart, frac = s[:i], s[i:]
			break
		}
	}
	n := len(intPart)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3+len(frac))
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, intPart[i])
	}
	return string(buf) + frac
}

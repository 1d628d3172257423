// Package pdf genera el comprobante imprimible del corte de caja.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del local  │  Folio + Fecha del corte       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PERIODO: desde el corte anterior hasta el cierre           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ventas por método de pago                           │
//	│  GASTOS del periodo y monto neto                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ARQUEO: efectivo contado vs esperado y diferencia          │
//	│  NOTAS + firma de quien cerró                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
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
	"github.com/shopspring/decimal"

	"github.com/nubecafe/pos-core/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 93, Green: 64, Blue: 55}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// CashCutGenerator genera el comprobante PDF de un corte de caja con Maroto v2.
type CashCutGenerator struct {
	businessName string
}

// NewCashCutGenerator construye el generador.
func NewCashCutGenerator(businessName string) *CashCutGenerator {
	return &CashCutGenerator{businessName: businessName}
}

// Generate genera el PDF del corte y devuelve sus bytes.
func (g *CashCutGenerator) Generate(_ context.Context, cut *entity.CashCut) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Corte de Caja", true).
		WithAuthor(g.businessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(cut))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(periodRow(cut))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(salesHeaderRow())
	m.AddRows(
		amountRow("Efectivo", cut.TotalCash),
		amountRow("Tarjeta", cut.TotalCard),
		amountRow("Transferencia", cut.TotalTransfer),
		boldAmountRow("Total ventas", cut.TotalSales),
		amountRow("Gastos del periodo", cut.TotalExpenses.Neg()),
		boldAmountRow("Neto", cut.NetAmount),
	)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(arqueoRows(cut)...)

	if cut.Notes != "" {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Notas: "+cut.Notes, props.Text{Size: 8, Color: colorGray, Top: 2}),
		)))
	}
	m.AddRows(signatureRow(cut))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar corte de caja: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre del local (izq) y folio + fecha del corte (der).
func (g *CashCutGenerator) headerRow(cut *entity.CashCut) core.Row {
	fecha := cut.CreatedAt.Format("02/01/2006 15:04")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.businessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Corte de caja", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FOLIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(cut.ID, props.Text{
				Size: 7, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 12,
			}),
		),
	)
}

// periodRow: rango consolidado por el corte.
func periodRow(cut *entity.CashCut) core.Row {
	desde := "inicio de operaciones"
	if !cut.PeriodStart.IsZero() {
		desde = cut.PeriodStart.Format("02/01/2006 15:04")
	}
	hasta := cut.PeriodEnd.Format("02/01/2006 15:04")
	return row.New(10).Add(col.New(12).Add(
		text.New("PERIODO", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
		text.New(fmt.Sprintf("Desde: %s   |   Hasta: %s", desde, hasta),
			props.Text{Size: 8, Top: 6, Color: colorGray}),
	))
}

func salesHeaderRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("VENTAS POR MÉTODO DE PAGO", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}),
	))
}

func amountRow(label string, amount decimal.Decimal) core.Row {
	return row.New(6).Add(
		col.New(6).Add(text.New(label, props.Text{Size: 9, Top: 1, Left: 2})),
		col.New(6).Add(text.New("$"+amount.StringFixed(2), props.Text{
			Size: 9, Align: align.Right, Top: 1, Right: 2,
		})),
	)
}

func boldAmountRow(label string, amount decimal.Decimal) core.Row {
	return row.New(7).Add(
		col.New(6).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 1, Left: 2, Color: colorPrimary,
		})),
		col.New(6).Add(text.New("$"+amount.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			Right: 2, Color: colorPrimary,
		})),
	)
}

// arqueoRows: efectivo contado contra el esperado; la diferencia en rojo si falta.
func arqueoRows(cut *entity.CashCut) []core.Row {
	diffColor := colorPrimary
	if cut.CashDifference.IsNegative() {
		diffColor = colorRed
	}
	return []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New("ARQUEO DE EFECTIVO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
			}),
		)),
		amountRow("Efectivo esperado", cut.TotalCash),
		amountRow("Efectivo contado", cut.CountedCash),
		row.New(7).Add(
			col.New(6).Add(text.New("Diferencia", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 1, Left: 2, Color: diffColor,
			})),
			col.New(6).Add(text.New("$"+cut.CashDifference.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
				Right: 2, Color: diffColor,
			})),
		),
	}
}

func signatureRow(cut *entity.CashCut) core.Row {
	return row.New(20).Add(
		col.New(6),
		col.New(6).Add(
			text.New("____________________________", props.Text{
				Size: 9, Align: align.Center, Top: 10,
			}),
			text.New("Cerró: "+cut.CreatedBy, props.Text{
				Size: 8, Align: align.Center, Top: 16, Color: colorGray,
			}),
		),
	)
}

// Package pdf implementa la generación del ticket de picking en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Pedido + Referencia  │  Cliente + Fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Línea | SKU | Calif. | Ubicación | Recepción | Cant │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL UNIDADES                                             │
//	│  FOOTER: nota operativa                                     │
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

	appalloc "github.com/jhoicas/fulfillment-api/internal/application/allocation"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appalloc.PickTicketRenderer = (*MarotoPickTicketRenderer)(nil)

// MarotoPickTicketRenderer implementa allocation.PickTicketRenderer usando Maroto v2.
type MarotoPickTicketRenderer struct{}

// NewMarotoPickTicketRenderer construye el renderer.
func NewMarotoPickTicketRenderer() *MarotoPickTicketRenderer { return &MarotoPickTicketRenderer{} }

// Render genera el PDF del ticket y devuelve sus bytes.
func (g *MarotoPickTicketRenderer) Render(_ context.Context, ticket *appalloc.PickTicket) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Ticket de picking %d", ticket.OrderID), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(ticket))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(ticket.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(ticket))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(ticket))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: pedido + referencia (izq) y cliente + fecha (der).
func headerRow(ticket *appalloc.PickTicket) core.Row {
	fecha := ticket.GeneratedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(fmt.Sprintf("TICKET DE PICKING — PEDIDO %d", ticket.OrderID), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Referencia: "+nonEmpty(ticket.ReferenceNum, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(nonEmpty(ticket.CustomerName, "—"), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2,
			}),
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de picking.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Línea", 2, align.Left),
		h("SKU", 3, align.Left),
		h("Calif.", 2, align.Left),
		h("Ubicación", 2, align.Left),
		h("Recepción", 2, align.Right),
		h("Cant.", 1, align.Right),
	)
}

// tableItemRows: una fila por asignación.
func tableItemRows(items []appalloc.PickItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				fmt.Sprint(it.LineID),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				it.SKU,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(it.Qualifier, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(it.LocationName, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprint(it.ReceiptID),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprint(it.Qty),
				props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: total de unidades a recoger.
func totalRow(ticket *appalloc.PickTicket) core.Row {
	return row.New(10).Add(
		col.New(8),
		col.New(3).Add(text.New("TOTAL UNIDADES:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(1).Add(text.New(fmt.Sprint(ticket.TotalUnits), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// footerRow: nota operativa para el bodeguero.
func footerRow(ticket *appalloc.PickTicket) core.Row {
	nota := "Recoja las cantidades indicadas de cada ubicación y confirme contra la recepción listada. " +
		"Las asignaciones son sugerencias del sistema; reporte cualquier discrepancia de lote o ubicación."
	if len(ticket.Items) == 0 {
		nota = "Este pedido no tiene asignaciones vigentes. Ejecute una recomputación antes de imprimir el ticket."
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(nota, props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

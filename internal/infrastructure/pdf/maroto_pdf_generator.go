// Package pdf implementa la generación de la remisión de entrega: el
// documento que acompaña la mercancía de un pedido de cliente.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Planta + N° Remisión  │  N° Pedido + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + documento + contacto                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL + estado del pedido + espacio para firma de recibido │
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

	"github.com/mnavarrov/erp-planta-api/internal/application/orders"
	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoPDFGenerator implementa orders.RemisionPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	nombrePlanta string
}

// NewMarotoPDFGenerator construye el generador con el nombre a mostrar en el encabezado.
func NewMarotoPDFGenerator(nombrePlanta string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{nombrePlanta: nombrePlanta}
}

// GenerarRemisionPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerarRemisionPDF(
	_ context.Context,
	pedido *entity.Pedido,
	cliente *entity.Cliente,
	lineas []orders.LineaRemision,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Remisión de entrega", true).
		WithAuthor(g.nombrePlanta, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.nombrePlanta, pedido))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(cliente))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(lineas) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(pedido))
	m.AddRows(line.NewRow(3))
	m.AddRows(firmaRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre de la planta (izq) y N° pedido + fecha (der).
func headerRow(nombrePlanta string, pedido *entity.Pedido) core.Row {
	fecha := pedido.Fecha.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nombrePlanta, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Remisión de entrega", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PEDIDO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("#%d", pedido.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// clienteRow: datos del destinatario.
func clienteRow(cliente *entity.Cliente) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("ENTREGAR A", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(cliente.Nombre, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Documento: %s   |   Dirección: %s   |   Tel: %s",
				nonEmpty(cliente.Documento, "—"),
				nonEmpty(cliente.Direccion, "—"),
				nonEmpty(cliente.Telefono, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableDetailRows: una fila por línea del pedido.
func tableDetailRows(lineas []orders.LineaRemision) []core.Row {
	result := make([]core.Row, 0, len(lineas))
	for _, l := range lineas {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				l.Cantidad.StringFixed(0),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				l.NombreProducto,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(l.PrecioUnitario.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+formatMoney(l.Subtotal.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: total del pedido y estado actual.
func totalRow(pedido *entity.Pedido) core.Row {
	return row.New(12).Add(
		col.New(6).Add(
			text.New("Estado del pedido: "+entity.NombreEstadoPedido[pedido.EstadoID], props.Text{
				Size: 8, Top: 3, Color: colorGray,
			}),
		),
		col.New(3).Add(
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 2, Right: 2,
			}),
		),
		col.New(3).Add(
			text.New("$"+formatMoney(pedido.Total.StringFixed(0)), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 2, Right: 1,
			}),
		),
	)
}

// firmaRow: espacio para firma de quien recibe.
func firmaRow() core.Row {
	return row.New(20).Add(
		col.New(5).Add(
			text.New("_________________________", props.Text{Size: 9, Top: 10}),
			text.New("Recibido por (nombre y firma)", props.Text{
				Size: 7, Top: 16, Color: colorGray,
			}),
		),
		col.New(7),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

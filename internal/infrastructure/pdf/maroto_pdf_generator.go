// Package pdf implementa la representación imprimible de un vale de
// inventario (documento de bodega).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de vale + N° │ Estado + Fecha                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Artículo | Origen | Destino | Cantidad | Estado  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de líneas + leyenda                           │
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

	appslip "github.com/jhoicas/almacen-api/internal/application/slip"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Títulos legibles por tipo de vale.
var slipTypeTitles = map[string]string{
	entity.SlipTypeInbound:  "VALE DE ENTRADA",
	entity.SlipTypeOutbound: "VALE DE SALIDA",
	entity.SlipTypeTransfer: "VALE DE TRASLADO",
	entity.SlipTypeFreeze:   "VALE DE CONGELADO",
	entity.SlipTypeScrap:    "VALE DE MERMA",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa slip.SlipPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateSlipPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSlipPDF(
	_ context.Context,
	slip *entity.Slip,
	details []appslip.SlipDetailForPDF,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Vale de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(slip))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(details) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(slip, len(details)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título del vale + ID (izq) y estado + fecha (der).
func headerRow(slip *entity.Slip) core.Row {
	title := slipTypeTitles[slip.Type]
	if title == "" {
		title = "VALE DE INVENTARIO"
	}
	fecha := slip.CreatedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("N°: "+slip.ID, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Estado: "+slip.Status, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
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
		h("#", 1, align.Center),
		h("Artículo", 4, align.Left),
		h("Origen", 2, align.Center),
		h("Destino", 2, align.Center),
		h("Cantidad", 2, align.Right),
		h("Estado", 1, align.Center),
	)
}

// tableDetailRows: una fila por línea del vale.
func tableDetailRows(details []appslip.SlipDetailForPDF) []core.Row {
	result := make([]core.Row, 0, len(details))
	for _, d := range details {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", d.LineNumber),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				d.ItemName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				d.FromLocation,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				d.ToLocation,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				d.QuantityChange.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				d.Status,
				props.Text{Size: 7, Align: align.Center, Top: 1},
			)),
		))
	}
	return result
}

// footerRow: total de líneas + leyenda de documento interno.
func footerRow(slip *entity.Slip, lineCount int) core.Row {
	return row.New(12).Add(
		col.New(6).Add(
			text.New(fmt.Sprintf("Total de líneas: %d", lineCount), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 2,
			}),
		),
		col.New(6).Add(
			text.New("Documento interno de bodega. No es comprobante fiscal.", props.Text{
				Size: 7, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

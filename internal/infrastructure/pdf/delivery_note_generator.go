// Package pdf genera la guía de despacho (comprobante de entrega de concreto) en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Planta                 │  GUÍA N° + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + documento + dirección de entrega          │
//	│  TRANSPORTE: Conductor + licencia + placa                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Silo | Tipo | Resist. | Asent. | m³ | kg             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Observaciones + QR                                          │
//	│  Firmas: despachado por / recibido por                        │
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

	"github.com/jhoicas/planta-despachos/internal/application/inventory"
	"github.com/jhoicas/planta-despachos/pkg/units"
)

var _ inventory.DeliveryNoteGenerator = (*DeliveryNoteGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 194, Green: 65, Blue: 12}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// DeliveryNoteGenerator implementa inventory.DeliveryNoteGenerator usando Maroto v2.
type DeliveryNoteGenerator struct {
	plantName string
}

// NewDeliveryNoteGenerator construye el generador. plantName va en el encabezado.
func NewDeliveryNoteGenerator(plantName string) *DeliveryNoteGenerator {
	return &DeliveryNoteGenerator{plantName: plantName}
}

// GenerateDeliveryNote genera el PDF y devuelve sus bytes.
func (g *DeliveryNoteGenerator) GenerateDeliveryNote(_ context.Context, note inventory.DeliveryNote) ([]byte, error) {
	if note.Dispatch == nil {
		return nil, fmt.Errorf("pdf: despacho requerido")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Guía de despacho "+note.Dispatch.DispatchNumber, true).
		WithAuthor(g.plantName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(note))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(note))
	m.AddRows(transportRow(note))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRow(note))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(notesRow(note))
	m.AddRows(row.New(20))
	m.AddRows(signatureRows()...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *DeliveryNoteGenerator) headerRow(note inventory.DeliveryNote) core.Row {
	d := note.Dispatch
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.plantName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Planta de concreto premezclado", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("GUÍA DE DESPACHO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(d.DispatchNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+d.DispatchDate.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func clientRow(note inventory.DeliveryNote) core.Row {
	document, phone := "—", "—"
	if c := note.Client; c != nil {
		document = nonEmpty(c.Document, "—")
		phone = nonEmpty(c.Phone, "—")
	}
	return row.New(20).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(note.ClientName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("RUC/DNI: %s   |   Tel: %s", document, phone), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
			text.New("Dirección de entrega: "+nonEmpty(note.Dispatch.DeliveryAddress, "—"), props.Text{
				Size: 8, Top: 16, Color: colorGray,
			}),
		),
	)
}

func transportRow(note inventory.DeliveryNote) core.Row {
	license, plate := "—", "—"
	if d := note.Driver; d != nil {
		license = nonEmpty(d.License, "—")
		plate = nonEmpty(d.TruckPlate, "—")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("TRANSPORTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Conductor: %s   |   Licencia: %s   |   Placa: %s",
				note.DriverName, license, plate,
			), props.Text{Size: 8, Top: 7}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
	}
	return row.New(8).Add(
		h("Silo", 2, align.Left),
		h("Tipo de cemento", 3, align.Left),
		h("Resist.", 2, align.Center),
		h("Asent.", 1, align.Center),
		h("Cantidad", 2, align.Right),
		h("Peso", 2, align.Right),
	)
}

func tableDetailRow(note inventory.DeliveryNote) core.Row {
	d := note.Dispatch
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	return row.New(7).Add(
		cell(nonEmpty(note.SiloName, "—"), 2, align.Left),
		cell(nonEmpty(d.CementType, "—"), 3, align.Left),
		cell(nonEmpty(d.Resistance, "—"), 2, align.Center),
		cell(nonEmpty(d.Slump, "—"), 1, align.Center),
		cell(units.FormatM3(d.QuantityM3, 2), 2, align.Right),
		cell(units.FormatKg(d.QuantityKg, 0), 2, align.Right),
	)
}

func notesRow(note inventory.DeliveryNote) core.Row {
	d := note.Dispatch
	return row.New(34).Add(
		col.New(8).Add(
			text.New("OBSERVACIONES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
			}),
			text.New(nonEmpty(d.Notes, "Sin observaciones."), props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
		),
		col.New(4).Add(code.NewQr(d.DispatchNumber, props.Rect{
			Percent: 80,
			Center:  true,
		})),
	)
}

func signatureRows() []core.Row {
	sign := func(label string) core.Col {
		return col.New(5).Add(
			text.New("______________________________", props.Text{Align: align.Center}),
			text.New(label, props.Text{Size: 8, Align: align.Center, Top: 5, Color: colorGray}),
		)
	}
	return []core.Row{
		row.New(12).Add(sign("Despachado por"), col.New(2), sign("Recibido conforme")),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

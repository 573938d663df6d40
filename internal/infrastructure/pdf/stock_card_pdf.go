// Package pdf genera la ficha de stock de un artículo en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Designación + categoría │ Estado + fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRECIOS: Precio s/IVA | IVA | Precio c/IVA                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Fecha | Tipo | Cantidad | Saldo                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Saldo del libro / Stock registrado                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/stock-articulos-api/internal/application/inventory"
	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/internal/domain/pricing"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var movementLabels = map[entity.MovementType]string{
	entity.MovementTypeStockIn:            "Entrada",
	entity.MovementTypeStockOut:           "Salida",
	entity.MovementTypePositiveCorrection: "Corrección +",
	entity.MovementTypeNegativeCorrection: "Corrección -",
	entity.MovementTypeReturn:             "Devolución",
	entity.MovementTypeRecall:             "Retiro",
	entity.MovementTypeMissing:            "Faltante",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ inventory.StockCardRenderer = (*StockCardGenerator)(nil)

// StockCardGenerator implementa inventory.StockCardRenderer usando Maroto v2.
type StockCardGenerator struct{}

// NewStockCardGenerator construye el generador.
func NewStockCardGenerator() *StockCardGenerator { return &StockCardGenerator{} }

// RenderStockCard genera el PDF y devuelve sus bytes.
func (g *StockCardGenerator) RenderStockCard(_ context.Context, card *inventory.StockCard) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ficha de stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(card))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(pricingRow(card))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(card.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(card))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(card *inventory.StockCard) core.Row {
	a := card.Article
	state := "ACTIVO"
	stateColor := colorPrimary
	if a.IsDeleted() {
		state = "ELIMINADO"
		stateColor = colorAlert
	}
	return row.New(18).Add(
		col.New(8).Add(
			text.New(a.Designation, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Categoría: "+nonEmpty(card.CategoryName, "—"), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("FICHA DE STOCK", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(state, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: stateColor, Top: 7}),
			text.New("Generada: "+card.GeneratedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func pricingRow(card *inventory.StockCard) core.Row {
	pct, _ := card.Article.TaxRate.Percent()
	cell := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(value, props.Text{Size: 10, Top: 6}),
		)
	}
	return row.New(14).Add(
		cell("PRECIO SIN IVA", money(card.Article.UnitPriceExcludingTax)),
		cell(fmt.Sprintf("IVA (%d%%)", pct), money(card.Tax.TaxAmount)),
		cell("PRECIO CON IVA", money(card.Tax.UnitPriceIncludingTax)),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Fecha", 3, align.Left),
		h("Tipo", 3, align.Left),
		h("Cantidad", 2, align.Right),
		h("Saldo", 3, align.Right),
	)
}

func tableRows(lines []inventory.StockCardLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		m := l.Movement
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(strconv.FormatInt(m.Seq, 10), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(m.MovementDate.Format("02/01/2006 15:04"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(nonEmpty(movementLabels[m.Type], string(m.Type)), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(signed(l.Delta), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(formatInt(l.Balance), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(card *inventory.StockCard) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string, c *props.Color) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 1, Color: c})
	}
	registered := colorPrimary
	if card.CurrentQuantity != card.LedgerQuantity {
		registered = colorAlert
	}
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(
			label("Saldo del libro:"),
			label("Stock registrado:"),
		),
		col.New(3).Add(
			value(formatInt(card.LedgerQuantity), colorPrimary),
			value(formatInt(card.CurrentQuantity), registered),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func money(cents int64) string {
	return pricing.ToMajorUnits(cents).StringFixed(2)
}

func signed(n int64) string {
	if n > 0 {
		return "+" + formatInt(n)
	}
	return formatInt(n)
}

// formatInt inserta puntos de miles. Ej: -1234567 → "-1.234.567".
func formatInt(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}
	l := len(s)
	if l <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, l+l/3)
	for i, c := range []byte(s) {
		if i > 0 && (l-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}

// Package xlsx exporta el libro de movimientos de un artículo a Excel.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stock-articulos-api/internal/application/inventory"
	"github.com/jhoicas/stock-articulos-api/internal/domain/pricing"
)

const (
	ledgerSheet  = "Movimientos"
	summarySheet = "Artículo"
)

var _ inventory.LedgerExporter = (*LedgerExporter)(nil)

// LedgerExporter implementa inventory.LedgerExporter con excelize.
type LedgerExporter struct{}

// NewLedgerExporter construye el exportador.
func NewLedgerExporter() *LedgerExporter { return &LedgerExporter{} }

// ExportLedger genera un libro con dos hojas: movimientos (con saldo corrido) y resumen del artículo.
func (e *LedgerExporter) ExportLedger(_ context.Context, card *inventory.StockCard) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ledgerSheet); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}

	headers := []string{"Seq", "Fecha", "Tipo", "Cantidad", "Delta", "Saldo", "Registrado por"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(ledgerSheet, cell, h); err != nil {
			return nil, fmt.Errorf("xlsx: cabecera: %w", err)
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	_ = f.SetCellStyle(ledgerSheet, "A1", "G1", bold)

	for idx, l := range card.Lines {
		m := l.Movement
		values := []any{
			m.Seq,
			m.MovementDate.Format("2006-01-02 15:04:05"),
			string(m.Type),
			m.Quantity,
			l.Delta,
			l.Balance,
			m.CreatedBy,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, idx+2)
			if err := f.SetCellValue(ledgerSheet, cell, v); err != nil {
				return nil, fmt.Errorf("xlsx: fila %d: %w", idx+2, err)
			}
		}
	}

	_ = f.SetColWidth(ledgerSheet, "A", "A", 8)
	_ = f.SetColWidth(ledgerSheet, "B", "B", 20)
	_ = f.SetColWidth(ledgerSheet, "C", "C", 28)
	_ = f.SetColWidth(ledgerSheet, "D", "F", 12)
	_ = f.SetColWidth(ledgerSheet, "G", "G", 24)

	if err := writeSummary(f, card); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, card *inventory.StockCard) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("xlsx: crear hoja resumen: %w", err)
	}
	a := card.Article
	pct, _ := a.TaxRate.Percent()
	rows := [][2]any{
		{"ID", a.ID},
		{"Designación", a.Designation},
		{"Categoría", card.CategoryName},
		{"Precio sin IVA", pricing.ToMajorUnits(a.UnitPriceExcludingTax).InexactFloat64()},
		{"IVA %", pct},
		{"IVA", pricing.ToMajorUnits(card.Tax.TaxAmount).InexactFloat64()},
		{"Precio con IVA", pricing.ToMajorUnits(card.Tax.UnitPriceIncludingTax).InexactFloat64()},
		{"Saldo del libro", card.LedgerQuantity},
		{"Stock registrado", card.CurrentQuantity},
		{"Eliminado", a.IsDeleted()},
	}
	for i, r := range rows {
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", i+1), r[0]); err != nil {
			return fmt.Errorf("xlsx: resumen: %w", err)
		}
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", i+1), r[1]); err != nil {
			return fmt.Errorf("xlsx: resumen: %w", err)
		}
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 18)
	_ = f.SetColWidth(summarySheet, "B", "B", 40)
	return nil
}

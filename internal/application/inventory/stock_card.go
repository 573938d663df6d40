package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-articulos-api/internal/domain"
	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/internal/domain/pricing"
	"github.com/jhoicas/stock-articulos-api/internal/domain/repository"
)

// StockCardLine un movimiento con el saldo acumulado tras aplicarlo.
type StockCardLine struct {
	Movement *entity.StockMovement
	Delta    int64
	Balance  int64
}

// StockCard ficha de stock: cabecera del artículo, precios y libro con saldo corrido.
type StockCard struct {
	Article         *entity.Article
	CategoryName    string
	Tax             pricing.TaxBreakdown
	Lines           []StockCardLine
	CurrentQuantity int64 // caché (stocks)
	LedgerQuantity  int64 // último saldo del libro
	GeneratedAt     time.Time
}

// StockCardUseCase arma la ficha de stock y la entrega en PDF o XLSX.
type StockCardUseCase struct {
	articles   repository.ArticleRepository
	categories repository.CategoryRepository
	ledger     *MovementLedger
	projector  *QuantityProjector
	renderer   StockCardRenderer
	exporter   LedgerExporter
}

// NewStockCardUseCase construye el caso de uso.
func NewStockCardUseCase(
	articles repository.ArticleRepository,
	categories repository.CategoryRepository,
	movements repository.StockMovementRepository,
	stocks repository.StockRepository,
	renderer StockCardRenderer,
	exporter LedgerExporter,
) *StockCardUseCase {
	return &StockCardUseCase{
		articles:   articles,
		categories: categories,
		ledger:     NewMovementLedger(movements),
		projector:  NewQuantityProjector(stocks, movements),
		renderer:   renderer,
		exporter:   exporter,
	}
}

// Build arma la ficha de stock del artículo (activo o eliminado).
func (uc *StockCardUseCase) Build(ctx context.Context, articleID string) (*StockCard, error) {
	a, err := uc.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	tax, err := a.Tax()
	if err != nil {
		return nil, err
	}
	card := &StockCard{Article: a, Tax: tax, GeneratedAt: time.Now().UTC()}

	if a.CategoryID != "" {
		c, err := uc.categories.GetByID(ctx, a.CategoryID)
		if err != nil {
			return nil, err
		}
		if c != nil {
			card.CategoryName = c.Designation
		}
	}

	movements, err := uc.ledger.ListFor(ctx, articleID)
	if err != nil {
		return nil, err
	}
	var balance int64
	card.Lines = make([]StockCardLine, 0, len(movements))
	for _, m := range movements {
		d := m.SignedQuantity()
		balance += d
		card.Lines = append(card.Lines, StockCardLine{Movement: m, Delta: d, Balance: balance})
	}
	card.LedgerQuantity = balance

	if card.CurrentQuantity, err = uc.projector.CurrentQuantity(ctx, articleID); err != nil {
		return nil, err
	}
	return card, nil
}

// PDF genera la ficha de stock en PDF. Devuelve también el nombre de archivo sugerido.
func (uc *StockCardUseCase) PDF(ctx context.Context, articleID string) ([]byte, string, error) {
	card, err := uc.Build(ctx, articleID)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.renderer.RenderStockCard(ctx, card)
	if err != nil {
		return nil, "", fmt.Errorf("ficha de stock: generar pdf: %w", err)
	}
	return b, fmt.Sprintf("ficha-stock-%s.pdf", articleID), nil
}

// XLSX exporta el libro del artículo a Excel. Devuelve también el nombre de archivo sugerido.
func (uc *StockCardUseCase) XLSX(ctx context.Context, articleID string) ([]byte, string, error) {
	card, err := uc.Build(ctx, articleID)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.exporter.ExportLedger(ctx, card)
	if err != nil {
		return nil, "", fmt.Errorf("ficha de stock: exportar xlsx: %w", err)
	}
	return b, fmt.Sprintf("movimientos-%s.xlsx", articleID), nil
}

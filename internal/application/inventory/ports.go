package inventory

import "context"

// ArticleLocker serializa las operaciones sobre un mismo artículo (ver consistency.Guard).
type ArticleLocker interface {
	WithArticleLock(ctx context.Context, articleID string, fn func(ctx context.Context) error) error
}

// StockCardRenderer genera la ficha de stock en PDF.
type StockCardRenderer interface {
	RenderStockCard(ctx context.Context, card *StockCard) ([]byte, error)
}

// LedgerExporter exporta el libro de movimientos a una hoja de cálculo.
type LedgerExporter interface {
	ExportLedger(ctx context.Context, card *StockCard) ([]byte, error)
}

package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/internal/domain/repository"
)

// QuantityProjector mantiene la cantidad cacheada en stocks igual a la suma firmada del libro.
type QuantityProjector struct {
	stocks repository.StockRepository
	ledger *MovementLedger
}

// NewQuantityProjector construye el proyector sobre repositorios (pool o tx).
func NewQuantityProjector(stocks repository.StockRepository, movements repository.StockMovementRepository) *QuantityProjector {
	return &QuantityProjector{stocks: stocks, ledger: NewMovementLedger(movements)}
}

// StockCheck resultado de comparar la caché con el libro.
type StockCheck struct {
	ArticleID  string
	Cached     int64
	Ledger     int64
	Consistent bool
}

// Project cantidad que resultaría de aplicar delta, sin persistir. Bloquea la fila si existe.
// ErrOutOfRange si el resultado no cabe en int64.
func (p *QuantityProjector) Project(ctx context.Context, articleID string, delta int64) (int64, error) {
	s, err := p.stocks.GetForUpdate(ctx, articleID)
	if err != nil {
		return 0, err
	}
	var current int64
	if s != nil {
		current = s.CurrentQuantity
	}
	return entity.AddQuantity(current, delta)
}

// ApplyDelta suma delta a la cantidad actual (crea la fila la primera vez) y devuelve el nuevo valor.
// Llamar a Project antes, en la misma transacción, para rechazar el desborde sin tocar el libro.
func (p *QuantityProjector) ApplyDelta(ctx context.Context, articleID string, delta int64, now time.Time) (int64, error) {
	return p.stocks.ApplyDelta(ctx, articleID, delta, now)
}

// CurrentQuantity cantidad cacheada; 0 si el artículo nunca tuvo movimientos.
func (p *QuantityProjector) CurrentQuantity(ctx context.Context, articleID string) (int64, error) {
	s, err := p.stocks.Get(ctx, articleID)
	if err != nil {
		return 0, err
	}
	if s == nil {
		return 0, nil
	}
	return s.CurrentQuantity, nil
}

// Rebuild recalcula la cantidad desde el libro completo y sobrescribe la caché.
func (p *QuantityProjector) Rebuild(ctx context.Context, articleID string, now time.Time) (int64, error) {
	if _, err := p.stocks.GetForUpdate(ctx, articleID); err != nil {
		return 0, err
	}
	sum, err := p.ledger.Sum(ctx, articleID)
	if err != nil {
		return 0, err
	}
	if err := p.stocks.Overwrite(ctx, articleID, sum, now); err != nil {
		return 0, err
	}
	return sum, nil
}

// Verify compara la caché con la suma del libro.
func (p *QuantityProjector) Verify(ctx context.Context, articleID string) (*StockCheck, error) {
	cached, err := p.CurrentQuantity(ctx, articleID)
	if err != nil {
		return nil, err
	}
	sum, err := p.ledger.Sum(ctx, articleID)
	if err != nil {
		return nil, err
	}
	return &StockCheck{ArticleID: articleID, Cached: cached, Ledger: sum, Consistent: cached == sum}, nil
}

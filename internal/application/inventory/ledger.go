package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-articulos-api/internal/domain"
	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/internal/domain/repository"
)

// MovementLedger libro de movimientos de stock de solo inserción.
// Append debe ejecutarse en la misma transacción que QuantityProjector.ApplyDelta.
type MovementLedger struct {
	movements repository.StockMovementRepository
}

// NewMovementLedger construye el libro sobre el repositorio (pool o tx).
func NewMovementLedger(movements repository.StockMovementRepository) *MovementLedger {
	return &MovementLedger{movements: movements}
}

// Append registra un movimiento. at vacío = ahora.
func (l *MovementLedger) Append(
	ctx context.Context,
	articleID string,
	typ entity.MovementType,
	quantity int64,
	at time.Time,
	createdBy string,
) (*entity.StockMovement, error) {
	if articleID == "" || !typ.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	now := time.Now().UTC()
	if at.IsZero() {
		at = now
	}
	m := &entity.StockMovement{
		ArticleID:    articleID,
		Type:         typ,
		Quantity:     quantity,
		MovementDate: at,
		CreatedAt:    now,
		CreatedBy:    createdBy,
	}
	if err := l.movements.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ListFor todos los movimientos del artículo, del más antiguo al más reciente.
func (l *MovementLedger) ListFor(ctx context.Context, articleID string) ([]*entity.StockMovement, error) {
	return l.movements.ListByArticle(ctx, articleID)
}

// Page movimientos filtrados y total.
func (l *MovementLedger) Page(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, int64, error) {
	return l.movements.Page(ctx, filter)
}

// Sum suma firmada del libro del artículo.
func (l *MovementLedger) Sum(ctx context.Context, articleID string) (int64, error) {
	return l.movements.SumByArticle(ctx, articleID)
}

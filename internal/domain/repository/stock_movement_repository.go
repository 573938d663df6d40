package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
)

// MovementFilter filtro para listar movimientos de un artículo. Campos vacíos no filtran.
type MovementFilter struct {
	ArticleID string
	From, To  *time.Time
	Type      entity.MovementType
	Limit     int
	Offset    int
}

// StockMovementRepository define el puerto del libro de movimientos (solo inserción).
type StockMovementRepository interface {
	// Create inserta el movimiento y completa ID/Seq/CreatedAt asignados por el almacenamiento.
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByArticle todos los movimientos del artículo en orden de inserción (seq).
	ListByArticle(ctx context.Context, articleID string) ([]*entity.StockMovement, error)
	// Page movimientos filtrados, en orden de inserción, y total sin paginar.
	Page(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, int64, error)
	// SumByArticle suma firmada de todos los movimientos del artículo.
	SumByArticle(ctx context.Context, articleID string) (int64, error)
}

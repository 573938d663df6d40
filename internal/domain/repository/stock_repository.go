package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
)

// StockRepository define el puerto de la proyección de stock (una fila por artículo).
// Usado dentro de transacciones para garantizar consistencia con el libro.
type StockRepository interface {
	// Get devuelve (nil, nil) si el artículo nunca tuvo movimientos.
	Get(ctx context.Context, articleID string) (*entity.Stock, error)
	// GetForUpdate igual que Get pero bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, articleID string) (*entity.Stock, error)
	// ApplyDelta suma delta a la cantidad actual (crea la fila si no existe) y devuelve el nuevo valor.
	ApplyDelta(ctx context.Context, articleID string, delta int64, at time.Time) (int64, error)
	// Overwrite fija la cantidad (reconstrucción desde el libro).
	Overwrite(ctx context.Context, articleID string, quantity int64, at time.Time) error
}

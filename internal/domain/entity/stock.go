package entity

import (
	"math"
	"time"

	"github.com/jhoicas/stock-articulos-api/internal/domain"
)

// Stock proyección de la cantidad actual de un artículo (una fila por artículo).
// Es una caché: CurrentQuantity debe coincidir con la suma firmada del libro de movimientos
// y puede reconstruirse en cualquier momento desde él.
type Stock struct {
	ArticleID       string
	CurrentQuantity int64
	UpdatedAt       time.Time
}

// AddQuantity suma delta a current; ErrOutOfRange si el resultado no cabe en int64.
func AddQuantity(current, delta int64) (int64, error) {
	if (delta > 0 && current > math.MaxInt64-delta) || (delta < 0 && current < math.MinInt64-delta) {
		return 0, domain.ErrOutOfRange
	}
	return current + delta, nil
}

package ports

import (
	"context"

	"github.com/jhoicas/stock-articulos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error (o entra en pánico) no queda nada persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		articles repository.ArticleRepository,
		movements repository.StockMovementRepository,
		stocks repository.StockRepository,
	) error) error
}

package postgres

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

type stockRow struct {
	ArticleID       string    `db:"article_id"`
	CurrentQuantity int64     `db:"current_quantity"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un artículo; (nil, nil) si nunca tuvo movimientos.
func (r *StockRepo) Get(ctx context.Context, articleID string) (*entity.Stock, error) {
	return r.get(ctx, `SELECT article_id, current_quantity, updated_at FROM stocks WHERE article_id = $1`, articleID)
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, articleID string) (*entity.Stock, error) {
	return r.get(ctx, `SELECT article_id, current_quantity, updated_at FROM stocks WHERE article_id = $1 FOR UPDATE`, articleID)
}

func (r *StockRepo) get(ctx context.Context, query, articleID string) (*entity.Stock, error) {
	var row stockRow
	if err := pgxscan.Get(ctx, r.q, &row, query, articleID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, mapError(err, "get stock")
	}
	return &entity.Stock{ArticleID: row.ArticleID, CurrentQuantity: row.CurrentQuantity, UpdatedAt: row.UpdatedAt}, nil
}

// ApplyDelta suma atómica sobre la fila (upsert); la crea en el primer movimiento.
func (r *StockRepo) ApplyDelta(ctx context.Context, articleID string, delta int64, at time.Time) (int64, error) {
	query := `
		INSERT INTO stocks (article_id, current_quantity, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (article_id)
		DO UPDATE SET current_quantity = stocks.current_quantity + EXCLUDED.current_quantity,
			updated_at = EXCLUDED.updated_at
		RETURNING current_quantity`
	var qty int64
	if err := r.q.QueryRow(ctx, query, articleID, delta, at).Scan(&qty); err != nil {
		return 0, mapError(err, "apply stock delta")
	}
	return qty, nil
}

// Overwrite fija la cantidad (reconstrucción desde el libro).
func (r *StockRepo) Overwrite(ctx context.Context, articleID string, quantity int64, at time.Time) error {
	query := `
		INSERT INTO stocks (article_id, current_quantity, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (article_id)
		DO UPDATE SET current_quantity = EXCLUDED.current_quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, articleID, quantity, at)
	return mapError(err, "overwrite stock")
}

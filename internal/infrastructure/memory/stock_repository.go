package memory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo proyección de stock en memoria.
type StockRepo struct {
	base
}

// NewStockRepository construye el repositorio sobre el Store.
func NewStockRepository(s *Store) *StockRepo {
	return &StockRepo{base{store: s}}
}

func (r *StockRepo) Get(ctx context.Context, articleID string) (*entity.Stock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *entity.Stock
	r.read(func(st *state) {
		if s, ok := st.stocks[articleID]; ok {
			out = &s
		}
	})
	return out, nil
}

// GetForUpdate en memoria las escrituras ya están serializadas; equivale a Get.
func (r *StockRepo) GetForUpdate(ctx context.Context, articleID string) (*entity.Stock, error) {
	return r.Get(ctx, articleID)
}

func (r *StockRepo) ApplyDelta(ctx context.Context, articleID string, delta int64, at time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var qty int64
	err := r.write(func(st *state) error {
		s := st.stocks[articleID]
		next, err := entity.AddQuantity(s.CurrentQuantity, delta)
		if err != nil {
			return err
		}
		s.ArticleID = articleID
		s.CurrentQuantity = next
		s.UpdatedAt = at
		st.stocks[articleID] = s
		qty = s.CurrentQuantity
		return nil
	})
	return qty, err
}

func (r *StockRepo) Overwrite(ctx context.Context, articleID string, quantity int64, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.write(func(st *state) error {
		st.stocks[articleID] = entity.Stock{ArticleID: articleID, CurrentQuantity: quantity, UpdatedAt: at}
		return nil
	})
}

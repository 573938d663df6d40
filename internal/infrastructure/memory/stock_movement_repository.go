package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-articulos-api/internal/domain"
	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos en memoria (solo inserción).
type StockMovementRepo struct {
	base
}

// NewStockMovementRepository construye el repositorio sobre el Store.
func NewStockMovementRepository(s *Store) *StockMovementRepo {
	return &StockMovementRepo{base{store: s}}
}

func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	return r.write(func(st *state) error {
		st.seq++
		m.Seq = st.seq
		st.movements = append(st.movements, *m)
		return nil
	})
}

func (r *StockMovementRepo) ListByArticle(ctx context.Context, articleID string) ([]*entity.StockMovement, error) {
	out, _, err := r.Page(ctx, repository.MovementFilter{ArticleID: articleID})
	return out, err
}

func (r *StockMovementRepo) Page(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	var matched []*entity.StockMovement
	r.read(func(st *state) {
		for _, m := range st.movements {
			if m.ArticleID != f.ArticleID {
				continue
			}
			if f.Type != "" && m.Type != f.Type {
				continue
			}
			if f.From != nil && m.MovementDate.Before(*f.From) {
				continue
			}
			if f.To != nil && m.MovementDate.After(*f.To) {
				continue
			}
			m := m
			matched = append(matched, &m)
		}
	})
	total := int64(len(matched))
	if f.Offset > 0 {
		if f.Offset >= len(matched) {
			return nil, total, nil
		}
		matched = matched[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}

func (r *StockMovementRepo) SumByArticle(ctx context.Context, articleID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var (
		sum int64
		err error
	)
	r.read(func(st *state) {
		for _, m := range st.movements {
			if m.ArticleID != articleID {
				continue
			}
			if sum, err = entity.AddQuantity(sum, m.SignedQuantity()); err != nil {
				return
			}
		}
	})
	if err != nil {
		return 0, fmt.Errorf("sum stock movements: %w: fuera de rango", domain.ErrStorage)
	}
	return sum, nil
}

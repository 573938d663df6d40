package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo categorías en memoria.
type CategoryRepo struct {
	base
}

// NewCategoryRepository construye el repositorio sobre el Store.
func NewCategoryRepository(s *Store) *CategoryRepo {
	return &CategoryRepo{base{store: s}}
}

func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}
	return r.write(func(st *state) error {
		st.categories[category.ID] = *category
		return nil
	})
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *entity.Category
	r.read(func(st *state) {
		if c, ok := st.categories[id]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r *CategoryRepo) GetByDesignation(ctx context.Context, designation string) (*entity.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *entity.Category
	r.read(func(st *state) {
		for _, c := range st.categories {
			if c.Designation == designation {
				c := c
				out = &c
				return
			}
		}
	})
	return out, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []*entity.Category
	r.read(func(st *state) {
		for _, c := range st.categories {
			c := c
			out = append(out, &c)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Designation < out[j].Designation })
	return out, nil
}

package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-articulos-api/internal/domain"
	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/internal/domain/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

// ArticleRepo artículos en memoria.
type ArticleRepo struct {
	base
}

// NewArticleRepository construye el repositorio sobre el Store.
func NewArticleRepository(s *Store) *ArticleRepo {
	return &ArticleRepo{base{store: s}}
}

// activeKeyTaken equivale al índice único parcial (designation_key WHERE NOT is_deleted).
func activeKeyTaken(st *state, key, excludeID string) bool {
	for id, a := range st.articles {
		if id != excludeID && !a.IsDeleted() && a.DesignationKey() == key {
			return true
		}
	}
	return false
}

// Create inserta el artículo.
func (r *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if article.ID == "" {
		article.ID = uuid.New().String()
	}
	return r.write(func(st *state) error {
		if _, ok := st.articles[article.ID]; ok {
			return fmt.Errorf("create article: %w: id duplicado", domain.ErrStorage)
		}
		if !article.IsDeleted() && activeKeyTaken(st, article.DesignationKey(), article.ID) {
			return domain.ErrDuplicateDesignation
		}
		st.articles[article.ID] = *article
		return nil
	})
}

// GetByID devuelve el artículo o (nil, nil).
func (r *ArticleRepo) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *entity.Article
	r.read(func(st *state) {
		if a, ok := st.articles[id]; ok {
			out = &a
		}
	})
	return out, nil
}

// Update reemplaza los campos editables de un artículo activo.
func (r *ArticleRepo) Update(ctx context.Context, article *entity.Article) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.write(func(st *state) error {
		cur, ok := st.articles[article.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if cur.IsDeleted() {
			return domain.ErrDeleted
		}
		if activeKeyTaken(st, article.DesignationKey(), article.ID) {
			return domain.ErrDuplicateDesignation
		}
		cur.Designation = article.Designation
		cur.UnitPriceExcludingTax = article.UnitPriceExcludingTax
		cur.TaxRate = article.TaxRate
		cur.PictureRef = article.PictureRef
		cur.CategoryID = article.CategoryID
		cur.UpdatedAt = article.UpdatedAt
		st.articles[article.ID] = cur
		return nil
	})
}

// MarkDeleted baja lógica.
func (r *ArticleRepo) MarkDeleted(ctx context.Context, id string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.write(func(st *state) error {
		cur, ok := st.articles[id]
		if !ok {
			return domain.ErrNotFound
		}
		if err := cur.MarkDeleted(at); err != nil {
			return err
		}
		st.articles[id] = cur
		return nil
	})
}

// ListActive artículos activos por (created_at, id).
func (r *ArticleRepo) ListActive(ctx context.Context) ([]*entity.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []*entity.Article
	r.read(func(st *state) {
		for _, a := range st.articles {
			if !a.IsDeleted() {
				a := a
				out = append(out, &a)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// ExistsActiveByDesignation indica si otro artículo activo usa la clave.
func (r *ArticleRepo) ExistsActiveByDesignation(ctx context.Context, designationKey, excludeID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var taken bool
	r.read(func(st *state) { taken = activeKeyTaken(st, designationKey, excludeID) })
	return taken, nil
}

package postgres

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

type categoryRow struct {
	ID          string    `db:"id"`
	Designation string    `db:"designation"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r categoryRow) toEntity() *entity.Category {
	return &entity.Category{ID: r.ID, Designation: r.Designation, CreatedAt: r.CreatedAt}
}

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO categories (id, designation, created_at) VALUES ($1, $2, $3)`,
		c.ID, c.Designation, c.CreatedAt)
	return mapError(err, "create category")
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT id, designation, created_at FROM categories WHERE id = $1`, id)
}

func (r *CategoryRepo) GetByDesignation(ctx context.Context, designation string) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT id, designation, created_at FROM categories WHERE designation = $1`, designation)
}

func (r *CategoryRepo) getOne(ctx context.Context, query string, arg any) (*entity.Category, error) {
	var row categoryRow
	if err := pgxscan.Get(ctx, r.q, &row, query, arg); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, mapError(err, "get category")
	}
	return row.toEntity(), nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	var rows []categoryRow
	if err := pgxscan.Select(ctx, r.q, &rows, `SELECT id, designation, created_at FROM categories ORDER BY designation`); err != nil {
		return nil, mapError(err, "list categories")
	}
	out := make([]*entity.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

package postgres

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/stock-articulos-api/internal/domain"
	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/internal/domain/pricing"
	"github.com/jhoicas/stock-articulos-api/internal/domain/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

const articleColumns = `id, designation, unit_price_excluding_tax, tax_rate, picture_ref,
	category_id, is_deleted, deleted_at, created_at, updated_at`

type articleRow struct {
	ID                    string     `db:"id"`
	Designation           string     `db:"designation"`
	UnitPriceExcludingTax int64      `db:"unit_price_excluding_tax"`
	TaxRate               string     `db:"tax_rate"`
	PictureRef            string     `db:"picture_ref"`
	CategoryID            *string    `db:"category_id"`
	IsDeleted             bool       `db:"is_deleted"`
	DeletedAt             *time.Time `db:"deleted_at"`
	CreatedAt             time.Time  `db:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at"`
}

func (r articleRow) toEntity() *entity.Article {
	state := entity.LifecycleActive
	if r.IsDeleted {
		state = entity.LifecycleDeleted
	}
	return &entity.Article{
		ID:                    r.ID,
		Designation:           r.Designation,
		UnitPriceExcludingTax: r.UnitPriceExcludingTax,
		TaxRate:               pricing.TaxRate(r.TaxRate),
		PictureRef:            r.PictureRef,
		CategoryID:            derefString(r.CategoryID),
		State:                 state,
		DeletedAt:             r.DeletedAt,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}
}

// ArticleRepo implementación de ArticleRepository sobre PostgreSQL (usable con pool o tx).
type ArticleRepo struct {
	q Querier
}

// NewArticleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewArticleRepository(q Querier) *ArticleRepo {
	return &ArticleRepo{q: q}
}

// Create inserta el artículo. El índice único parcial rechaza una designación activa repetida.
func (r *ArticleRepo) Create(ctx context.Context, a *entity.Article) error {
	query := `
		INSERT INTO articles (id, designation, designation_key, unit_price_excluding_tax, tax_rate,
			picture_ref, category_id, is_deleted, deleted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Designation, a.DesignationKey(), a.UnitPriceExcludingTax, string(a.TaxRate),
		a.PictureRef, nullableString(a.CategoryID), a.IsDeleted(), a.DeletedAt, a.CreatedAt, a.UpdatedAt,
	)
	return mapError(err, "create article")
}

// GetByID obtiene el artículo (activo o eliminado); (nil, nil) si no existe.
func (r *ArticleRepo) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	var row articleRow
	err := pgxscan.Get(ctx, r.q, &row, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, mapError(err, "get article")
	}
	return row.toEntity(), nil
}

// Update reemplaza los campos editables de un artículo activo.
func (r *ArticleRepo) Update(ctx context.Context, a *entity.Article) error {
	query := `
		UPDATE articles
		SET designation = $2, designation_key = $3, unit_price_excluding_tax = $4, tax_rate = $5,
			picture_ref = $6, category_id = $7, updated_at = $8
		WHERE id = $1 AND NOT is_deleted`
	tag, err := r.q.Exec(ctx, query,
		a.ID, a.Designation, a.DesignationKey(), a.UnitPriceExcludingTax, string(a.TaxRate),
		a.PictureRef, nullableString(a.CategoryID), a.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "update article")
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrDeleted(ctx, a.ID, domain.ErrDeleted)
	}
	return nil
}

// MarkDeleted baja lógica; la fila y sus movimientos se conservan.
func (r *ArticleRepo) MarkDeleted(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE articles SET is_deleted = TRUE, deleted_at = $2, updated_at = $2
		WHERE id = $1 AND NOT is_deleted`
	tag, err := r.q.Exec(ctx, query, id, at)
	if err != nil {
		return mapError(err, "delete article")
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrDeleted(ctx, id, domain.ErrAlreadyDeleted)
	}
	return nil
}

// missingOrDeleted distingue, tras un UPDATE sin filas, entre inexistente y eliminado.
func (r *ArticleRepo) missingOrDeleted(ctx context.Context, id string, deletedErr error) error {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrNotFound
	}
	return deletedErr
}

// ListActive artículos activos por (created_at, id).
func (r *ArticleRepo) ListActive(ctx context.Context) ([]*entity.Article, error) {
	var rows []articleRow
	query := `SELECT ` + articleColumns + ` FROM articles WHERE NOT is_deleted ORDER BY created_at, id`
	if err := pgxscan.Select(ctx, r.q, &rows, query); err != nil {
		return nil, mapError(err, "list articles")
	}
	out := make([]*entity.Article, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

// ExistsActiveByDesignation indica si otro artículo activo usa la clave.
func (r *ArticleRepo) ExistsActiveByDesignation(ctx context.Context, designationKey, excludeID string) (bool, error) {
	q := psql.Select("1").From("articles").
		Where("designation_key = ?", designationKey).
		Where("NOT is_deleted")
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	sql, args, err := q.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, mapError(err, "exists article")
	}
	var exists bool
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, mapError(err, "exists article")
	}
	return exists, nil
}

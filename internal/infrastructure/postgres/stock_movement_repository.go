package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-articulos-api/internal/domain"
	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

var movementColumns = []string{
	"id", "seq", "article_id", "type", "quantity", "movement_date", "created_at", "created_by",
}

type movementRow struct {
	ID           string    `db:"id"`
	Seq          int64     `db:"seq"`
	ArticleID    string    `db:"article_id"`
	Type         string    `db:"type"`
	Quantity     int64     `db:"quantity"`
	MovementDate time.Time `db:"movement_date"`
	CreatedAt    time.Time `db:"created_at"`
	CreatedBy    string    `db:"created_by"`
}

func (r movementRow) toEntity() *entity.StockMovement {
	return &entity.StockMovement{
		ID:           r.ID,
		Seq:          r.Seq,
		ArticleID:    r.ArticleID,
		Type:         entity.MovementType(r.Type),
		Quantity:     r.Quantity,
		MovementDate: r.MovementDate,
		CreatedAt:    r.CreatedAt,
		CreatedBy:    r.CreatedBy,
	}
}

// positiveTypes tipos que suman stock, usados para calcular la suma firmada en SQL.
func positiveTypes() []string {
	var out []string
	for _, t := range entity.MovementTypes {
		if t.Sign() > 0 {
			out = append(out, string(t))
		}
	}
	return out
}

// StockMovementRepo libro de movimientos sobre PostgreSQL. Solo INSERT y SELECT.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta el movimiento; seq lo asigna la secuencia de la tabla.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO stock_movements (id, article_id, type, quantity, movement_date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.ArticleID, string(m.Type), m.Quantity, m.MovementDate, m.CreatedAt, m.CreatedBy,
	).Scan(&m.Seq)
	return mapError(err, "create stock movement")
}

// ListByArticle todos los movimientos del artículo por seq.
func (r *StockMovementRepo) ListByArticle(ctx context.Context, articleID string) ([]*entity.StockMovement, error) {
	sql, args, err := psql.Select(movementColumns...).
		From("stock_movements").
		Where("article_id = ?", articleID).
		OrderBy("seq").
		ToSql()
	if err != nil {
		return nil, mapError(err, "list stock movements")
	}
	return r.selectMovements(ctx, sql, args...)
}

// Page movimientos filtrados por tipo y rango de fechas, más el total sin paginar.
func (r *StockMovementRepo) Page(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, int64, error) {
	base := psql.Select().From("stock_movements").Where("article_id = ?", f.ArticleID)
	if f.Type != "" {
		base = base.Where("type = ?", string(f.Type))
	}
	if f.From != nil {
		base = base.Where("movement_date >= ?", *f.From)
	}
	if f.To != nil {
		base = base.Where("movement_date <= ?", *f.To)
	}

	countSQL, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, mapError(err, "count stock movements")
	}
	var total int64
	if err := r.q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, mapError(err, "count stock movements")
	}

	page := base.Columns(movementColumns...).OrderBy("seq")
	if f.Limit > 0 {
		page = page.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		page = page.Offset(uint64(f.Offset))
	}
	sql, args, err := page.ToSql()
	if err != nil {
		return nil, 0, mapError(err, "page stock movements")
	}
	items, err := r.selectMovements(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *StockMovementRepo) selectMovements(ctx context.Context, sql string, args ...any) ([]*entity.StockMovement, error) {
	var rows []movementRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, mapError(err, "select stock movements")
	}
	out := make([]*entity.StockMovement, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

// SumByArticle suma firmada del libro. SUM(BIGINT) es NUMERIC: se lee como decimal y se
// verifica que quepa en int64.
func (r *StockMovementRepo) SumByArticle(ctx context.Context, articleID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = ANY($2) THEN quantity ELSE -quantity END), 0)
		FROM stock_movements WHERE article_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, articleID, positiveTypes()).Scan(&sum); err != nil {
		return 0, mapError(err, "sum stock movements")
	}
	n := sum.IntPart()
	if !decimal.NewFromInt(n).Equal(sum) {
		return 0, fmt.Errorf("sum stock movements: %w: fuera de rango %s", domain.ErrStorage, sum)
	}
	return n, nil
}

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-articulos-api/internal/domain"
	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/internal/domain/pricing"
	"github.com/jhoicas/stock-articulos-api/internal/infrastructure/postgres"
)

var articleCols = []string{
	"id", "designation", "unit_price_excluding_tax", "tax_rate", "picture_ref",
	"category_id", "is_deleted", "deleted_at", "created_at", "updated_at",
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	return mock
}

func TestArticleRepo_GetByID(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	catID := "c1"

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantNil bool
		check   func(t *testing.T, a *entity.Article)
	}{
		{
			name: "activo con categoría",
			setup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(articleCols).
					AddRow("a1", "Livre", int64(599), "SIX", "", &catID, false, nil, now, now)
				mock.ExpectQuery(`SELECT .* FROM articles WHERE id = \$1`).
					WithArgs("a1").
					WillReturnRows(rows)
			},
			check: func(t *testing.T, a *entity.Article) {
				assert.Equal(t, "Livre", a.Designation)
				assert.Equal(t, pricing.TaxRateSix, a.TaxRate)
				assert.Equal(t, "c1", a.CategoryID)
				assert.Equal(t, entity.LifecycleActive, a.State)
				assert.Nil(t, a.DeletedAt)
			},
		},
		{
			name: "eliminado",
			setup: func(mock pgxmock.PgxPoolIface) {
				deletedAt := now.Add(time.Hour)
				rows := pgxmock.NewRows(articleCols).
					AddRow("a1", "Livre", int64(599), "SIX", "x.png", nil, true, &deletedAt, now, now)
				mock.ExpectQuery(`SELECT`).WithArgs("a1").WillReturnRows(rows)
			},
			check: func(t *testing.T, a *entity.Article) {
				assert.True(t, a.IsDeleted())
				require.NotNil(t, a.DeletedAt)
				assert.Empty(t, a.CategoryID)
				assert.Equal(t, "x.png", a.PictureRef)
			},
		},
		{
			name: "no existe",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT`).WithArgs("a1").WillReturnRows(pgxmock.NewRows(articleCols))
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			tt.setup(mock)

			a, err := postgres.NewArticleRepository(mock).GetByID(context.Background(), "a1")
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, a)
				return
			}
			require.NotNil(t, a)
			tt.check(t, a)
		})
	}
}

func TestArticleRepo_Create(t *testing.T) {
	now := time.Now().UTC()
	a := &entity.Article{
		ID: "a1", Designation: "Le Dernier Samurai", UnitPriceExcludingTax: 399,
		TaxRate: pricing.TaxRateTwentyOne, State: entity.LifecycleActive, CreatedAt: now, UpdatedAt: now,
	}

	t.Run("ok guarda la clave de designación", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`INSERT INTO articles`).
			WithArgs("a1", "Le Dernier Samurai", "le dernier samurai", int64(399), "TWENTY_ONE",
				"", pgxmock.AnyArg(), false, pgxmock.AnyArg(), now, now).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, postgres.NewArticleRepository(mock).Create(context.Background(), a))
	})

	t.Run("índice único parcial", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`INSERT INTO articles`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "ux_articles_designation_active"})

		err := postgres.NewArticleRepository(mock).Create(context.Background(), a)
		assert.ErrorIs(t, err, domain.ErrDuplicateDesignation)
	})

	t.Run("categoría inexistente", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`INSERT INTO articles`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_articles_category"})

		err := postgres.NewArticleRepository(mock).Create(context.Background(), a)
		assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	})

	t.Run("contexto cancelado pasa sin envolver", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`INSERT INTO articles`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(context.Canceled)

		err := postgres.NewArticleRepository(mock).Create(context.Background(), a)
		assert.Equal(t, context.Canceled, err)
	})
}

func TestArticleRepo_Update_SinFilas(t *testing.T) {
	now := time.Now().UTC()
	a := &entity.Article{ID: "a1", Designation: "Livre", UnitPriceExcludingTax: 1, TaxRate: pricing.TaxRateSix, UpdatedAt: now}

	t.Run("eliminado", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`UPDATE articles`).
			WithArgs("a1", "Livre", "livre", int64(1), "SIX", "", pgxmock.AnyArg(), now).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery(`SELECT`).WithArgs("a1").
			WillReturnRows(pgxmock.NewRows(articleCols).
				AddRow("a1", "Livre", int64(1), "SIX", "", nil, true, &now, now, now))

		err := postgres.NewArticleRepository(mock).Update(context.Background(), a)
		assert.ErrorIs(t, err, domain.ErrDeleted)
	})

	t.Run("inexistente", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`UPDATE articles`).
			WithArgs("a1", "Livre", "livre", int64(1), "SIX", "", pgxmock.AnyArg(), now).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery(`SELECT`).WithArgs("a1").WillReturnRows(pgxmock.NewRows(articleCols))

		err := postgres.NewArticleRepository(mock).Update(context.Background(), a)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestArticleRepo_MarkDeleted(t *testing.T) {
	at := time.Now().UTC()

	t.Run("ok", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`UPDATE articles SET is_deleted = TRUE`).
			WithArgs("a1", at).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, postgres.NewArticleRepository(mock).MarkDeleted(context.Background(), "a1", at))
	})

	t.Run("ya eliminado", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`UPDATE articles SET is_deleted = TRUE`).
			WithArgs("a1", at).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery(`SELECT`).WithArgs("a1").
			WillReturnRows(pgxmock.NewRows(articleCols).
				AddRow("a1", "Livre", int64(1), "SIX", "", nil, true, &at, at, at))

		err := postgres.NewArticleRepository(mock).MarkDeleted(context.Background(), "a1", at)
		assert.ErrorIs(t, err, domain.ErrAlreadyDeleted)
	})
}

func TestArticleRepo_ExistsActiveByDesignation(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT EXISTS \( SELECT 1 FROM articles WHERE designation_key = \$1 AND NOT is_deleted AND id <> \$2 \)`).
		WithArgs("livre", "a1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	taken, err := postgres.NewArticleRepository(mock).ExistsActiveByDesignation(context.Background(), "livre", "a1")
	require.NoError(t, err)
	assert.True(t, taken)
}

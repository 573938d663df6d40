package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-articulos-api/internal/application/inventory"
	"github.com/jhoicas/stock-articulos-api/internal/domain"
	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/internal/domain/repository"
	"github.com/jhoicas/stock-articulos-api/internal/infrastructure/memory"
)

func TestRebuild_CorrigeCacheDesviada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.article(t, "Livre")
	_, err := f.register.RecordMovement(ctx, in(a.ID, entity.MovementTypeStockIn, 7))
	require.NoError(t, err)

	require.NoError(t, memory.NewStockRepository(f.store).Overwrite(ctx, a.ID, 99, time.Now()))
	check, err := f.stock.Verify(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, check.Consistent)

	rebuilt, err := f.stock.Rebuild(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(99), rebuilt.Cached)
	assert.Equal(t, int64(7), rebuilt.Ledger)
	assert.False(t, rebuilt.Consistent)

	qty, err := f.stock.CurrentQuantity(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), qty)
}

func TestRebuild_ArticuloInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.stock.Rebuild(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListMovements_FiltrosYPaginacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.article(t, "Livre")

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		d := base.AddDate(0, 0, i)
		typ := entity.MovementTypeStockIn
		if i%2 == 1 {
			typ = entity.MovementTypeStockOut
		}
		r := in(a.ID, typ, int64(i+1))
		r.MovementDate = &d
		_, err := f.register.RecordMovement(ctx, r)
		require.NoError(t, err)
	}

	page, err := f.stock.ListMovements(ctx, repository.MovementFilter{ArticleID: a.ID, Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(6), page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(2), page.Items[0].Quantity)
	assert.Equal(t, int64(3), page.Items[1].Quantity)

	page, err = f.stock.ListMovements(ctx, repository.MovementFilter{ArticleID: a.ID, Type: entity.MovementTypeStockOut})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, inventory.DefaultPageLimit, page.Limit)

	from := base.AddDate(0, 0, 2)
	to := base.AddDate(0, 0, 3)
	page, err = f.stock.ListMovements(ctx, repository.MovementFilter{ArticleID: a.ID, From: &from, To: &to})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	_, err = f.stock.ListMovements(ctx, repository.MovementFilter{ArticleID: a.ID, From: &to, To: &from})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.stock.ListMovements(ctx, repository.MovementFilter{ArticleID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

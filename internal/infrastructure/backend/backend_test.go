package backend_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/internal/infrastructure/backend"
	"github.com/jhoicas/stock-articulos-api/pkg/config"
	"github.com/jhoicas/stock-articulos-api/pkg/logger"
)

func TestOpen_Memory(t *testing.T) {
	b, err := backend.Open(context.Background(), config.DBConfig{Driver: config.DriverMemory}, logger.Nop())
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, config.DriverMemory, b.Driver)
	c := &entity.Category{Designation: "Livres"}
	require.NoError(t, b.Categories.Create(context.Background(), c))
	got, err := b.Categories.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Livres", got.Designation)

	e := &entity.Extern{Type: entity.ExternTypeClient, FirstName: "Jean", LastName: "Martin", Email: "jean@example.com"}
	require.NoError(t, b.Externs.Create(context.Background(), e))
	taken, err := b.Externs.ExistsByEmail(context.Background(), "jean@example.com")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := backend.Open(context.Background(), config.DBConfig{Driver: "sqlite"}, logger.Nop())
	assert.Error(t, err)
}

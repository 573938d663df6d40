package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-articulos-api/internal/domain"
	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
)

func TestSignedDelta_SignoPorTipo(t *testing.T) {
	cases := map[entity.MovementType]int64{
		entity.MovementTypeStockIn:            5,
		entity.MovementTypeStockOut:           -5,
		entity.MovementTypePositiveCorrection: 5,
		entity.MovementTypeNegativeCorrection: -5,
		entity.MovementTypeReturn:             5,
		entity.MovementTypeRecall:             -5,
		entity.MovementTypeMissing:            -5,
	}
	require.Len(t, cases, len(entity.MovementTypes))
	for typ, want := range cases {
		got, err := entity.SignedDelta(typ, 5)
		require.NoError(t, err, typ)
		assert.Equal(t, want, got, typ)
	}
}

func TestSignedDelta_Errores(t *testing.T) {
	_, err := entity.SignedDelta(entity.MovementTypeStockIn, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = entity.SignedDelta(entity.MovementType("TRANSFER"), 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseMovementType(t *testing.T) {
	got, err := entity.ParseMovementType("STOCK_OUT")
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeStockOut, got)

	got, err = entity.ParseMovementType(" positive_correction ")
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypePositiveCorrection, got)

	got, err = entity.ParseMovementType("in")
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeStockIn, got)

	_, err = entity.ParseMovementType("ADJUSTMENT")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStockMovement_SignedQuantity(t *testing.T) {
	m := &entity.StockMovement{Type: entity.MovementTypeMissing, Quantity: 3}
	assert.Equal(t, int64(-3), m.SignedQuantity())
}

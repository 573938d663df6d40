package entity_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-articulos-api/internal/domain"
	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
)

func TestAddQuantity(t *testing.T) {
	ok := []struct{ current, delta, want int64 }{
		{10, -3, 7},
		{0, -5, -5},
		{math.MaxInt64 - 1, 1, math.MaxInt64},
		{math.MinInt64 + 1, -1, math.MinInt64},
		{math.MaxInt64, -math.MaxInt64, 0},
	}
	for _, tc := range ok {
		got, err := entity.AddQuantity(tc.current, tc.delta)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	for _, tc := range [][2]int64{{math.MaxInt64, 1}, {math.MaxInt64, math.MaxInt64}, {math.MinInt64, -1}, {-2, math.MinInt64}} {
		_, err := entity.AddQuantity(tc[0], tc[1])
		assert.ErrorIs(t, err, domain.ErrOutOfRange, tc)
	}
}

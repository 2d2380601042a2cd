package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscountRateFor_Boundaries(t *testing.T) {
	tests := []struct {
		quantity int
		rate     float64
	}{
		{0, 0},
		{1, 0},
		{10, 0},
		{11, 0.05},
		{49, 0.05},
		{50, 0.05},
		{51, 0.10},
		{500, 0.10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.rate, DiscountRateFor(tt.quantity), "quantity %d", tt.quantity)
	}
}

func TestDiscountRateFor_NonDecreasing(t *testing.T) {
	prev := 0.0
	for q := 0; q <= 200; q++ {
		rate := DiscountRateFor(q)
		require.GreaterOrEqual(t, rate, prev, "rate dropped at quantity %d", q)
		require.Less(t, rate, 1.0)
		prev = rate
	}
}

func TestNextTierFor(t *testing.T) {
	tests := []struct {
		quantity int
		needed   int
		percent  float64
		ok       bool
	}{
		{1, 10, 5, true},
		{5, 6, 5, true},
		{10, 1, 5, true},
		{11, 40, 10, true},
		{50, 1, 10, true},
		{51, 0, 0, false},
		{100, 0, 0, false},
	}

	for _, tt := range tests {
		next, ok := NextTierFor(tt.quantity)
		require.Equal(t, tt.ok, ok, "quantity %d", tt.quantity)
		if !ok {
			continue
		}
		assert.Equal(t, tt.needed, next.Needed, "quantity %d", tt.quantity)
		assert.Equal(t, tt.percent, next.DiscountPercent, "quantity %d", tt.quantity)
	}
}

func TestAppliedDiscountPercent(t *testing.T) {
	assert.Equal(t, 0.0, AppliedDiscountPercent(10))
	assert.Equal(t, 5.0, AppliedDiscountPercent(11))
	assert.Equal(t, 10.0, AppliedDiscountPercent(51))
}

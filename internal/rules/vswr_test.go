package rules

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeVSWR(t *testing.T) {
	tests := []struct {
		name      string
		power     float64
		reflected float64
		want      float64
	}{
		{"zero reflected is perfect match", 10000, 0, 1.0},
		{"quarter reflected", 100, 25, 3.0},
		{"small mismatch rounds to two decimals", 1000, 10, 1.22},
		{"typical reading", 10000, 40, 1.14},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComputeVSWR(tc.power, tc.reflected))
		})
	}
}

func TestComputeVSWRInfinite(t *testing.T) {
	assert.True(t, math.IsInf(ComputeVSWR(100, 100), 1))
	assert.True(t, math.IsInf(ComputeVSWR(100, 150), 1))
	// Zero forward power with any reflected reading is total mismatch.
	assert.True(t, math.IsInf(ComputeVSWR(0, 5), 1))
}

package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"zero left", []float64{0, 0}, []float64{1, 1}, 0},
		{"zero right", []float64{1, 1}, []float64{0, 0}, 0},
		{"length mismatch", []float64{1, 1}, []float64{1}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Cosine(tt.a, tt.b), 1e-9)
		})
	}
}

func TestCosine_Symmetric(t *testing.T) {
	a := []float64{0.3, 0.9, 0.1, 0.0}
	b := []float64{0.5, 0.2, 0.7, 0.4}
	assert.InDelta(t, Cosine(a, b), Cosine(b, a), 1e-12)
}

func TestSub(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{0.5, 2, 4}
	assert.Equal(t, []float64{0.5, 0, -1}, Sub(a, b))
	assert.Equal(t, []float64{1, 2, 3}, a)
}

func TestConcat(t *testing.T) {
	assert.Equal(t, []float64{1, 2, 3}, Concat([]float64{1}, nil, []float64{2, 3}))
	assert.Empty(t, Concat())
}

func TestSigmoid(t *testing.T) {
	assert.InDelta(t, 0.5, Sigmoid(0), 1e-12)
	assert.Greater(t, Sigmoid(5), 0.99)
	assert.Less(t, Sigmoid(-5), 0.01)
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.2))
	assert.Equal(t, 1.0, Clamp01(1.0000001))
	assert.Equal(t, 0.4, Clamp01(0.4))
}

func TestAllFinite(t *testing.T) {
	assert.True(t, AllFinite([]float64{0, 1, -1}))
	assert.False(t, AllFinite([]float64{0, math.NaN()}))
	assert.False(t, AllFinite([]float64{math.Inf(1)}))
}

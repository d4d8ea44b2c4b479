package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 2.5, Mean([]float64{1, 2, 3, 4}))
	assert.True(t, math.IsNaN(Mean(nil)))
}

func TestStdDev(t *testing.T) {
	assert.InDelta(t, math.Sqrt(32.0/7.0), StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-12)
	assert.Equal(t, 0.0, StdDev([]float64{3, 3, 3}))
	assert.True(t, math.IsNaN(StdDev([]float64{1})))
}

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	tests := []struct {
		q    float64
		want float64
	}{
		{q: 0, want: 1},
		{q: 0.25, want: 1.75},
		{q: 0.5, want: 2.5},
		{q: 0.75, want: 3.25},
		{q: 1, want: 4},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Quantile(sorted, tt.q), 1e-12, "q=%v", tt.q)
	}
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
}

func TestMedian(t *testing.T) {
	values := []float64{9, 1, 5}
	assert.Equal(t, 5.0, Median(values))
	assert.Equal(t, []float64{9, 1, 5}, values, "median must not reorder its input")
}

func TestPearson(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	assert.InDelta(t, 1.0, Pearson(xs, []float64{2, 4, 6, 8, 10}), 1e-12)
	assert.InDelta(t, -1.0, Pearson(xs, []float64{5, 4, 3, 2, 1}), 1e-12)
	assert.True(t, math.IsNaN(Pearson(xs, []float64{1, 1, 1, 1, 1})))
	assert.True(t, math.IsNaN(Pearson(xs, []float64{1, 2})))
	assert.True(t, math.IsNaN(Pearson([]float64{1}, []float64{1})))
}

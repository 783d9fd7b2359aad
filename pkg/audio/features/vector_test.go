package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanVector(t *testing.T) {
	t.Run("averages element-wise", func(t *testing.T) {
		mean := MeanVector([][]float64{
			{1, 2, 3},
			{3, 4, 5},
		})
		assert.Equal(t, []float64{2, 3, 4}, mean)
	})

	t.Run("single vector is its own mean", func(t *testing.T) {
		v := []float64{0.5, -0.25, 1}
		mean := MeanVector([][]float64{v})
		assert.Equal(t, v, mean)
	})

	t.Run("zero vectors pull the mean down", func(t *testing.T) {
		mean := MeanVector([][]float64{
			{3, 6},
			{0, 0},
			{0, 0},
		})
		assert.Equal(t, []float64{1, 2}, mean)
	})

	t.Run("empty set", func(t *testing.T) {
		assert.Nil(t, MeanVector(nil))
		assert.Nil(t, MeanVector([][]float64{}))
	})
}

func TestNormalize(t *testing.T) {
	t.Run("zero-means and unit-scales", func(t *testing.T) {
		v := []float64{1, 2, 3, 4}
		Normalize(v)

		sum := 0.0
		normSq := 0.0
		for _, x := range v {
			sum += x
			normSq += x * x
		}
		assert.InDelta(t, 0.0, sum, 1e-12)
		assert.InDelta(t, 1.0, math.Sqrt(normSq), 1e-12)
	})

	t.Run("constant vector becomes zero", func(t *testing.T) {
		v := []float64{5, 5, 5}
		Normalize(v)
		assert.Equal(t, []float64{0, 0, 0}, v)
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		v := []float64{0, 0, 0}
		Normalize(v)
		assert.Equal(t, []float64{0, 0, 0}, v)
	})

	t.Run("empty vector", func(t *testing.T) {
		assert.NotPanics(t, func() { Normalize(nil) })
	})
}

func TestCosine(t *testing.T) {
	t.Run("identical vectors", func(t *testing.T) {
		a := []float64{0.3, -0.7, 0.2}
		assert.InDelta(t, 1.0, Cosine(a, a), 1e-12)
	})

	t.Run("opposite vectors", func(t *testing.T) {
		a := []float64{1, 2, 3}
		b := []float64{-1, -2, -3}
		assert.InDelta(t, -1.0, Cosine(a, b), 1e-12)
	})

	t.Run("orthogonal vectors", func(t *testing.T) {
		a := []float64{1, 0}
		b := []float64{0, 1}
		assert.InDelta(t, 0.0, Cosine(a, b), 1e-12)
	})

	t.Run("zero vector scores zero", func(t *testing.T) {
		a := []float64{1, 2, 3}
		zero := []float64{0, 0, 0}
		assert.Zero(t, Cosine(a, zero))
		assert.Zero(t, Cosine(zero, zero))
	})

	t.Run("mismatched lengths score zero", func(t *testing.T) {
		assert.Zero(t, Cosine([]float64{1, 2}, []float64{1, 2, 3}))
		assert.Zero(t, Cosine(nil, []float64{1}))
	})

	t.Run("stays within bounds", func(t *testing.T) {
		a := []float64{1e-6, 2e-6, 3e-6}
		sim := Cosine(a, a)
		require.LessOrEqual(t, sim, 1.0)
		require.GreaterOrEqual(t, sim, -1.0)
	})
}

func TestNormalizedSelfSimilarity(t *testing.T) {
	// After normalization, a vector compared
	// against a template built from itself alone must score 1
	v := []float64{12.5, -3.1, 0.4, 7.7}
	template := MeanVector([][]float64{v})

	Normalize(v)
	Normalize(template)

	assert.InDelta(t, 1.0, Cosine(v, template), 1e-12)
}

package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResampleLinear(t *testing.T) {
	t.Run("same rate passes through", func(t *testing.T) {
		pcm := []float64{1, 2, 3}
		out := resampleLinear(pcm, 44100, 44100)
		assert.Equal(t, pcm, out)
	})

	t.Run("downsample halves the length", func(t *testing.T) {
		pcm := make([]float64, 1000)
		out := resampleLinear(pcm, 44100, 22050)
		assert.Len(t, out, 500)
	})

	t.Run("upsample doubles the length", func(t *testing.T) {
		pcm := make([]float64, 500)
		out := resampleLinear(pcm, 22050, 44100)
		assert.Len(t, out, 1000)
	})

	t.Run("constant signal stays constant", func(t *testing.T) {
		pcm := make([]float64, 300)
		for i := range pcm {
			pcm[i] = 0.5
		}

		out := resampleLinear(pcm, 48000, 22050)
		require.NotEmpty(t, out)
		for i, s := range out {
			assert.InDelta(t, 0.5, s, 1e-12, "sample %d", i)
		}
	})

	t.Run("linear ramp is preserved", func(t *testing.T) {
		pcm := make([]float64, 200)
		for i := range pcm {
			pcm[i] = float64(i)
		}

		out := resampleLinear(pcm, 200, 100)
		require.Len(t, out, 100)
		for i, s := range out {
			// Interpolating a line reproduces the line
			assert.InDelta(t, float64(i)*2, s, 1e-9, "sample %d", i)
		}
	})

	t.Run("degenerate inputs pass through", func(t *testing.T) {
		assert.Empty(t, resampleLinear(nil, 44100, 22050))
		assert.Equal(t, []float64{1}, resampleLinear([]float64{1}, 0, 22050))
		assert.Equal(t, []float64{1}, resampleLinear([]float64{1}, 44100, 0))
	})
}

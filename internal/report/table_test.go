package report

import (
	"strings"
	"testing"

	"github.com/RyanBlaney/jingle-scan/internal/analysis"
	"github.com/stretchr/testify/assert"
)

func sampleResult() *analysis.Result {
	params := analysis.DefaultParams()

	return &analysis.Result{
		Params:            params,
		SecondsMatched:    3.0,
		WindowsMatched:    6,
		PerWindowFraction: []float64{1, 1, 1, 1, 1, 1, 0},
		FilesAnalyzed:     3,
		FilesFailed:       1,
		FileTraces: []*analysis.FileTrace{
			{Path: "a.mp3", DurationSeconds: 120.5, Similarities: []float64{0.99, 0.98, 0.97, 0.99, 0.98, 0.96, 0.40}},
			{Path: "b.mp3", DurationSeconds: 118.2, Similarities: []float64{0.98, 0.97, 0.99, 0.98, 0.97, 0.95, 0.35}},
			{Path: "broken.mp3", DecodeError: "corrupt header", Similarities: []float64{0, 0, 0, 0, 0, 0, 0}},
		},
	}
}

func TestRendererSummary(t *testing.T) {
	result := sampleResult()
	metrics := analysis.NewMetricsCalculator(nil).Calculate(result)

	out := NewRenderer(3).Summary(result, metrics)

	assert.Contains(t, out, "Common intro scan: 3.0s matched (6 windows of 0.50s)")
	assert.Contains(t, out, "3 analyzed, 1 failed to decode")
	assert.Contains(t, out, "a.mp3")
	assert.Contains(t, out, "broken.mp3")
	assert.Contains(t, out, "decode failed")
	assert.NotContains(t, out, "No common segment found")
}

func TestRendererSummaryNoMatch(t *testing.T) {
	result := sampleResult()
	result.SecondsMatched = 0
	result.WindowsMatched = 0

	out := NewRenderer(3).Summary(result, nil)
	assert.Contains(t, out, "No common segment found")
}

func TestRendererFractions(t *testing.T) {
	renderer := NewRenderer(3)

	out := renderer.Fractions(sampleResult())
	assert.True(t, strings.HasPrefix(out, "per-window matched fraction:"))
	assert.Contains(t, out, "1.00")
	assert.Contains(t, out, "0.00")

	assert.Equal(t, "no windows evaluated", renderer.Fractions(&analysis.Result{}))
}

func TestNewRendererDefaultPrecision(t *testing.T) {
	renderer := NewRenderer(0)
	assert.Equal(t, 3, renderer.precision)
}

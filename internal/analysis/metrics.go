package analysis

import (
	"sort"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"gonum.org/v1/gonum/stat"
)

// MetricsCalculator derives summary statistics from a scan result
type MetricsCalculator struct {
	logger logging.Logger
}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator(logger logging.Logger) *MetricsCalculator {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	return &MetricsCalculator{
		logger: logger,
	}
}

// SimilarityStats represents statistical measures of similarity scores
type SimilarityStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
	Count  int     `json:"count"`
}

// FileStats aggregates one file's similarity trace
type FileStats struct {
	Path         string           `json:"path"`
	DecodeFailed bool             `json:"decode_failed"`
	Similarity   *SimilarityStats `json:"similarity"`
}

// ScanMetrics represents detailed analysis of a scan result
type ScanMetrics struct {
	PerFile []*FileStats `json:"per_file"`

	// Overall pools every evaluated window of every file
	Overall *SimilarityStats `json:"overall"`

	// MeanMatchedFraction averages the per-window matched fractions
	// over the windows actually evaluated
	MeanMatchedFraction float64 `json:"mean_matched_fraction"`
}

// Calculate computes scan metrics from an analysis result
func (m *MetricsCalculator) Calculate(result *Result) *ScanMetrics {
	metrics := &ScanMetrics{}

	var pooled []float64
	for _, trace := range result.FileTraces {
		fileStats := &FileStats{
			Path:         trace.Path,
			DecodeFailed: trace.DecodeError != "",
			Similarity:   calculateSimilarityStats(trace.Similarities),
		}
		metrics.PerFile = append(metrics.PerFile, fileStats)
		pooled = append(pooled, trace.Similarities...)
	}

	metrics.Overall = calculateSimilarityStats(pooled)

	if len(result.PerWindowFraction) > 0 {
		metrics.MeanMatchedFraction = stat.Mean(result.PerWindowFraction, nil)
	}

	m.logger.Debug("Calculated scan metrics", logging.Fields{
		"files":                 len(metrics.PerFile),
		"pooled_windows":        len(pooled),
		"mean_matched_fraction": metrics.MeanMatchedFraction,
	})

	return metrics
}

// calculateSimilarityStats computes statistics from a slice of scores
func calculateSimilarityStats(values []float64) *SimilarityStats {
	if len(values) == 0 {
		return &SimilarityStats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	stats := &SimilarityStats{
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Count:  len(sorted),
	}

	if len(sorted) > 1 {
		stats.StdDev = stat.StdDev(sorted, nil)
	}

	return stats
}

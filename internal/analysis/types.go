package analysis

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Side selects which edge of the audio the scan walks inward from.
type Side string

const (
	SideIntro Side = "intro"
	SideOutro Side = "outro"
)

// ParseSide converts a string to a Side
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(s) {
	case "intro", "start", "leading":
		return SideIntro, nil
	case "outro", "end", "trailing":
		return SideOutro, nil
	default:
		return "", fmt.Errorf("unsupported side: %s (expected intro or outro)", s)
	}
}

// Params contains the scan parameters for one analysis run
type Params struct {
	// Side selects the edge to analyze
	Side Side `json:"side" yaml:"side"`

	// MaxSeconds bounds the total span inspected from the chosen edge
	MaxSeconds float64 `json:"max_seconds" yaml:"max_seconds"`

	// WindowSeconds is the duration of each analysis window
	WindowSeconds float64 `json:"window_seconds" yaml:"window_seconds"`

	// SampleRate is applied uniformly to all files before feature
	// extraction, decoupling results from the source sample rate
	SampleRate int `json:"sample_rate" yaml:"sample_rate"`

	// MFCCCoefficients is the length of each window feature vector
	MFCCCoefficients int `json:"mfcc_coefficients" yaml:"mfcc_coefficients"`

	// SimilarityThreshold is the per-file cosine cutoff against the
	// window template to count as matching (0..1)
	SimilarityThreshold float64 `json:"similarity_threshold" yaml:"similarity_threshold"`

	// MinFilesFraction is the fraction of files that must match a window
	// for it to count toward the common span (0..1)
	MinFilesFraction float64 `json:"min_files_fraction" yaml:"min_files_fraction"`
}

// DefaultParams returns the scan parameters used when nothing is
// configured.
func DefaultParams() Params {
	return Params{
		Side:                SideIntro,
		MaxSeconds:          30.0,
		WindowSeconds:       0.5,
		SampleRate:          22050,
		MFCCCoefficients:    13,
		SimilarityThreshold: 0.90,
		MinFilesFraction:    1.0,
	}
}

// Validate validates the scan parameters
func (p *Params) Validate() error {
	if p.Side != SideIntro && p.Side != SideOutro {
		return fmt.Errorf("side must be intro or outro")
	}

	if p.MaxSeconds < 0 {
		return fmt.Errorf("max seconds cannot be negative")
	}

	if p.WindowSeconds <= 0 {
		return fmt.Errorf("window seconds must be positive")
	}

	if p.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive")
	}

	if p.MFCCCoefficients <= 0 {
		return fmt.Errorf("mfcc coefficients must be positive")
	}

	if p.SimilarityThreshold < 0 || p.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold must be between 0 and 1")
	}

	if p.MinFilesFraction < 0 || p.MinFilesFraction > 1 {
		return fmt.Errorf("min files fraction must be between 0 and 1")
	}

	return nil
}

// WindowCount returns how many whole windows fit in the scanned span.
func (p *Params) WindowCount() int {
	if p.WindowSeconds <= 0 {
		return 0
	}
	return int(math.Floor(p.MaxSeconds / p.WindowSeconds))
}

// WindowSamples returns the number of samples per window at the analysis
// rate.
func (p *Params) WindowSamples() int {
	return int(math.Round(p.WindowSeconds * float64(p.SampleRate)))
}

// FileTrace carries the per-file diagnostics for one scan: decode
// status and the similarity score for every window actually evaluated.
type FileTrace struct {
	Path            string    `json:"path"`
	DurationSeconds float64   `json:"duration_seconds"`
	DecodeError     string    `json:"decode_error,omitempty"`
	Similarities    []float64 `json:"similarities"`
}

// Result is the aggregate outcome of one scan. It is populated once per
// invocation and never mutated after return.
type Result struct {
	Params Params `json:"params"`

	// SecondsMatched is always WindowsMatched * WindowSeconds
	SecondsMatched float64 `json:"seconds_matched"`

	// WindowsMatched counts the leading windows whose matched fraction
	// stayed at or above MinFilesFraction
	WindowsMatched int `json:"windows_matched"`

	// PerWindowFraction holds one entry per window evaluated, ending at
	// the first failing window inclusive
	PerWindowFraction []float64 `json:"per_window_fraction"`

	FileTraces []*FileTrace `json:"file_traces"`

	FilesAnalyzed int `json:"files_analyzed"`
	FilesFailed   int `json:"files_failed"`

	Timestamp    time.Time     `json:"timestamp"`
	AnalysisTime time.Duration `json:"analysis_time"`
}

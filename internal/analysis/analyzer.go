package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/RyanBlaney/jingle-scan/pkg/audio/decode"
	"github.com/RyanBlaney/jingle-scan/pkg/audio/features"
	"github.com/RyanBlaney/latency-benchmark-common/logging"
)

// Loader decodes one audio file to mono PCM at the analysis rate.
type Loader interface {
	Load(ctx context.Context, path string) (*decode.Audio, error)
}

// WindowExtractor summarizes one window of mono PCM as a fixed-length
// feature vector. Short or empty windows must yield a zero vector, not
// an error.
type WindowExtractor interface {
	WindowVector(pcm []float64) []float64
}

// AnalyzerConfig contains configuration for the analyzer
type AnalyzerConfig struct {
	// Loader overrides file decoding (defaults to the ffmpeg-backed
	// loader at the params' sample rate)
	Loader Loader

	// Extractor overrides window feature extraction (defaults to MFCC
	// mean vectors built from the params)
	Extractor WindowExtractor

	Logger logging.Logger
}

// Analyzer measures how many leading (or trailing) windows a set of
// audio files share acoustically. It is stateless across calls and safe
// to invoke repeatedly; results are deterministic for identical inputs.
type Analyzer struct {
	loader    Loader
	extractor WindowExtractor
	logger    logging.Logger
}

// NewAnalyzer creates a new analyzer
func NewAnalyzer(cfg *AnalyzerConfig) *Analyzer {
	if cfg == nil {
		cfg = &AnalyzerConfig{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	return &Analyzer{
		loader:    cfg.Loader,
		extractor: cfg.Extractor,
		logger:    logger,
	}
}

// Analyze scans the given files from the chosen edge inward, one window
// at a time, and reports the contiguous span a sufficient fraction of
// them share. The scan stops at the first window below
// MinFilesFraction; later windows are never evaluated.
//
// Per-file decode failures never abort the batch: the file degrades to
// all-zero feature vectors, which generally fail the similarity
// threshold. Callers should treat WindowsMatched == 0 as "no common
// span found or analysis degraded".
func (a *Analyzer) Analyze(ctx context.Context, paths []string, params Params) (*Result, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("at least one input file is required")
	}

	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scan parameters: %w", err)
	}

	start := time.Now()

	loader := a.loader
	if loader == nil {
		loader = decode.NewFileLoader(&decode.Config{
			TargetSampleRate: params.SampleRate,
			Logger:           a.logger,
		})
	}

	extractor := a.extractor
	if extractor == nil {
		extractor = features.NewMFCCExtractor(params.SampleRate, params.MFCCCoefficients)
	}

	a.logger.Debug("Starting common segment scan", logging.Fields{
		"files":          len(paths),
		"side":           string(params.Side),
		"max_seconds":    params.MaxSeconds,
		"window_seconds": params.WindowSeconds,
		"sample_rate":    params.SampleRate,
	})

	result := &Result{
		Params:        params,
		FilesAnalyzed: len(paths),
		Timestamp:     start,
	}

	signals := make([][]float64, len(paths))
	result.FileTraces = make([]*FileTrace, len(paths))

	for i, path := range paths {
		trace := &FileTrace{Path: path}
		result.FileTraces[i] = trace

		audio, err := loader.Load(ctx, path)
		if err == nil && (audio == nil || len(audio.PCM) == 0) {
			err = fmt.Errorf("decoded audio is empty")
		}
		if err != nil {
			// Degrade to zero vectors for every window of this file
			trace.DecodeError = err.Error()
			result.FilesFailed++

			a.logger.Warn("Decode failed, file degrades to zero vectors", logging.Fields{
				"path":  path,
				"error": err.Error(),
			})
			continue
		}

		signals[i] = audio.PCM
		trace.DurationSeconds = audio.Duration.Seconds()
	}

	nWindows := params.WindowCount()
	winSamples := params.WindowSamples()
	fileCount := float64(len(paths))

	for w := 0; w < nWindows; w++ {
		vectors := make([][]float64, len(paths))
		for i := range signals {
			vectors[i] = extractor.WindowVector(windowSlice(signals[i], w, winSamples, params.Side))
		}

		template := features.MeanVector(vectors)
		features.Normalize(template)

		matched := 0
		for i, vec := range vectors {
			features.Normalize(vec)
			sim := features.Cosine(vec, template)
			result.FileTraces[i].Similarities = append(result.FileTraces[i].Similarities, sim)
			if sim >= params.SimilarityThreshold {
				matched++
			}
		}

		frac := float64(matched) / fileCount
		result.PerWindowFraction = append(result.PerWindowFraction, frac)

		// First failure terminates the scan; the common span is
		// contiguous by definition
		if frac < params.MinFilesFraction {
			break
		}
		result.WindowsMatched++
	}

	result.SecondsMatched = float64(result.WindowsMatched) * params.WindowSeconds
	result.AnalysisTime = time.Since(start)

	a.logger.Debug("Common segment scan completed", logging.Fields{
		"windows_evaluated": len(result.PerWindowFraction),
		"windows_matched":   result.WindowsMatched,
		"seconds_matched":   result.SecondsMatched,
		"files_failed":      result.FilesFailed,
		"analysis_time_ms":  result.AnalysisTime.Milliseconds(),
	})

	return result, nil
}

// windowSlice returns window w of pcm counted inward from the chosen
// edge. For SideOutro, window 0 is the final winSamples of the signal.
// Slices near the far edge may be shorter than winSamples; exhausted
// signals yield nil.
func windowSlice(pcm []float64, w, winSamples int, side Side) []float64 {
	if len(pcm) == 0 || winSamples <= 0 {
		return nil
	}

	if side == SideOutro {
		end := len(pcm) - w*winSamples
		if end <= 0 {
			return nil
		}
		start := end - winSamples
		if start < 0 {
			start = 0
		}
		return pcm[start:end]
	}

	start := w * winSamples
	if start >= len(pcm) {
		return nil
	}
	end := start + winSamples
	if end > len(pcm) {
		end = len(pcm)
	}
	return pcm[start:end]
}

package features

import (
	"math"
	"math/cmplx"

	"github.com/RyanBlaney/sonido-sonar/fingerprint/analyzers"
)

// Short-time analysis parameters for MFCC extraction. Windows shorter
// than fftWindowSize cannot be analyzed and degrade to zero vectors.
const (
	fftWindowSize = 1024
	fftHopSize    = 256
)

// Mel filterbank parameters, balanced for music and speech content.
const (
	melFilterCount = 26
	melLowHz       = 150.0
	melHighHz      = 6000.0
	melLogFloor    = 1e-10
)

// MFCCExtractor turns a slice of mono PCM into a single fixed-length
// MFCC mean vector. One extractor is valid for one sample rate and
// coefficient count; construction is cheap enough to do per analysis run.
//
// Frames are windowed and transformed one at a time through the spectral
// analyzer's FFT rather than its batched STFT: the batch path sizes its
// worker pool from the CPU count and can end up with zero workers on
// single-CPU hosts, silently returning empty magnitudes.
type MFCCExtractor struct {
	sampleRate   int
	coefficients int
	analyzer     *analyzers.SpectralAnalyzer
	windows      *analyzers.WindowGenerator
	melBank      [][]float64
}

// NewMFCCExtractor creates an extractor producing vectors of length
// coefficients from PCM sampled at sampleRate.
func NewMFCCExtractor(sampleRate, coefficients int) *MFCCExtractor {
	freqBins := fftWindowSize/2 + 1

	return &MFCCExtractor{
		sampleRate:   sampleRate,
		coefficients: coefficients,
		analyzer:     analyzers.NewSpectralAnalyzer(sampleRate),
		windows:      analyzers.NewWindowGenerator(),
		melBank:      melFilterBank(melFilterCount, melLowHz, melHighHz, freqBins, sampleRate),
	}
}

// Coefficients returns the length of the vectors produced by WindowVector.
func (e *MFCCExtractor) Coefficients() int {
	return e.coefficients
}

// WindowVector computes the MFCC mean vector for one analysis window of
// mono PCM. Empty, too-short, or unanalyzable windows return an all-zero
// vector rather than an error; the caller's similarity threshold is
// expected to reject them.
func (e *MFCCExtractor) WindowVector(pcm []float64) []float64 {
	vec := make([]float64, e.coefficients)
	if len(pcm) < fftWindowSize {
		return vec
	}

	window, err := e.windows.Generate(&analyzers.WindowConfig{
		Type:      analyzers.WindowHann,
		Size:      fftWindowSize,
		Normalize: true,
		Symmetric: true,
	})
	if err != nil {
		return vec
	}

	freqBins := fftWindowSize/2 + 1
	numFrames := (len(pcm)-fftWindowSize)/fftHopSize + 1

	frame := make([]float64, fftWindowSize)
	magnitude := make([]float64, freqBins)
	frames := 0

	for f := range numFrames {
		start := f * fftHopSize
		copy(frame, pcm[start:start+fftWindowSize])
		if err := window.ApplyInPlace(frame); err != nil {
			continue
		}

		spectrum := e.analyzer.FFT(frame)
		if len(spectrum) < freqBins {
			continue
		}
		for i := range magnitude {
			magnitude[i] = cmplx.Abs(spectrum[i])
		}

		coeffs := e.mfccFromMagnitude(magnitude)
		for i := range vec {
			vec[i] += coeffs[i]
		}
		frames++
	}
	if frames == 0 {
		return vec
	}

	inv := 1 / float64(frames)
	for i := range vec {
		vec[i] *= inv
	}

	return vec
}

// mfccFromMagnitude maps one magnitude spectrum to MFCC coefficients:
// mel filterbank, log compression, then DCT-II.
func (e *MFCCExtractor) mfccFromMagnitude(magnitude []float64) []float64 {
	melSpectrum := make([]float64, len(e.melBank))
	for i, filter := range e.melBank {
		sum := 0.0
		for j, coeff := range filter {
			if j < len(magnitude) {
				sum += magnitude[j] * coeff
			}
		}
		melSpectrum[i] = sum
	}

	logMel := make([]float64, len(melSpectrum))
	for i, val := range melSpectrum {
		if val > melLogFloor {
			logMel[i] = math.Log(val)
		} else {
			logMel[i] = math.Log(melLogFloor)
		}
	}

	mfcc := make([]float64, e.coefficients)
	n := float64(len(logMel))
	for k := range e.coefficients {
		sum := 0.0
		for i, val := range logMel {
			sum += val * math.Cos(math.Pi*float64(k)*(float64(i)+0.5)/n)
		}
		mfcc[k] = sum
	}

	return mfcc
}

// melFilterBank builds triangular mel-spaced filters over freqBins
// linear frequency bins. The top of the bank is clamped to Nyquist for
// low sample rates.
func melFilterBank(numFilters int, lowHz, highHz float64, freqBins, sampleRate int) [][]float64 {
	if nyquist := float64(sampleRate) / 2; highHz > nyquist {
		highHz = nyquist
	}

	lowMel := hzToMel(lowHz)
	highMel := hzToMel(highHz)

	melPoints := make([]float64, numFilters+2)
	melStep := (highMel - lowMel) / float64(numFilters+1)
	for i := range melPoints {
		melPoints[i] = lowMel + float64(i)*melStep
	}

	freqPoints := make([]float64, len(melPoints))
	for i, mel := range melPoints {
		freqPoints[i] = melToHz(mel)
	}

	filterBank := make([][]float64, numFilters)
	for i := range numFilters {
		filter := make([]float64, freqBins)
		left := freqPoints[i]
		center := freqPoints[i+1]
		right := freqPoints[i+2]

		for j := range freqBins {
			freq := float64(j) * float64(sampleRate) / float64(freqBins*2)
			if freq < left || freq > right {
				continue
			}
			if freq <= center {
				if center > left {
					filter[j] = (freq - left) / (center - left)
				}
			} else if right > center {
				filter[j] = (right - freq) / (right - center)
			}
		}
		filterBank[i] = filter
	}

	return filterBank
}

func hzToMel(hz float64) float64 {
	return 2595.0 * math.Log10(1.0+hz/700.0)
}

func melToHz(mel float64) float64 {
	return 700.0 * (math.Pow(10, mel/2595.0) - 1.0)
}

package decode

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"github.com/RyanBlaney/latency-benchmark-common/stream/common"
	"github.com/RyanBlaney/sonido-sonar/transcode"
)

// Audio holds one decoded file as mono PCM at the loader's target rate.
type Audio struct {
	Path       string        `json:"path"`
	PCM        []float64     `json:"-"`
	SampleRate int           `json:"sample_rate"`
	Duration   time.Duration `json:"duration"`
}

// Config contains configuration for the file loader
type Config struct {
	// TargetSampleRate is the uniform rate all files are resampled to.
	// Decoupling features from the source rate keeps results comparable
	// across files with mixed provenance.
	TargetSampleRate int

	// ContentType hints the decoder ("music", "news", ...)
	ContentType string

	Logger logging.Logger
}

// FileLoader decodes local audio files through the ffmpeg-backed
// normalizing decoder and resamples them to a single analysis rate.
type FileLoader struct {
	targetRate  int
	contentType string
	logger      logging.Logger
}

// NewFileLoader creates a new file loader
func NewFileLoader(cfg *Config) *FileLoader {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	contentType := cfg.ContentType
	if contentType == "" {
		contentType = "music"
	}

	return &FileLoader{
		targetRate:  cfg.TargetSampleRate,
		contentType: contentType,
		logger:      logger,
	}
}

// ContentType returns the decoder content hint in effect.
func (l *FileLoader) ContentType() string {
	return l.contentType
}

// TargetSampleRate returns the rate decoded audio is resampled to; zero
// means the source rate is kept.
func (l *FileLoader) TargetSampleRate() int {
	return l.targetRate
}

// Load decodes a single local file to mono PCM at the target sample rate.
// An empty decoded signal is reported as an error so callers can treat it
// like any other decode failure.
func (l *FileLoader) Load(ctx context.Context, path string) (*Audio, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleanPath := strings.TrimPrefix(path, "file://")

	decoder := transcode.NewNormalizingDecoder(l.contentType)
	anyData, err := decoder.DecodeFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio file: %w", err)
	}

	audioData := common.ConvertToAudioData(anyData)
	if audioData == nil {
		return nil, fmt.Errorf("decoder returned unexpected type: %T", anyData)
	}

	if len(audioData.PCM) == 0 {
		return nil, fmt.Errorf("decoded audio is empty: %s", cleanPath)
	}

	pcm := audioData.PCM
	if l.targetRate > 0 && audioData.SampleRate != l.targetRate {
		pcm = resampleLinear(pcm, audioData.SampleRate, l.targetRate)
	}

	rate := l.targetRate
	if rate <= 0 {
		rate = audioData.SampleRate
	}

	audio := &Audio{
		Path:       path,
		PCM:        pcm,
		SampleRate: rate,
		Duration:   time.Duration(float64(len(pcm)) / float64(rate) * float64(time.Second)),
	}

	l.logger.Debug("Decoded audio file", logging.Fields{
		"path":         path,
		"source_rate":  audioData.SampleRate,
		"target_rate":  rate,
		"samples":      len(pcm),
		"duration_s":   audio.Duration.Seconds(),
		"source_ch":    audioData.Channels,
		"content_hint": l.contentType,
	})

	return audio, nil
}

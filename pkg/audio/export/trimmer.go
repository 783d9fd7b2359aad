package export

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
)

// Trimmer writes trimmed copies of audio files by re-encoding through
// ffmpeg. Sources are never modified.
type Trimmer struct {
	ffmpegPath string
	logger     logging.Logger
}

// TrimmerConfig contains configuration for the trimmer
type TrimmerConfig struct {
	// FFmpegPath overrides the ffmpeg binary to invoke (default "ffmpeg",
	// resolved via PATH)
	FFmpegPath string

	Logger logging.Logger
}

// TrimRequest describes one trimmed copy to write.
type TrimRequest struct {
	SourcePath string
	OutputPath string

	// SkipSeconds is cut from the start of the file.
	SkipSeconds float64

	// KeepSeconds bounds the output duration after the skip. Zero means
	// keep everything to the end of the file.
	KeepSeconds float64
}

// NewTrimmer creates a new trimmer
func NewTrimmer(cfg *TrimmerConfig) *Trimmer {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	ffmpegPath := cfg.FFmpegPath
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}

	return &Trimmer{
		ffmpegPath: ffmpegPath,
		logger:     logger,
	}
}

// TrimFile writes the trimmed copy described by req. The output directory
// is created if needed.
func (t *Trimmer) TrimFile(ctx context.Context, req *TrimRequest) error {
	if req.SourcePath == "" || req.OutputPath == "" {
		return fmt.Errorf("trim request requires source and output paths")
	}
	if req.SkipSeconds < 0 || req.KeepSeconds < 0 {
		return fmt.Errorf("trim bounds cannot be negative")
	}

	if err := os.MkdirAll(filepath.Dir(req.OutputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	args := buildTrimArgs(req)
	cmd := exec.CommandContext(ctx, t.ffmpegPath, args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w\nOutput: %s", err, string(output))
	}

	t.logger.Debug("Wrote trimmed copy", logging.Fields{
		"source":       req.SourcePath,
		"output":       req.OutputPath,
		"skip_seconds": req.SkipSeconds,
		"keep_seconds": req.KeepSeconds,
	})

	return nil
}

// buildTrimArgs assembles the ffmpeg invocation for a trim request. The
// seek is placed after -i for sample-accurate cuts.
func buildTrimArgs(req *TrimRequest) []string {
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", req.SourcePath,
	}

	if req.SkipSeconds > 0 {
		args = append(args, "-ss", formatSeconds(req.SkipSeconds))
	}
	if req.KeepSeconds > 0 {
		args = append(args, "-t", formatSeconds(req.KeepSeconds))
	}

	args = append(args, "-y", req.OutputPath)
	return args
}

// formatSeconds renders a seconds value the way ffmpeg expects, with
// millisecond precision and no exponent notation.
func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}

// OutputName maps a source file to its trimmed copy inside outDir,
// keeping the original extension so ffmpeg re-encodes to the same
// container.
func OutputName(sourcePath, outDir string) string {
	base := filepath.Base(sourcePath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return filepath.Join(outDir, name+"_trimmed"+ext)
}

package configs

import (
	"github.com/spf13/viper"
)

// SetDefaults sets default configuration values for all components
func SetDefaults(v *viper.Viper) {
	// Application defaults
	if !v.IsSet("verbose") {
		v.Set("verbose", false)
	}
	if !v.IsSet("log_level") {
		v.Set("log_level", "info")
	}
	if !v.IsSet("output_format") {
		v.Set("output_format", "table")
	}

	// Scan defaults
	if !v.IsSet("analysis.side") {
		v.Set("analysis.side", "intro")
	}
	if !v.IsSet("analysis.max_seconds") {
		v.Set("analysis.max_seconds", 30.0)
	}
	if !v.IsSet("analysis.window_seconds") {
		v.Set("analysis.window_seconds", 0.5)
	}
	if !v.IsSet("analysis.similarity_threshold") {
		v.Set("analysis.similarity_threshold", 0.90)
	}
	if !v.IsSet("analysis.min_files_fraction") {
		v.Set("analysis.min_files_fraction", 1.0)
	}

	// Audio defaults
	if !v.IsSet("audio.sample_rate") {
		v.Set("audio.sample_rate", 22050)
	}
	if !v.IsSet("audio.mfcc_coefficients") {
		v.Set("audio.mfcc_coefficients", 13)
	}
	if !v.IsSet("audio.content_type") {
		v.Set("audio.content_type", "music")
	}

	// Trim defaults
	if !v.IsSet("trim.output_dir") {
		v.Set("trim.output_dir", "trimmed")
	}
	if !v.IsSet("trim.min_seconds") {
		v.Set("trim.min_seconds", 0.5)
	}
	if !v.IsSet("trim.ffmpeg_path") {
		v.Set("trim.ffmpeg_path", "ffmpeg")
	}

	// Output defaults
	if !v.IsSet("output.precision") {
		v.Set("output.precision", 3)
	}
	if !v.IsSet("output.include_traces") {
		v.Set("output.include_traces", false)
	}
	if !v.IsSet("output.trace_file") {
		v.Set("output.trace_file", "")
	}
}

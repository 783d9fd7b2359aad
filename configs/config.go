package configs

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose      bool   `mapstructure:"verbose"`
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output_format"`

	// Scan configuration
	Analysis AnalysisConfig `mapstructure:"analysis"`

	// Audio processing configuration
	Audio AudioConfig `mapstructure:"audio"`

	// Trim configuration
	Trim TrimConfig `mapstructure:"trim"`

	// Output configuration
	Output OutputConfig `mapstructure:"output"`
}

// AnalysisConfig contains common-segment scan settings
type AnalysisConfig struct {
	Side                string  `mapstructure:"side"`
	MaxSeconds          float64 `mapstructure:"max_seconds"`
	WindowSeconds       float64 `mapstructure:"window_seconds"`
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
	MinFilesFraction    float64 `mapstructure:"min_files_fraction"`
}

// AudioConfig contains audio processing settings
type AudioConfig struct {
	SampleRate       int    `mapstructure:"sample_rate"`
	MFCCCoefficients int    `mapstructure:"mfcc_coefficients"`
	ContentType      string `mapstructure:"content_type"`
}

// TrimConfig contains trimmed-copy output settings
type TrimConfig struct {
	OutputDir  string  `mapstructure:"output_dir"`
	MinSeconds float64 `mapstructure:"min_seconds"`
	FFmpegPath string  `mapstructure:"ffmpeg_path"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Precision     int    `mapstructure:"precision"`
	IncludeTraces bool   `mapstructure:"include_traces"`
	TraceFile     string `mapstructure:"trace_file"`
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	config := &Config{}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if config.Analysis.Side != "intro" && config.Analysis.Side != "outro" {
		return fmt.Errorf("analysis side must be intro or outro")
	}

	if config.Analysis.MaxSeconds < 0 {
		return fmt.Errorf("analysis max seconds cannot be negative")
	}

	if config.Analysis.WindowSeconds <= 0 {
		return fmt.Errorf("analysis window seconds must be positive")
	}

	if config.Analysis.SimilarityThreshold < 0 || config.Analysis.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold must be between 0 and 1")
	}

	if config.Analysis.MinFilesFraction < 0 || config.Analysis.MinFilesFraction > 1 {
		return fmt.Errorf("min files fraction must be between 0 and 1")
	}

	if config.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio sample rate must be positive")
	}

	if config.Audio.MFCCCoefficients <= 0 {
		return fmt.Errorf("audio mfcc coefficients must be positive")
	}

	if config.Trim.MinSeconds < 0 {
		return fmt.Errorf("trim min seconds cannot be negative")
	}

	return nil
}

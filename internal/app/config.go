package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/RyanBlaney/jingle-scan/configs"
	"gopkg.in/yaml.v3"
)

// Profile is an optional per-collection parameter file (e.g. one per
// podcast feed or card series) layered over the base configuration.
// Only the fields present in the file are applied.
type Profile struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`

	Analysis *ProfileAnalysis `json:"analysis" yaml:"analysis"`
	Audio    *ProfileAudio    `json:"audio" yaml:"audio"`
	Trim     *ProfileTrim     `json:"trim" yaml:"trim"`
}

// ProfileAnalysis overrides scan settings
type ProfileAnalysis struct {
	Side                *string  `json:"side" yaml:"side"`
	MaxSeconds          *float64 `json:"max_seconds" yaml:"max_seconds"`
	WindowSeconds       *float64 `json:"window_seconds" yaml:"window_seconds"`
	SimilarityThreshold *float64 `json:"similarity_threshold" yaml:"similarity_threshold"`
	MinFilesFraction    *float64 `json:"min_files_fraction" yaml:"min_files_fraction"`
}

// ProfileAudio overrides audio processing settings
type ProfileAudio struct {
	SampleRate       *int    `json:"sample_rate" yaml:"sample_rate"`
	MFCCCoefficients *int    `json:"mfcc_coefficients" yaml:"mfcc_coefficients"`
	ContentType      *string `json:"content_type" yaml:"content_type"`
}

// ProfileTrim overrides trim settings
type ProfileTrim struct {
	OutputDir  *string  `json:"output_dir" yaml:"output_dir"`
	MinSeconds *float64 `json:"min_seconds" yaml:"min_seconds"`
}

// loadProfileFromFile loads a profile from a YAML or JSON file
func loadProfileFromFile(filePath string) (*Profile, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("profile file does not exist: %s", filePath)
	}

	ext := filepath.Ext(filePath)
	switch ext {
	case ".yaml", ".yml":
		return loadProfileFromYAML(filePath)
	case ".json":
		return loadProfileFromJSON(filePath)
	default:
		// Try YAML first, then JSON
		if profile, err := loadProfileFromYAML(filePath); err == nil {
			return profile, nil
		}
		return loadProfileFromJSON(filePath)
	}
}

// loadProfileFromYAML loads a profile from a YAML file
func loadProfileFromYAML(filePath string) (*Profile, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML profile file: %w", err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML profile: %w", err)
	}

	return &profile, nil
}

// loadProfileFromJSON loads a profile from a JSON file
func loadProfileFromJSON(filePath string) (*Profile, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON profile file: %w", err)
	}

	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse JSON profile: %w", err)
	}

	return &profile, nil
}

// mergeProfile applies the fields present in the profile over config
func mergeProfile(config *configs.Config, profile *Profile) {
	if profile == nil {
		return
	}

	if a := profile.Analysis; a != nil {
		if a.Side != nil {
			config.Analysis.Side = *a.Side
		}
		if a.MaxSeconds != nil {
			config.Analysis.MaxSeconds = *a.MaxSeconds
		}
		if a.WindowSeconds != nil {
			config.Analysis.WindowSeconds = *a.WindowSeconds
		}
		if a.SimilarityThreshold != nil {
			config.Analysis.SimilarityThreshold = *a.SimilarityThreshold
		}
		if a.MinFilesFraction != nil {
			config.Analysis.MinFilesFraction = *a.MinFilesFraction
		}
	}

	if a := profile.Audio; a != nil {
		if a.SampleRate != nil {
			config.Audio.SampleRate = *a.SampleRate
		}
		if a.MFCCCoefficients != nil {
			config.Audio.MFCCCoefficients = *a.MFCCCoefficients
		}
		if a.ContentType != nil {
			config.Audio.ContentType = *a.ContentType
		}
	}

	if t := profile.Trim; t != nil {
		if t.OutputDir != nil {
			config.Trim.OutputDir = *t.OutputDir
		}
		if t.MinSeconds != nil {
			config.Trim.MinSeconds = *t.MinSeconds
		}
	}
}

package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/RyanBlaney/jingle-scan/configs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *configs.Config {
	return &configs.Config{
		Analysis: configs.AnalysisConfig{
			Side:                "intro",
			MaxSeconds:          30,
			WindowSeconds:       0.5,
			SimilarityThreshold: 0.9,
			MinFilesFraction:    1.0,
		},
		Audio: configs.AudioConfig{
			SampleRate:       22050,
			MFCCCoefficients: 13,
			ContentType:      "music",
		},
		Trim: configs.TrimConfig{
			OutputDir:  "trimmed",
			MinSeconds: 0.5,
			FFmpegPath: "ffmpeg",
		},
	}
}

func writeTempProfile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadProfileFromYAML(t *testing.T) {
	path := writeTempProfile(t, "series.yaml", `
name: night-time-stories
description: Longer sponsor tag on this feed
analysis:
  side: outro
  max_seconds: 45
  similarity_threshold: 0.85
trim:
  min_seconds: 2
`)

	profile, err := loadProfileFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "night-time-stories", profile.Name)
	require.NotNil(t, profile.Analysis)
	assert.Equal(t, "outro", *profile.Analysis.Side)
	assert.InDelta(t, 45.0, *profile.Analysis.MaxSeconds, 1e-9)
	assert.InDelta(t, 0.85, *profile.Analysis.SimilarityThreshold, 1e-9)
	// Absent fields stay nil so they do not override the base config
	assert.Nil(t, profile.Analysis.WindowSeconds)
	assert.Nil(t, profile.Audio)
	require.NotNil(t, profile.Trim)
	assert.InDelta(t, 2.0, *profile.Trim.MinSeconds, 1e-9)
}

func TestLoadProfileFromJSON(t *testing.T) {
	path := writeTempProfile(t, "series.json",
		`{"name": "mini-adventures", "audio": {"sample_rate": 16000}}`)

	profile, err := loadProfileFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "mini-adventures", profile.Name)
	require.NotNil(t, profile.Audio)
	assert.Equal(t, 16000, *profile.Audio.SampleRate)
	assert.Nil(t, profile.Analysis)
}

func TestLoadProfileUnknownExtension(t *testing.T) {
	// Extension sniffing falls back to trying YAML then JSON
	path := writeTempProfile(t, "series.profile", "name: fallback\n")

	profile, err := loadProfileFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fallback", profile.Name)
}

func TestLoadProfileMissingFile(t *testing.T) {
	_, err := loadProfileFromFile("/nonexistent/profile.yaml")
	assert.Error(t, err)
}

func TestMergeProfile(t *testing.T) {
	t.Run("nil profile leaves config untouched", func(t *testing.T) {
		config := baseConfig()
		mergeProfile(config, nil)
		assert.Equal(t, baseConfig(), config)
	})

	t.Run("only present fields override", func(t *testing.T) {
		config := baseConfig()

		side := "outro"
		threshold := 0.8
		rate := 16000

		mergeProfile(config, &Profile{
			Analysis: &ProfileAnalysis{
				Side:                &side,
				SimilarityThreshold: &threshold,
			},
			Audio: &ProfileAudio{
				SampleRate: &rate,
			},
		})

		assert.Equal(t, "outro", config.Analysis.Side)
		assert.InDelta(t, 0.8, config.Analysis.SimilarityThreshold, 1e-9)
		assert.Equal(t, 16000, config.Audio.SampleRate)

		// Everything the profile omitted keeps its base value
		assert.InDelta(t, 30.0, config.Analysis.MaxSeconds, 1e-9)
		assert.InDelta(t, 0.5, config.Analysis.WindowSeconds, 1e-9)
		assert.Equal(t, 13, config.Audio.MFCCCoefficients)
		assert.Equal(t, "trimmed", config.Trim.OutputDir)
	})

	t.Run("trim overrides", func(t *testing.T) {
		config := baseConfig()

		outDir := "clean"
		minSecs := 2.5
		mergeProfile(config, &Profile{
			Trim: &ProfileTrim{
				OutputDir:  &outDir,
				MinSeconds: &minSecs,
			},
		})

		assert.Equal(t, "clean", config.Trim.OutputDir)
		assert.InDelta(t, 2.5, config.Trim.MinSeconds, 1e-9)
	})
}

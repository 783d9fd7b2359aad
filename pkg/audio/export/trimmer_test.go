package export

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTrimArgs(t *testing.T) {
	t.Run("intro trim skips the matched head", func(t *testing.T) {
		args := buildTrimArgs(&TrimRequest{
			SourcePath:  "in.mp3",
			OutputPath:  "out.mp3",
			SkipSeconds: 3.5,
		})
		assert.Equal(t, []string{
			"-hide_banner", "-loglevel", "error",
			"-i", "in.mp3",
			"-ss", "3.500",
			"-y", "out.mp3",
		}, args)
	})

	t.Run("outro trim bounds the kept duration", func(t *testing.T) {
		args := buildTrimArgs(&TrimRequest{
			SourcePath:  "in.mp3",
			OutputPath:  "out.mp3",
			KeepSeconds: 57.25,
		})
		assert.Equal(t, []string{
			"-hide_banner", "-loglevel", "error",
			"-i", "in.mp3",
			"-t", "57.250",
			"-y", "out.mp3",
		}, args)
	})

	t.Run("both bounds", func(t *testing.T) {
		args := buildTrimArgs(&TrimRequest{
			SourcePath:  "in.mp3",
			OutputPath:  "out.mp3",
			SkipSeconds: 1,
			KeepSeconds: 10,
		})
		assert.Contains(t, args, "-ss")
		assert.Contains(t, args, "-t")
	})

	t.Run("no bounds is a plain copy", func(t *testing.T) {
		args := buildTrimArgs(&TrimRequest{
			SourcePath: "in.mp3",
			OutputPath: "out.mp3",
		})
		assert.NotContains(t, args, "-ss")
		assert.NotContains(t, args, "-t")
	})
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "0.000", formatSeconds(0))
	assert.Equal(t, "3.500", formatSeconds(3.5))
	assert.Equal(t, "0.001", formatSeconds(0.001))
	// No exponent notation, even for large values
	assert.Equal(t, "86400.000", formatSeconds(86400))
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, filepath.Join("trimmed", "episode-01_trimmed.mp3"),
		OutputName("/media/cards/episode-01.mp3", "trimmed"))
	assert.Equal(t, filepath.Join("out", "track_trimmed.m4a"),
		OutputName("track.m4a", "out"))
	assert.Equal(t, filepath.Join("out", "noext_trimmed"),
		OutputName("noext", "out"))
}

func TestTrimFileValidation(t *testing.T) {
	trimmer := NewTrimmer(&TrimmerConfig{})

	t.Run("missing paths", func(t *testing.T) {
		err := trimmer.TrimFile(context.Background(), &TrimRequest{SourcePath: "in.mp3"})
		require.Error(t, err)

		err = trimmer.TrimFile(context.Background(), &TrimRequest{OutputPath: "out.mp3"})
		require.Error(t, err)
	})

	t.Run("negative bounds", func(t *testing.T) {
		err := trimmer.TrimFile(context.Background(), &TrimRequest{
			SourcePath:  "in.mp3",
			OutputPath:  "out.mp3",
			SkipSeconds: -1,
		})
		require.Error(t, err)
	})
}

func TestTrimFileRunsFFmpeg(t *testing.T) {
	// Stand in for ffmpeg with a binary that accepts any arguments
	trimmer := NewTrimmer(&TrimmerConfig{FFmpegPath: "true"})

	out := filepath.Join(t.TempDir(), "copies", "out.mp3")
	err := trimmer.TrimFile(context.Background(), &TrimRequest{
		SourcePath:  "in.mp3",
		OutputPath:  out,
		SkipSeconds: 2,
	})
	require.NoError(t, err)

	// The output directory was created for ffmpeg
	assert.DirExists(t, filepath.Dir(out))
}

func TestTrimFileReportsFailure(t *testing.T) {
	trimmer := NewTrimmer(&TrimmerConfig{FFmpegPath: "false"})

	err := trimmer.TrimFile(context.Background(), &TrimRequest{
		SourcePath: "in.mp3",
		OutputPath: filepath.Join(t.TempDir(), "out.mp3"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ffmpeg failed")
}

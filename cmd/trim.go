package cmd

import (
	"context"
	"time"

	"github.com/RyanBlaney/jingle-scan/internal/app"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	trimProfile     string
	trimSide        string
	trimMaxSeconds  float64
	trimWindowSecs  float64
	trimThreshold   float64
	trimMinFraction float64
	trimSampleRate  int
	trimOutDir      string
	trimMinSeconds  float64
	trimFFmpegPath  string
	trimQuiet       bool
	trimTimeout     time.Duration
)

// trimCmd analyzes a file set and writes trimmed copies without the shared segment
var trimCmd = &cobra.Command{
	Use:   "trim [files...]",
	Short: "Analyze a file set and write copies with the shared segment removed",
	Long: `Trim runs the same scan as analyze, then writes a copy of each file
with the matched intro or outro cut off. Source files are never modified;
trimmed copies land in the output directory with a _trimmed suffix.

Files whose matched duration falls below --min-seconds are skipped, as are
files that failed to decode during analysis.

Examples:
  # Remove a shared intro from every episode, copies go to ./trimmed
  jingle-scan trim episodes/*.mp3

  # Remove a shared outro, only when at least 2 seconds matched
  jingle-scan trim --side outro --min-seconds 2 --out-dir clean/ shows/*.m4a`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTrim,
}

func init() {
	rootCmd.AddCommand(trimCmd)

	trimCmd.Flags().StringVar(&trimProfile, "profile", "",
		"analysis profile file (YAML or JSON)")
	trimCmd.Flags().StringVar(&trimSide, "side", "intro",
		"edge to scan from (intro, outro)")
	trimCmd.Flags().Float64Var(&trimMaxSeconds, "max-seconds", 30,
		"maximum duration to scan from the edge")
	trimCmd.Flags().Float64Var(&trimWindowSecs, "window-seconds", 0.5,
		"duration of each analysis window")
	trimCmd.Flags().Float64VarP(&trimThreshold, "threshold", "t", 0.9,
		"cosine similarity threshold for a file to match a window")
	trimCmd.Flags().Float64Var(&trimMinFraction, "min-fraction", 1.0,
		"fraction of files that must match for a window to count")
	trimCmd.Flags().IntVar(&trimSampleRate, "sample-rate", 22050,
		"sample rate to resample decoded audio to")
	trimCmd.Flags().StringVar(&trimOutDir, "out-dir", "trimmed",
		"directory for trimmed copies")
	trimCmd.Flags().Float64Var(&trimMinSeconds, "min-seconds", 0.5,
		"skip trimming when the matched duration is below this")
	trimCmd.Flags().StringVar(&trimFFmpegPath, "ffmpeg-path", "ffmpeg",
		"path to the ffmpeg binary")
	trimCmd.Flags().BoolVarP(&trimQuiet, "quiet", "q", false,
		"suppress the summary table")
	trimCmd.Flags().DurationVar(&trimTimeout, "timeout", 15*time.Minute,
		"overall timeout for analysis and trimming")
}

func runTrim(cmd *cobra.Command, args []string) error {
	applyTrimOverrides(cmd)

	appCtx := &app.Context{
		ProfileFile:  trimProfile,
		OutputFormat: viper.GetString("output_format"),
		OutputDir:    trimOutDir,
		Verbose:      viper.GetBool("verbose"),
		Quiet:        trimQuiet,
	}

	scanApp, err := app.NewScanApp(appCtx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), trimTimeout)
	defer cancel()

	return scanApp.RunTrim(ctx, args)
}

func applyTrimOverrides(cmd *cobra.Command) {
	if cmd.Flags().Changed("side") {
		viper.Set("analysis.side", trimSide)
	}
	if cmd.Flags().Changed("max-seconds") {
		viper.Set("analysis.max_seconds", trimMaxSeconds)
	}
	if cmd.Flags().Changed("window-seconds") {
		viper.Set("analysis.window_seconds", trimWindowSecs)
	}
	if cmd.Flags().Changed("threshold") {
		viper.Set("analysis.similarity_threshold", trimThreshold)
	}
	if cmd.Flags().Changed("min-fraction") {
		viper.Set("analysis.min_files_fraction", trimMinFraction)
	}
	if cmd.Flags().Changed("sample-rate") {
		viper.Set("audio.sample_rate", trimSampleRate)
	}
	if cmd.Flags().Changed("out-dir") {
		viper.Set("trim.output_dir", trimOutDir)
	}
	if cmd.Flags().Changed("min-seconds") {
		viper.Set("trim.min_seconds", trimMinSeconds)
	}
	if cmd.Flags().Changed("ffmpeg-path") {
		viper.Set("trim.ffmpeg_path", trimFFmpegPath)
	}
}

package cmd

import (
	"context"
	"time"

	"github.com/RyanBlaney/jingle-scan/internal/app"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	analyzeProfile     string
	analyzeSide        string
	analyzeMaxSeconds  float64
	analyzeWindowSecs  float64
	analyzeThreshold   float64
	analyzeMinFraction float64
	analyzeSampleRate  int
	analyzeMFCC        int
	analyzeContentType string
	analyzeOutputFile  string
	analyzeTraceFile   string
	analyzeDetailed    bool
	analyzeQuiet       bool
	analyzeTimeout     time.Duration
)

// analyzeCmd measures the shared intro or outro across a set of audio files
var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Measure the shared intro or outro across a set of audio files",
	Long: `Analyze decodes each input file, extracts MFCC feature vectors over
fixed-duration windows from the chosen edge, and scans window by window
until the files stop agreeing. The result is the duration of audio the
set has in common - the jingle, sponsor tag, or series intro.

Examples:
  # Scan the first 30 seconds of an album's tracks for a shared intro
  jingle-scan analyze ~/rips/series-one/*.mp3

  # Look for a shared outro instead, with a stricter threshold
  jingle-scan analyze --side outro --threshold 0.95 episodes/*.m4a

  # Accept a window when 2 of 3 files agree, and save the full traces
  jingle-scan analyze --min-fraction 0.66 --trace-file traces.json a.mp3 b.mp3 c.mp3

  # Machine-readable output for scripting
  jingle-scan analyze -o json --output-file result.json tracks/*.flac`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeProfile, "profile", "",
		"analysis profile file (YAML or JSON)")
	analyzeCmd.Flags().StringVar(&analyzeSide, "side", "intro",
		"edge to scan from (intro, outro)")
	analyzeCmd.Flags().Float64Var(&analyzeMaxSeconds, "max-seconds", 30,
		"maximum duration to scan from the edge")
	analyzeCmd.Flags().Float64Var(&analyzeWindowSecs, "window-seconds", 0.5,
		"duration of each analysis window")
	analyzeCmd.Flags().Float64VarP(&analyzeThreshold, "threshold", "t", 0.9,
		"cosine similarity threshold for a file to match a window")
	analyzeCmd.Flags().Float64Var(&analyzeMinFraction, "min-fraction", 1.0,
		"fraction of files that must match for a window to count")
	analyzeCmd.Flags().IntVar(&analyzeSampleRate, "sample-rate", 22050,
		"sample rate to resample decoded audio to")
	analyzeCmd.Flags().IntVar(&analyzeMFCC, "mfcc", 13,
		"number of MFCC coefficients per feature vector")
	analyzeCmd.Flags().StringVar(&analyzeContentType, "content-type", "music",
		"decoder content hint (music, speech, mixed)")
	analyzeCmd.Flags().StringVar(&analyzeOutputFile, "output-file", "",
		"write formatted results to file instead of stdout")
	analyzeCmd.Flags().StringVar(&analyzeTraceFile, "trace-file", "",
		"write the full per-file similarity traces to a JSON file")
	analyzeCmd.Flags().BoolVar(&analyzeDetailed, "detailed", false,
		"include per-file similarity traces in formatted output")
	analyzeCmd.Flags().BoolVarP(&analyzeQuiet, "quiet", "q", false,
		"suppress the summary table")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 10*time.Minute,
		"overall timeout for decoding and analysis")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	applyAnalysisOverrides(cmd)

	appCtx := &app.Context{
		ProfileFile:  analyzeProfile,
		OutputFile:   analyzeOutputFile,
		OutputFormat: viper.GetString("output_format"),
		TraceFile:    analyzeTraceFile,
		Verbose:      viper.GetBool("verbose"),
		Quiet:        analyzeQuiet,
		Detailed:     analyzeDetailed,
	}

	scanApp, err := app.NewScanApp(appCtx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	_, err = scanApp.Run(ctx, args)
	return err
}

// applyAnalysisOverrides pushes explicitly-set analysis flags into viper so
// profile and config file values only apply when the flag was left alone
func applyAnalysisOverrides(cmd *cobra.Command) {
	if cmd.Flags().Changed("side") {
		viper.Set("analysis.side", analyzeSide)
	}
	if cmd.Flags().Changed("max-seconds") {
		viper.Set("analysis.max_seconds", analyzeMaxSeconds)
	}
	if cmd.Flags().Changed("window-seconds") {
		viper.Set("analysis.window_seconds", analyzeWindowSecs)
	}
	if cmd.Flags().Changed("threshold") {
		viper.Set("analysis.similarity_threshold", analyzeThreshold)
	}
	if cmd.Flags().Changed("min-fraction") {
		viper.Set("analysis.min_files_fraction", analyzeMinFraction)
	}
	if cmd.Flags().Changed("sample-rate") {
		viper.Set("audio.sample_rate", analyzeSampleRate)
	}
	if cmd.Flags().Changed("mfcc") {
		viper.Set("audio.mfcc_coefficients", analyzeMFCC)
	}
	if cmd.Flags().Changed("content-type") {
		viper.Set("audio.content_type", analyzeContentType)
	}
	if cmd.Flags().Changed("detailed") {
		viper.Set("output.include_traces", analyzeDetailed)
	}
}

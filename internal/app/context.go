package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/RyanBlaney/jingle-scan/configs"
	"github.com/RyanBlaney/jingle-scan/internal/analysis"
	"github.com/RyanBlaney/jingle-scan/internal/report"
	"github.com/RyanBlaney/jingle-scan/pkg/audio/decode"
	"github.com/RyanBlaney/jingle-scan/pkg/audio/export"
	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"github.com/RyanBlaney/latency-benchmark-common/output"
)

// Context holds the application context and configuration
type Context struct {
	// CLI arguments
	ProfileFile  string
	OutputFile   string
	OutputFormat string
	TraceFile    string
	OutputDir    string
	Verbose      bool
	Quiet        bool
	Detailed     bool

	// Runtime context
	Logger logging.Logger
	Config *configs.Config
}

// ScanApp handles the scan application lifecycle
type ScanApp struct {
	ctx      *Context
	config   *configs.Config
	logger   logging.Logger
	analyzer *analysis.Analyzer
}

// NewScanApp creates a new scan application
func NewScanApp(ctx *Context) (*ScanApp, error) {
	// Set up logging
	logger := setupLogging(ctx)
	ctx.Logger = logger

	// Load configuration
	config, err := loadAndMergeConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	ctx.Config = config

	logger.Debug("Scan application initialized", logging.Fields{
		"profile_file":   ctx.ProfileFile,
		"output_format":  ctx.OutputFormat,
		"side":           config.Analysis.Side,
		"max_seconds":    config.Analysis.MaxSeconds,
		"window_seconds": config.Analysis.WindowSeconds,
	})

	analyzer := analysis.NewAnalyzer(&analysis.AnalyzerConfig{
		Loader: newLoader(config, logger),
		Logger: logger,
	})

	return &ScanApp{
		ctx:      ctx,
		config:   config,
		logger:   logger,
		analyzer: analyzer,
	}, nil
}

// Params maps the merged configuration to scan parameters
func (app *ScanApp) Params() (analysis.Params, error) {
	side, err := analysis.ParseSide(app.config.Analysis.Side)
	if err != nil {
		return analysis.Params{}, err
	}

	params := analysis.Params{
		Side:                side,
		MaxSeconds:          app.config.Analysis.MaxSeconds,
		WindowSeconds:       app.config.Analysis.WindowSeconds,
		SampleRate:          app.config.Audio.SampleRate,
		MFCCCoefficients:    app.config.Audio.MFCCCoefficients,
		SimilarityThreshold: app.config.Analysis.SimilarityThreshold,
		MinFilesFraction:    app.config.Analysis.MinFilesFraction,
	}

	if err := params.Validate(); err != nil {
		return analysis.Params{}, err
	}

	return params, nil
}

// Run executes the scan and outputs results
func (app *ScanApp) Run(ctx context.Context, paths []string) (*analysis.Result, error) {
	params, err := app.Params()
	if err != nil {
		return nil, fmt.Errorf("invalid scan parameters: %w", err)
	}

	result, err := app.analyzer.Analyze(ctx, paths, params)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	metrics := analysis.NewMetricsCalculator(app.logger).Calculate(result)

	if err := app.outputResults(result, metrics); err != nil {
		return nil, fmt.Errorf("failed to output results: %w", err)
	}

	if app.ctx.TraceFile != "" {
		if err := app.writeTraceFile(result); err != nil {
			return nil, fmt.Errorf("failed to write trace file: %w", err)
		}
	}

	// Every file failing to decode is an operational error even though
	// the scan itself absorbs the failures
	if result.FilesFailed == result.FilesAnalyzed {
		return result, fmt.Errorf("all input files failed to decode")
	}

	return result, nil
}

// RunTrim executes the scan, then writes trimmed copies of the inputs
func (app *ScanApp) RunTrim(ctx context.Context, paths []string) error {
	result, err := app.Run(ctx, paths)
	if err != nil {
		return err
	}

	if result.SecondsMatched < app.config.Trim.MinSeconds {
		app.logger.Info("Common segment below trim minimum, nothing written", logging.Fields{
			"seconds_matched": result.SecondsMatched,
			"min_seconds":     app.config.Trim.MinSeconds,
		})
		if !app.ctx.Quiet {
			fmt.Printf("Matched %.1fs is below the %.1fs trim minimum; no copies written\n",
				result.SecondsMatched, app.config.Trim.MinSeconds)
		}
		return nil
	}

	outDir := app.ctx.OutputDir
	if outDir == "" {
		outDir = app.config.Trim.OutputDir
	}

	trimmer := export.NewTrimmer(&export.TrimmerConfig{
		FFmpegPath: app.config.Trim.FFmpegPath,
		Logger:     app.logger,
	})

	written := 0
	for _, trace := range result.FileTraces {
		req, ok := trimRequestFor(trace, result.Params.Side, result.SecondsMatched, outDir)
		if !ok {
			if trace.DecodeError == "" {
				app.logger.Warn("File fully covered by matched segment, skipping", logging.Fields{
					"path":            trace.Path,
					"duration":        trace.DurationSeconds,
					"seconds_matched": result.SecondsMatched,
				})
			}
			continue
		}

		if err := trimmer.TrimFile(ctx, req); err != nil {
			return fmt.Errorf("failed to trim %s: %w", trace.Path, err)
		}
		written++
	}

	if !app.ctx.Quiet {
		fmt.Printf("Wrote %d trimmed copies to %s (cut %.1fs from %s)\n",
			written, outDir, result.SecondsMatched, result.Params.Side)
	}

	return nil
}

// trimRequestFor maps one analyzed file to its trim request. Returns
// false for files that should be skipped: decode failures, and files
// the matched segment covers entirely, on either side - cutting those
// would leave an empty copy
func trimRequestFor(trace *analysis.FileTrace, side analysis.Side, secondsMatched float64, outDir string) (*export.TrimRequest, bool) {
	if trace.DecodeError != "" {
		return nil, false
	}
	if trace.DurationSeconds <= secondsMatched {
		return nil, false
	}

	req := &export.TrimRequest{
		SourcePath: trace.Path,
		OutputPath: export.OutputName(trace.Path, outDir),
	}

	if side == analysis.SideOutro {
		req.KeepSeconds = trace.DurationSeconds - secondsMatched
	} else {
		req.SkipSeconds = secondsMatched
	}

	return req, true
}

// setupLogging configures logging based on context
func setupLogging(ctx *Context) logging.Logger {
	return logging.NewDefaultLogger()
}

// newLoader builds the file loader from the merged audio configuration,
// carrying the content hint through to the decoder
func newLoader(config *configs.Config, logger logging.Logger) *decode.FileLoader {
	return decode.NewFileLoader(&decode.Config{
		TargetSampleRate: config.Audio.SampleRate,
		ContentType:      config.Audio.ContentType,
		Logger:           logger,
	})
}

// loadAndMergeConfig loads configuration and merges an optional profile
// file over it
func loadAndMergeConfig(ctx *Context) (*configs.Config, error) {
	baseConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load base configuration: %w", err)
	}

	if ctx.ProfileFile != "" {
		profile, err := loadProfileFromFile(ctx.ProfileFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
		mergeProfile(baseConfig, profile)
	}

	if ctx.OutputFormat != "" {
		baseConfig.OutputFormat = ctx.OutputFormat
	}

	if err := configs.ValidateConfig(baseConfig); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return baseConfig, nil
}

// outputResults handles all result output
func (app *ScanApp) outputResults(result *analysis.Result, metrics *analysis.ScanMetrics) error {
	format := app.config.OutputFormat
	if format == "" || format == "table" {
		if app.ctx.Quiet {
			return nil
		}
		renderer := report.NewRenderer(app.config.Output.Precision)
		fmt.Print(renderer.Summary(result, metrics))
		if app.ctx.Verbose {
			fmt.Println(renderer.Fractions(result))
		}
		return nil
	}

	outputData := map[string]any{
		"scan_result": cleanResult(result, app.config.Output.IncludeTraces),
		"timestamp":   time.Now(),
	}
	if app.ctx.Detailed {
		outputData["scan_metrics"] = metrics
	}

	var formatter output.Formatter
	switch format {
	case "json":
		formatter = &output.JSONFormatter{}
	case "yaml":
		formatter = &output.YAMLFormatter{}
	case "csv":
		formatter = &output.CSVFormatter{}
	default:
		formatter = &output.JSONFormatter{}
	}

	formattedData, err := formatter.Format(outputData, true)
	if err != nil {
		return fmt.Errorf("failed to format output data: %w", err)
	}

	if app.ctx.OutputFile != "" {
		return app.writeToFile(app.ctx.OutputFile, formattedData)
	}

	_, err = os.Stdout.Write(formattedData)
	return err
}

// cleanResult optionally strips the per-file similarity traces, which
// dominate the payload for long scans
func cleanResult(result *analysis.Result, includeTraces bool) map[string]any {
	clean := map[string]any{
		"side":                result.Params.Side,
		"seconds_matched":     result.SecondsMatched,
		"windows_matched":     result.WindowsMatched,
		"per_window_fraction": result.PerWindowFraction,
		"files_analyzed":      result.FilesAnalyzed,
		"files_failed":        result.FilesFailed,
		"analysis_time_ms":    result.AnalysisTime.Milliseconds(),
		"params":              result.Params,
	}

	files := make([]map[string]any, 0, len(result.FileTraces))
	for _, trace := range result.FileTraces {
		file := map[string]any{
			"path":             trace.Path,
			"duration_seconds": trace.DurationSeconds,
		}
		if trace.DecodeError != "" {
			file["decode_error"] = trace.DecodeError
		}
		if includeTraces {
			file["similarities"] = trace.Similarities
		}
		files = append(files, file)
	}
	clean["files"] = files

	return clean
}

// writeTraceFile dumps the full result, traces included, as JSON for
// debugging and plotting
func (app *ScanApp) writeTraceFile(result *analysis.Result) error {
	formatter := &output.JSONFormatter{}
	data, err := formatter.Format(result, true)
	if err != nil {
		return fmt.Errorf("failed to format trace data: %w", err)
	}

	if err := app.writeToFile(app.ctx.TraceFile, data); err != nil {
		return err
	}

	app.logger.Debug("Trace written to file", logging.Fields{
		"trace_file": app.ctx.TraceFile,
		"size_bytes": len(data),
	})

	return nil
}

// writeToFile writes data to the specified output file
func (app *ScanApp) writeToFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}

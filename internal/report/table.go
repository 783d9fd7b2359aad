package report

import (
	"fmt"
	"strings"

	"github.com/RyanBlaney/jingle-scan/internal/analysis"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Renderer renders scan results as a human-readable summary table
type Renderer struct {
	printer   *message.Printer
	precision int
}

// NewRenderer creates a new renderer. precision controls decimal places
// for similarity scores.
func NewRenderer(precision int) *Renderer {
	if precision <= 0 {
		precision = 3
	}

	return &Renderer{
		printer:   message.NewPrinter(language.English),
		precision: precision,
	}
}

// Summary renders the scan outcome plus a per-file breakdown.
func (r *Renderer) Summary(result *analysis.Result, metrics *analysis.ScanMetrics) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Common %s scan: %.1fs matched (%d windows of %.2fs)\n",
		result.Params.Side, result.SecondsMatched, result.WindowsMatched, result.Params.WindowSeconds)
	fmt.Fprintf(&b, "Files: %s analyzed, %s failed to decode\n",
		r.printer.Sprintf("%d", result.FilesAnalyzed),
		r.printer.Sprintf("%d", result.FilesFailed))

	if result.WindowsMatched == 0 {
		b.WriteString("No common segment found (or analysis degraded by decode failures)\n")
	}

	b.WriteString(r.fileTable(result, metrics))
	b.WriteString("\n")

	return b.String()
}

// fileTable renders the per-file breakdown
func (r *Renderer) fileTable(result *analysis.Result, metrics *analysis.ScanMetrics) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"File", "Duration", "Windows", "Mean Sim", "Min Sim", "Status"})

	statsByPath := make(map[string]*analysis.FileStats)
	if metrics != nil {
		for _, fs := range metrics.PerFile {
			statsByPath[fs.Path] = fs
		}
	}

	for _, trace := range result.FileTraces {
		status := "ok"
		meanSim := "-"
		minSim := "-"

		if trace.DecodeError != "" {
			status = "decode failed"
		}

		if fs, ok := statsByPath[trace.Path]; ok && fs.Similarity != nil && fs.Similarity.Count > 0 {
			meanSim = fmt.Sprintf("%.*f", r.precision, fs.Similarity.Mean)
			minSim = fmt.Sprintf("%.*f", r.precision, fs.Similarity.Min)
		}

		tw.AppendRow(table.Row{
			trace.Path,
			fmt.Sprintf("%.1fs", trace.DurationSeconds),
			r.printer.Sprintf("%d", len(trace.Similarities)),
			meanSim,
			minSim,
			status,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 6, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

// Fractions renders the per-window matched fractions as a compact trace
// line for verbose output.
func (r *Renderer) Fractions(result *analysis.Result) string {
	if len(result.PerWindowFraction) == 0 {
		return "no windows evaluated"
	}

	parts := make([]string, len(result.PerWindowFraction))
	for i, frac := range result.PerWindowFraction {
		parts[i] = fmt.Sprintf("%.2f", frac)
	}

	return "per-window matched fraction: " + strings.Join(parts, " ")
}

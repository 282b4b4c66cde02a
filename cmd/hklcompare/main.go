// Command hklcompare compares two reflection files from the command line,
// prints the summary statistics and writes the point tables as reports.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"hklcompare/internal/config"
	"hklcompare/internal/exporter"
	"hklcompare/internal/infrastructure"
	"hklcompare/internal/services"
	"hklcompare/internal/symmetry"
	"hklcompare/internal/validation"
)

const (
	exportCSV  = "csv"
	exportXLSX = "xlsx"
	exportBoth = "both"
	exportNone = "none"
)

// options holds the parsed command line. Only flags the user actually set
// override the configuration file.
type options struct {
	file1, file2   string
	label1, label2 string
	prefix         string
	cutoff         float64
	scale          float64
	laue           string
	outDir         string
	export         string
	configFile     string
	ratio          string
	set            map[string]bool
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("hklcompare", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.file1, "1", "", "first reflection file (.raw, .fco, .sortav, .hkl)")
	fs.StringVar(&o.file2, "2", "", "second reflection file")
	fs.StringVar(&o.label1, "x1", "", "label of dataset 1")
	fs.StringVar(&o.label2, "x2", "", "label of dataset 2")
	fs.StringVar(&o.prefix, "p", "", "report name prefix")
	fs.Float64Var(&o.cutoff, "c", 0, "I/sigma cutoff applied to both datasets")
	fs.Float64Var(&o.scale, "s", 0, "scale factor for dataset 1 (0 = autoscale)")
	fs.StringVar(&o.laue, "l", "", "Laue class, one of "+strings.Join(symmetry.Labels(), " "))
	fs.StringVar(&o.outDir, "o", "", "report output directory")
	fs.StringVar(&o.export, "export", exportCSV, "report format: csv, xlsx, both or none")
	fs.StringVar(&o.configFile, "config", "", "YAML configuration file")
	fs.StringVar(&o.ratio, "ratio", "", "cutoff ratio: sigma or spread")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	if o.file1 == "" || o.file2 == "" {
		return nil, errors.New("both -1 and -2 are required")
	}
	switch o.export {
	case exportCSV, exportXLSX, exportBoth, exportNone:
	default:
		return nil, fmt.Errorf("unknown export format %q", o.export)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return o, nil
}

// apply overlays the explicitly set flags onto the configured defaults.
func (o *options) apply(c config.ComparisonConfig) config.ComparisonConfig {
	if o.set["x1"] {
		c.Label1 = o.label1
	}
	if o.set["x2"] {
		c.Label2 = o.label2
	}
	if o.set["p"] {
		c.ReportPrefix = o.prefix
	}
	if o.set["c"] {
		c.SigmaCutoff = o.cutoff
	}
	if o.set["s"] {
		c.AutoScale = o.scale == 0
		if !c.AutoScale {
			c.Scale = o.scale
		}
	}
	if o.set["l"] {
		c.Symmetry = o.laue
	}
	if o.set["ratio"] {
		c.Ratio = o.ratio
	}
	return c
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "hklcompare: %v\n", err)
		return 2
	}

	cfg, err := config.LoadFile(opts.configFile)
	if err != nil {
		fmt.Fprintf(stderr, "hklcompare: %v\n", err)
		return 1
	}
	cfg.Logging.Format = "text"
	logger := infrastructure.NewLogger(cfg.Logging, stderr)
	slog.SetDefault(logger)

	cfg.Comparison = opts.apply(cfg.Comparison)
	comparison := cfg.Comparison
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid options", slog.String("error", err.Error()))
		return 2
	}

	paths, err := config.ResolvePaths(cfg.Paths, "")
	if err != nil {
		logger.Error("failed to resolve paths", slog.String("error", err.Error()))
		return 1
	}
	if opts.outDir != "" {
		if paths.ReportsDir, err = filepath.Abs(opts.outDir); err != nil {
			logger.Error("invalid output directory", slog.String("error", err.Error()))
			return 1
		}
	}

	validator := validation.NewFileValidator(logger)
	for _, f := range []string{opts.file1, opts.file2} {
		if _, err := validator.ValidateReflectionFile(f); err != nil {
			logger.Error("invalid input", slog.String("error", err.Error()))
			return 1
		}
	}
	if opts.export != exportNone {
		if err := validator.ValidateOutputDirectory(paths.ReportsDir); err != nil {
			logger.Error("invalid output directory", slog.String("error", err.Error()))
			return 1
		}
	}

	providers := infrastructure.NoopProviders(logger)
	service := services.NewComparisonService(services.NewComparisonStore(1), comparison,
		logger, providers.Tracer, infrastructure.NoopBusinessMetrics())

	req := service.DefaultRequest()
	req.File1, req.File2 = opts.file1, opts.file2

	c, err := service.Compare(ctx, req)
	if err != nil {
		logger.Error("comparison failed", slog.String("error", err.Error()))
		if c != nil {
			printSummary(stdout, reportOf(c))
		}
		return 1
	}

	report := reportOf(c)
	printSummary(stdout, report)

	files, err := writeReports(report, comparison.ReportPrefix, opts.export, paths, logger)
	if err != nil {
		logger.Error("failed to write reports", slog.String("error", err.Error()))
		return 1
	}
	for _, f := range files {
		fmt.Fprintf(stdout, "wrote %s\n", f)
	}
	return 0
}

func reportOf(c *services.Comparison) exporter.Report {
	return exporter.Report{
		Label1:   c.Datasets[0].Label,
		Label2:   c.Datasets[1].Label,
		Symmetry: c.Request.Symmetry,
		Merge:    c.Merge,
		Stats:    c.Stats,
	}
}

func printSummary(w io.Writer, r exporter.Report) {
	for _, row := range r.SummaryRows() {
		value := row[1]
		if value == nil {
			value = "n/a"
		}
		fmt.Fprintf(w, "%-16s %v\n", row[0], value)
	}
}

func writeReports(r exporter.Report, prefix, format string, paths *config.Paths, logger *slog.Logger) ([]string, error) {
	if format == exportNone {
		return nil, nil
	}
	base := r.BaseName(prefix)

	var files []string
	if format == exportCSV || format == exportBoth {
		written, err := exporter.NewCSVWriter(paths, logger).WriteCSVReport(r, base)
		if err != nil {
			return files, err
		}
		files = append(files, written...)
	}
	if format == exportXLSX || format == exportBoth {
		path := paths.ReportPath(base + ".xlsx")
		if err := exporter.SaveWorkbook(path, r); err != nil {
			return files, err
		}
		files = append(files, path)
	}
	return files, nil
}

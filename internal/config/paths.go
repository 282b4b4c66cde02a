package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "hklcompare/internal/errors"
)

// Paths contains the resolved, absolute application directories.
type Paths struct {
	BaseDir    string
	DataDir    string
	ReportsDir string
	LogsDir    string
}

// ResolvePaths makes every configured directory absolute. Relative entries
// are taken relative to base, or to the working directory when base is "".
func ResolvePaths(cfg PathsConfig, base string) (*Paths, error) {
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		base = wd
	}
	base, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("resolve base directory: %w", err)
	}

	abs := func(p string) string {
		if filepath.IsAbs(p) {
			return filepath.Clean(p)
		}
		return filepath.Join(base, p)
	}

	return &Paths{
		BaseDir:    base,
		DataDir:    abs(cfg.DataDir),
		ReportsDir: abs(cfg.ReportsDir),
		LogsDir:    abs(cfg.LogsDir),
	}, nil
}

// EnsureDirectories creates the report and log directories if they don't exist.
// The data directory is only read from and is left alone.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.NewStorageError("create directory "+dir, err)
		}
		slog.Debug("ensured directory exists", slog.String("directory", dir))
	}
	return nil
}

// DataPath resolves a request-supplied file name under DataDir. Absolute
// names and names escaping the data directory are rejected.
func (p *Paths) DataPath(name string) (string, error) {
	if name == "" {
		return "", apperrors.NewAppValidationError("file path is empty")
	}
	if filepath.IsAbs(name) {
		return "", apperrors.NewAppValidationError("file path must be relative to the data directory").
			WithContext("path", name)
	}
	full := filepath.Join(p.DataDir, name)
	rel, err := filepath.Rel(p.DataDir, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", apperrors.NewAppValidationError("file path escapes the data directory").
			WithContext("path", name)
	}
	return full, nil
}

// ReportPath returns the path of a report file in ReportsDir.
func (p *Paths) ReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// LogPath returns the path of a log file in LogsDir.
func (p *Paths) LogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// LogPathResolution logs the resolved directories at debug level.
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("path resolution",
		slog.String("base_dir", p.BaseDir),
		slog.String("data_dir", p.DataDir),
		slog.String("reports_dir", p.ReportsDir),
		slog.String("logs_dir", p.LogsDir))
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

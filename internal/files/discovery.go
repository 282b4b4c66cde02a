package files

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"hklcompare/internal/reflection"
)

// FileInfo represents a discovered reflection file.
type FileInfo struct {
	Path    string // relative to the discovery base, slash separated
	Name    string
	Size    int64
	ModTime time.Time
	Format  reflection.Format
}

// Discovery provides file discovery operations below a base directory.
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// BasePath returns the directory searched by the discovery.
func (d *Discovery) BasePath() string {
	return d.basePath
}

// FindReflectionFiles walks the base directory and returns every file with a
// supported reflection extension, sorted by path. Hidden directories are
// skipped.
func (d *Discovery) FindReflectionFiles() ([]FileInfo, error) {
	var files []FileInfo
	err := filepath.WalkDir(d.basePath, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if path != d.basePath && entry.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}
		fi, ok := d.fileInfo(path, entry)
		if ok {
			files = append(files, fi)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", d.basePath, err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}

// FindFilesByPattern returns the reflection files in the base directory whose
// relative path matches a glob pattern.
func (d *Discovery) FindFilesByPattern(pattern string) ([]FileInfo, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}

	all, err := d.FindReflectionFiles()
	if err != nil {
		return nil, err
	}

	var files []FileInfo
	for _, f := range all {
		if ok, _ := filepath.Match(pattern, filepath.FromSlash(f.Path)); ok {
			files = append(files, f)
			continue
		}
		if ok, _ := filepath.Match(pattern, f.Name); ok {
			files = append(files, f)
		}
	}
	return files, nil
}

func (d *Discovery) fileInfo(path string, entry fs.DirEntry) (FileInfo, bool) {
	format, err := reflection.FormatFromPath(path)
	if err != nil {
		return FileInfo{}, false
	}
	info, err := entry.Info()
	if err != nil {
		return FileInfo{}, false
	}
	rel, err := filepath.Rel(d.basePath, path)
	if err != nil {
		return FileInfo{}, false
	}
	return FileInfo{
		Path:    filepath.ToSlash(rel),
		Name:    entry.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Format:  format,
	}, true
}

// Exists reports whether the base directory is present.
func (d *Discovery) Exists() bool {
	info, err := os.Stat(d.basePath)
	return err == nil && info.IsDir()
}

// GetLatestFile returns the most recently modified file from a list
func GetLatestFile(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	latest := files[0]
	for _, file := range files[1:] {
		if file.ModTime.After(latest.ModTime) {
			latest = file
		}
	}

	return latest, true
}

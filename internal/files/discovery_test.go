package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hklcompare/internal/reflection"
)

func touch(t *testing.T, base, rel string) {
	t.Helper()
	path := filepath.Join(base, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("0 0 0 0 0\n"), 0o644))
}

func TestNewDiscovery(t *testing.T) {
	basePath := "/test/base"
	discovery := NewDiscovery(basePath)

	assert.NotNil(t, discovery)
	assert.Equal(t, basePath, discovery.BasePath())
}

func TestFindReflectionFiles(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		expected []string
	}{
		{
			name:     "all supported formats",
			files:    []string{"a.raw", "b.fco", "c.sortav", "d.hkl"},
			expected: []string{"a.raw", "b.fco", "c.sortav", "d.hkl"},
		},
		{
			name:     "extension case is ignored",
			files:    []string{"A.HKL", "B.Raw"},
			expected: []string{"A.HKL", "B.Raw"},
		},
		{
			name:     "other files are skipped",
			files:    []string{"x.hkl", "notes.txt", "report.xlsx", "x.hkl.bak"},
			expected: []string{"x.hkl"},
		},
		{
			name:     "subdirectories are walked",
			files:    []string{"mo/run1.raw", "cu/run1.raw", "top.fco"},
			expected: []string{"cu/run1.raw", "mo/run1.raw", "top.fco"},
		},
		{
			name:     "hidden directories are skipped",
			files:    []string{".cache/old.hkl", "new.hkl"},
			expected: []string{"new.hkl"},
		},
		{
			name:     "empty directory",
			files:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := t.TempDir()
			for _, f := range tt.files {
				touch(t, base, f)
			}

			found, err := NewDiscovery(base).FindReflectionFiles()
			require.NoError(t, err)

			var paths []string
			for _, f := range found {
				paths = append(paths, f.Path)
			}
			assert.ElementsMatch(t, tt.expected, paths)
		})
	}
}

func TestFindReflectionFiles_Details(t *testing.T) {
	base := t.TempDir()
	touch(t, base, "set1/sample.sortav")

	found, err := NewDiscovery(base).FindReflectionFiles()
	require.NoError(t, err)
	require.Len(t, found, 1)

	f := found[0]
	assert.Equal(t, "set1/sample.sortav", f.Path)
	assert.Equal(t, "sample.sortav", f.Name)
	assert.Equal(t, reflection.FormatSortav, f.Format)
	assert.Positive(t, f.Size)
	assert.False(t, f.ModTime.IsZero())
}

func TestFindReflectionFiles_MissingDirectory(t *testing.T) {
	d := NewDiscovery(filepath.Join(t.TempDir(), "missing"))
	assert.False(t, d.Exists())

	_, err := d.FindReflectionFiles()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindFilesByPattern(t *testing.T) {
	base := t.TempDir()
	for _, f := range []string{"mo_1.raw", "mo_2.raw", "cu_1.raw", "mo/nested.hkl", "mo_3.txt"} {
		touch(t, base, f)
	}
	d := NewDiscovery(base)

	tests := []struct {
		pattern  string
		expected []string
	}{
		{pattern: "mo_*", expected: []string{"mo_1.raw", "mo_2.raw"}},
		{pattern: "*.hkl", expected: []string{"mo/nested.hkl"}},
		{pattern: "mo/*", expected: []string{"mo/nested.hkl"}},
		{pattern: "ag*", expected: nil},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			found, err := d.FindFilesByPattern(tt.pattern)
			require.NoError(t, err)

			var paths []string
			for _, f := range found {
				paths = append(paths, f.Path)
			}
			assert.Equal(t, tt.expected, paths)
		})
	}

	_, err := d.FindFilesByPattern("[")
	assert.Error(t, err)
}

func TestGetLatestFile(t *testing.T) {
	now := time.Now()
	files := []FileInfo{
		{Name: "old.raw", ModTime: now.Add(-2 * time.Hour)},
		{Name: "new.raw", ModTime: now},
		{Name: "mid.raw", ModTime: now.Add(-time.Hour)},
	}

	latest, ok := GetLatestFile(files)
	require.True(t, ok)
	assert.Equal(t, "new.raw", latest.Name)

	_, ok = GetLatestFile(nil)
	assert.False(t, ok)
}

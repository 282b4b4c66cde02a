package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "hklcompare/internal/errors"
	"hklcompare/internal/reflection"
	"hklcompare/internal/shared/testutil"
)

func TestFileValidator_ValidateInputDirectory(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	v := NewFileValidator(logger)
	dir := t.TempDir()
	file := testutil.WriteFixture(t, dir, "x.hkl", "")

	tests := []struct {
		name     string
		path     string
		wantType apperrors.ErrorType
	}{
		{name: "exists", path: dir},
		{name: "missing", path: filepath.Join(dir, "absent"), wantType: apperrors.ErrTypeNotFound},
		{name: "file", path: file, wantType: apperrors.ErrTypeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateInputDirectory(tt.path)
			if tt.wantType == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, tt.wantType), "got %v", err)
		})
	}
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	v := NewFileValidator(nil)

	nested := filepath.Join(t.TempDir(), "reports", "2026")
	require.NoError(t, v.ValidateOutputDirectory(nested))
	assert.DirExists(t, nested)
	assert.NoFileExists(t, filepath.Join(nested, ".write_test"))

	blocker := testutil.WriteFixture(t, t.TempDir(), "plain", "x")
	err := v.ValidateOutputDirectory(filepath.Join(blocker, "sub"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}

func TestFileValidator_ValidateReflectionFile(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	v := NewFileValidator(logger)
	dir := t.TempDir()
	raw := testutil.WriteFixture(t, dir, "a.raw", testutil.RAW([]testutil.Row{{H: 1, I: 1, Sigma: 1}}))
	txt := testutil.WriteFixture(t, dir, "a.txt", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "d.hkl"), 0o755))

	format, err := v.ValidateReflectionFile(raw)
	require.NoError(t, err)
	assert.Equal(t, reflection.FormatRAW, format)

	tests := []struct {
		name     string
		path     string
		wantType apperrors.ErrorType
	}{
		{name: "unsupported extension", path: txt, wantType: apperrors.ErrTypeFormat},
		{name: "missing", path: filepath.Join(dir, "b.fco"), wantType: apperrors.ErrTypeNotFound},
		{name: "directory", path: filepath.Join(dir, "d.hkl"), wantType: apperrors.ErrTypeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.ValidateReflectionFile(tt.path)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, tt.wantType), "got %v", err)
		})
	}

	assert.True(t, handler.ContainsMessage("File does not exist"))
}

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hklcompare/internal/config"
	"hklcompare/internal/shared/testutil"
)

func fixtures(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	a := testutil.WriteFixture(t, dir, "a.hkl", testutil.SHELX([]testutil.Row{
		{H: 1, K: 0, L: 0, I: 10, Sigma: 1},
		{H: 0, K: 2, L: 0, I: 20, Sigma: 1},
		{H: 0, K: 0, L: 4, I: 5, Sigma: 1},
	}))
	b := testutil.WriteFixture(t, dir, "b.hkl", testutil.SHELX([]testutil.Row{
		{H: -1, K: 0, L: 0, I: 30, Sigma: 1},
		{H: 0, K: -2, L: 0, I: 60, Sigma: 1},
	}))
	return a, b
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_ExportBoth(t *testing.T) {
	a, b := fixtures(t)
	out := t.TempDir()

	code, stdout, stderr := runCLI(t,
		"-1", a, "-2", b, "-x1", "A", "-x2", "B",
		"-c", "0", "-l", "-1", "-o", out, "-export", "both")
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, "scale            3\n")
	assert.Contains(t, stdout, "unmatched 1      1\n")
	assert.Contains(t, stdout, "points           2\n")

	for _, name := range []string{
		"compare_A_vs_B_c0.0_s3.0_points.csv",
		"compare_A_vs_B_c0.0_s3.0_unmatched.csv",
		"compare_A_vs_B_c0.0_s3.0.xlsx",
	} {
		path := filepath.Join(out, name)
		assert.FileExists(t, path)
		assert.Contains(t, stdout, "wrote "+path)
	}
}

func TestRun_FixedScaleAndPrefix(t *testing.T) {
	a, b := fixtures(t)
	out := t.TempDir()

	code, stdout, stderr := runCLI(t,
		"-1", a, "-2", b, "-c", "0", "-s", "1.5", "-p", "run7", "-o", out)
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, "scale mode       fixed\n")
	assert.FileExists(t, filepath.Join(out, "run7_1_vs_2_c0.0_s1.5_points.csv"))
	assert.NoFileExists(t, filepath.Join(out, "run7_1_vs_2_c0.0_s1.5.xlsx"))
}

func TestRun_ExportNone(t *testing.T) {
	a, b := fixtures(t)
	out := t.TempDir()

	code, stdout, _ := runCLI(t, "-1", a, "-2", b, "-c", "0", "-o", out, "-export", "none")
	require.Equal(t, 0, code)
	assert.NotContains(t, stdout, "wrote")

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_Failures(t *testing.T) {
	a, b := fixtures(t)

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{
			name:     "missing second file",
			args:     []string{"-1", a},
			wantCode: 2,
			wantErr:  "both -1 and -2 are required",
		},
		{
			name:     "unknown export format",
			args:     []string{"-1", a, "-2", b, "-export", "pdf"},
			wantCode: 2,
			wantErr:  `unknown export format "pdf"`,
		},
		{
			name:     "stray argument",
			args:     []string{"-1", a, "-2", b, "extra"},
			wantCode: 2,
			wantErr:  "unexpected arguments: extra",
		},
		{
			name:     "bad ratio",
			args:     []string{"-1", a, "-2", b, "-ratio", "chi"},
			wantCode: 2,
			wantErr:  "invalid options",
		},
		{
			name:     "unknown Laue class",
			args:     []string{"-1", a, "-2", b, "-l", "6/mmm-x"},
			wantCode: 1,
			wantErr:  "comparison failed",
		},
		{
			name:     "missing file",
			args:     []string{"-1", a, "-2", filepath.Join(t.TempDir(), "nope.hkl"), "-export", "none"},
			wantCode: 1,
			wantErr:  "invalid input",
		},
		{
			name:     "unsupported extension",
			args:     []string{"-1", a, "-2", filepath.Join(t.TempDir(), "b.txt")},
			wantCode: 1,
			wantErr:  "unsupported file extension",
		},
		{
			name:     "missing config file",
			args:     []string{"-1", a, "-2", b, "-config", filepath.Join(t.TempDir(), "nope.yaml")},
			wantCode: 1,
			wantErr:  "load config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, stderr, tt.wantErr)
		})
	}
}

func TestRun_CutoffRemovesEverything(t *testing.T) {
	a, b := fixtures(t)

	code, stdout, stderr := runCLI(t, "-1", a, "-2", b, "-c", "1000", "-export", "none")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "after sigma cutoff")
	assert.Contains(t, stdout, "unique           2\n", "merge counts are still printed")
}

func TestRun_Help(t *testing.T) {
	code, _, stderr := runCLI(t, "-h")
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "-export")
}

func TestRun_ConfigFile(t *testing.T) {
	a, b := fixtures(t)
	out := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "hklcompare.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("comparison:\n  sigma_cutoff: 0\n  report_prefix: cfg\n  label1: Mo\n"), 0o644))

	code, _, stderr := runCLI(t, "-1", a, "-2", b, "-o", out, "-config", cfgPath, "-x2", "Ag")
	require.Equal(t, 0, code, stderr)
	assert.FileExists(t, filepath.Join(out, "cfg_Mo_vs_Ag_c0.0_s3.0_points.csv"))
}

func TestOptionsApply(t *testing.T) {
	base := config.Default().Comparison

	o, err := parseFlags([]string{"-1", "a", "-2", "b", "-s", "0", "-l", "mmm"}, &bytes.Buffer{})
	require.NoError(t, err)
	got := o.apply(base)
	assert.True(t, got.AutoScale)
	assert.Equal(t, "mmm", got.Symmetry)
	assert.Equal(t, base.SigmaCutoff, got.SigmaCutoff, "unset flags keep configured values")

	o, err = parseFlags([]string{"-1", "a", "-2", "b", "-s", "2.5"}, &bytes.Buffer{})
	require.NoError(t, err)
	got = o.apply(base)
	assert.False(t, got.AutoScale)
	assert.Equal(t, 2.5, got.Scale)
}

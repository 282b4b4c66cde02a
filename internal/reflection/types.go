package reflection

import (
	"cmp"
	"fmt"
	"path/filepath"
	"strings"

	apperrors "hklcompare/internal/errors"
)

// HKL is a Miller index. It is comparable and used directly as a map key.
type HKL struct {
	H, K, L int
}

// Compare orders indices lexicographically on (H, K, L).
func (a HKL) Compare(b HKL) int {
	if c := cmp.Compare(a.H, b.H); c != 0 {
		return c
	}
	if c := cmp.Compare(a.K, b.K); c != 0 {
		return c
	}
	return cmp.Compare(a.L, b.L)
}

// Less reports whether a sorts before b.
func (a HKL) Less(b HKL) bool {
	return a.Compare(b) < 0
}

// String renders the index in the 3×I4-style used by reflection files.
func (a HKL) String() string {
	return fmt.Sprintf("%4d%4d%4d", a.H, a.K, a.L)
}

// Reflection is one parsed observation.
type Reflection struct {
	Index         HKL
	Intensity     float64
	Sigma         float64
	Resolution    float64 // sin(theta)/lambda, valid when HasResolution
	HasResolution bool
	Flag          int
}

// Format identifies a reflection file layout.
type Format string

const (
	FormatRAW    Format = "raw"
	FormatFCO    Format = "fco"
	FormatSortav Format = "sortav"
	FormatHKL    Format = "hkl"
)

// Formats lists the supported layouts.
func Formats() []Format {
	return []Format{FormatRAW, FormatFCO, FormatSortav, FormatHKL}
}

// FormatFromPath dispatches on the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, f := range Formats() {
		if ext == string(f) {
			return f, nil
		}
	}
	return "", apperrors.NewFormatError(path, 0, fmt.Sprintf("unsupported file extension %q", filepath.Ext(path)), nil)
}

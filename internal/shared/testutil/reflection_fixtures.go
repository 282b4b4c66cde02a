package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Row is one synthetic observation used to render reflection files.
type Row struct {
	H, K, L  int
	I, Sigma float64
	STL      float64
	Flag     int
}

// WriteFixture writes content to dir/name and returns the full path.
func WriteFixture(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}

// RAW renders rows in the SAINT integration layout. Only the leading
// h,k,l,I,sigma fields matter to the reader; the trailing batch and
// direction-cosine columns are filled with plausible constants.
func RAW(rows []Row) string {
	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%4d%4d%4d%8.2f%8.2f%4d%8.5f%8.5f%8.5f%8.5f%8.5f%8.5f\n",
			r.H, r.K, r.L, r.I, r.Sigma, 1, 0.1, 0.2, 0.3, -0.1, -0.2, -0.3)
	}
	return b.String()
}

// FCO renders rows as an XD structure-factor list with its 26-line header.
func FCO(rows []Row) string {
	var b strings.Builder
	b.WriteString("! XD2006 fco\n")
	for i := 1; i < 26; i++ {
		fmt.Fprintf(&b, "! header line %d\n", i+1)
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "%6d%5d%5d %11.2f %11.2f %11.2f %11.5f %3d\n",
			r.H, r.K, r.L, r.I*0.98, r.I, r.Sigma, r.STL, r.Flag)
	}
	return b.String()
}

// Sortav renders rows as averaged intensities with c-prefixed comments.
func Sortav(rows []Row) string {
	var b strings.Builder
	b.WriteString("c sortav averaged data\n")
	b.WriteString("c   h   k   l        I   n     chi      sigma\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%4d%4d%4d %10.2f %3d %8.3f %10.2f\n",
			r.H, r.K, r.L, r.I, 2, 0.95, r.Sigma)
	}
	return b.String()
}

// SHELX renders rows in the HKLF 4 layout followed by the 17-line trailer.
func SHELX(rows []Row) string {
	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%4d%4d%4d%8.2f%8.2f%4d\n", r.H, r.K, r.L, r.I, r.Sigma, 1)
	}
	b.WriteString(SHELXTrailer())
	return b.String()
}

// SHELXTrailer returns the terminator record plus the instrument block that
// integration programs append after it, 17 lines in total.
func SHELXTrailer() string {
	lines := []string{
		"   0   0   0    0.00    0.00   0",
		"TITL sample in P-1",
		"CELL 0.71073 5.4310 5.4310 5.4310 90.000 90.000 90.000",
		"ZERR 4.00 0.0002 0.0002 0.0002 0.000 0.000 0.000",
		"LATT 1",
		"SFAC C H N O",
		"UNIT 24 32 8 8",
		"TEMP -173.0",
		"SIZE 0.10 0.12 0.15",
		"ABSC 0.80 0.95",
		"REM PILATUS3 CdTe 300K",
		"REM frames 3600 width 0.5",
		"REM exposure 1.0",
		"REM detector distance 60.0",
		"REM reflections written",
		"REM completeness 0.99",
		"END",
	}
	return strings.Join(lines, "\n") + "\n"
}

// XD renders rows in the NDAT-tagged XD layout.
func XD(rows []Row) string {
	var b strings.Builder
	b.WriteString("XDNAME F^2 NDAT 7\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%4d%4d%4d%3d %10.2f %10.2f %8.4f\n", r.H, r.K, r.L, 1, r.I, r.Sigma, 1.0)
	}
	return b.String()
}

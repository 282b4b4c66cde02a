package exporter

import (
	"math"
	"strconv"
	"strings"
)

// formatFloat renders v with the shortest exact representation. NaN and
// infinities become empty cells.
func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// cellValue maps NaN and infinities to nil so spreadsheet cells stay empty.
func cellValue(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

// nameFloat renders a number for a file name, always with a decimal point.
func nameFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

package statistics

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultBins is the bin count used for the distribution panels.
const DefaultBins = 400

// RelDiffLimit bounds relative-difference histograms to (-RelDiffLimit, RelDiffLimit).
const RelDiffLimit = 2.0

// Histogram is a binned distribution. Edges has len(Counts)+1 entries.
type Histogram struct {
	Edges   []float64 `json:"edges"`
	Counts  []float64 `json:"counts"`
	Dropped int       `json:"dropped"`
}

// NewHistogram bins the finite values of x inside [lo, hi). Values that are
// NaN, infinite or outside the range are counted in Dropped.
func NewHistogram(x []float64, bins int, lo, hi float64) Histogram {
	if bins <= 0 {
		bins = DefaultBins
	}
	h := Histogram{Edges: floats.Span(make([]float64, bins+1), lo, hi)}

	in := make([]float64, 0, len(x))
	for _, v := range x {
		if isFinite(v) && v >= lo && v < hi {
			in = append(in, v)
		}
	}
	h.Dropped = len(x) - len(in)
	if len(in) == 0 || !(hi > lo) {
		h.Counts = make([]float64, bins)
		return h
	}

	slices.Sort(in)
	h.Counts = stat.Histogram(nil, h.Edges, in, nil)
	return h
}

// AutoHistogram bins the finite values of x over their own range.
func AutoHistogram(x []float64, bins int) Histogram {
	var finite []float64
	for _, v := range x {
		if isFinite(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return NewHistogram(x, bins, 0, 1)
	}
	lo, hi := floats.Min(finite), floats.Max(finite)
	return NewHistogram(x, bins, lo, math.Nextafter(hi, math.Inf(1)))
}

// RelDiffHistogram bins the relative differences of the points within the
// plotting window.
func (r *Result) RelDiffHistogram(bins int) Histogram {
	x := make([]float64, len(r.Points))
	for i, p := range r.Points {
		x[i] = p.RelDiff
	}
	return NewHistogram(x, bins, -RelDiffLimit, RelDiffLimit)
}

// LogMeanHistogram bins log10 of the mean intensities.
func (r *Result) LogMeanHistogram(bins int) Histogram {
	x := make([]float64, len(r.Points))
	for i, p := range r.Points {
		x[i] = p.LogMean
	}
	return AutoHistogram(x, bins)
}

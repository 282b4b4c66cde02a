package merging

import (
	"hklcompare/internal/reflection"
)

// Side is one dataset's aggregate for a merged row.
type Side struct {
	Multiplicity int
	Intensity    float64 // mean
	Median       float64
	Std          float64
	Sigma        float64 // mean
}

func sideOf(g *Group) Side {
	return Side{
		Multiplicity: g.Multiplicity,
		Intensity:    g.MeanIntensity,
		Median:       g.MedianIntensity,
		Std:          g.StdIntensity,
		Sigma:        g.MeanSigma,
	}
}

// SignalToNoise is mean intensity over mean sigma.
func (s Side) SignalToNoise() float64 {
	return s.Intensity / s.Sigma
}

// SignalToSpread is mean intensity over the spread of the equivalents.
func (s Side) SignalToSpread() float64 {
	return s.Intensity / s.Std
}

// Row pairs both datasets' aggregates for one canonical index.
type Row struct {
	Index         reflection.HKL
	First         Side
	Second        Side
	Resolution    float64
	HasResolution bool
}

// Result is the inner join of two Groups plus the keys that had no partner.
type Result struct {
	Rows            []Row
	UnmatchedFirst  []reflection.HKL
	UnmatchedSecond []reflection.HKL
}

// Unique is the number of canonical indices present in both datasets.
func (r *Result) Unique() int {
	return len(r.Rows)
}

// Observations is the number of raw observations behind the merged rows,
// summed over both datasets.
func (r *Result) Observations() int {
	n := 0
	for _, row := range r.Rows {
		n += row.First.Multiplicity + row.Second.Multiplicity
	}
	return n
}

// HasResolution reports whether any merged row carries a resolution value.
func (r *Result) HasResolution() bool {
	for _, row := range r.Rows {
		if row.HasResolution {
			return true
		}
	}
	return false
}

// Merge joins a and b on canonical index. Rows and both unmatched lists are
// in ascending index order.
func Merge(a, b Groups) Result {
	res := Result{
		Rows:            make([]Row, 0, min(len(a), len(b))),
		UnmatchedFirst:  []reflection.HKL{},
		UnmatchedSecond: []reflection.HKL{},
	}

	for _, key := range a.Keys() {
		ga := a[key]
		gb, ok := b[key]
		if !ok {
			res.UnmatchedFirst = append(res.UnmatchedFirst, key)
			continue
		}

		row := Row{Index: key, First: sideOf(ga), Second: sideOf(gb)}
		switch {
		case ga.HasResolution && gb.HasResolution:
			row.Resolution = (ga.MeanResolution + gb.MeanResolution) / 2
			row.HasResolution = true
		case ga.HasResolution:
			row.Resolution, row.HasResolution = ga.MeanResolution, true
		case gb.HasResolution:
			row.Resolution, row.HasResolution = gb.MeanResolution, true
		}
		res.Rows = append(res.Rows, row)
	}

	for _, key := range b.Keys() {
		if _, ok := a[key]; !ok {
			res.UnmatchedSecond = append(res.UnmatchedSecond, key)
		}
	}

	return res
}

package merging

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"hklcompare/internal/reflection"
	"hklcompare/internal/symmetry"
)

// Group collects the observations of one dataset that reduce to the same
// canonical index. Derived fields are filled once by Aggregate.
type Group struct {
	Intensities []float64
	Sigmas      []float64
	Resolutions []float64

	Multiplicity    int
	MeanIntensity   float64
	MedianIntensity float64
	StdIntensity    float64 // population standard deviation
	MeanSigma       float64
	MeanResolution  float64
	HasResolution   bool
}

func (g *Group) add(r reflection.Reflection) {
	g.Intensities = append(g.Intensities, r.Intensity)
	g.Sigmas = append(g.Sigmas, r.Sigma)
	if r.HasResolution {
		g.Resolutions = append(g.Resolutions, r.Resolution)
	}
}

// summarize computes the derived statistics on sorted copies so the result
// depends only on the multiset of values.
func (g *Group) summarize() {
	intensities := sortedCopy(g.Intensities)
	sigmas := sortedCopy(g.Sigmas)

	g.Multiplicity = len(intensities)
	g.MeanIntensity, g.StdIntensity = stat.PopMeanStdDev(intensities, nil)
	g.MedianIntensity = medianSorted(intensities)
	g.MeanSigma = floats.Sum(sigmas) / float64(len(sigmas))

	if len(g.Resolutions) > 0 {
		g.MeanResolution = floats.Sum(sortedCopy(g.Resolutions)) / float64(len(g.Resolutions))
		g.HasResolution = true
	}
}

// Groups maps canonical indices to their aggregated observations.
type Groups map[reflection.HKL]*Group

// Keys returns the canonical indices in ascending order.
func (g Groups) Keys() []reflection.HKL {
	keys := make([]reflection.HKL, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, reflection.HKL.Compare)
	return keys
}

// Observations is the total multiplicity over all groups.
func (g Groups) Observations() int {
	n := 0
	for _, grp := range g {
		n += grp.Multiplicity
	}
	return n
}

// Aggregate reduces every reflection with set and groups them by canonical
// index. An empty input yields an empty, non-nil map.
func Aggregate(refls []reflection.Reflection, set *symmetry.OperatorSet) Groups {
	groups := make(Groups)
	for _, r := range refls {
		key := set.Canonicalize(r.Index)
		grp, ok := groups[key]
		if !ok {
			grp = &Group{}
			groups[key] = grp
		}
		grp.add(r)
	}
	for _, grp := range groups {
		grp.summarize()
	}
	return groups
}

func sortedCopy(x []float64) []float64 {
	out := slices.Clone(x)
	slices.Sort(out)
	return out
}

// Median averages the two middle values for even lengths; gonum's
// stat.Quantile picks one of them instead. NaN for empty input.
func Median(x []float64) float64 {
	return medianSorted(sortedCopy(x))
}

func medianSorted(sorted []float64) float64 {
	n := len(sorted)
	switch {
	case n == 0:
		return math.NaN()
	case n%2 == 1:
		return sorted[n/2]
	default:
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
}

package merging

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hklcompare/internal/reflection"
	"hklcompare/internal/symmetry"
)

func refl(h, k, l int, i, sigma float64) reflection.Reflection {
	return reflection.Reflection{Index: reflection.HKL{H: h, K: k, L: l}, Intensity: i, Sigma: sigma}
}

func withSTL(r reflection.Reflection, stl float64) reflection.Reflection {
	r.Resolution, r.HasResolution = stl, true
	return r
}

func TestAggregate_GroupStatistics(t *testing.T) {
	set := symmetry.MustLookup("-1")
	refls := []reflection.Reflection{
		refl(1, 2, 3, 10, 1),
		refl(-1, -2, -3, 14, 3),
		refl(1, 2, 3, 12, 2),
		refl(-1, -2, -3, 20, 2),
		refl(0, 0, 1, 5, 1),
	}

	groups := Aggregate(refls, set)
	require.Len(t, groups, 2)

	g := groups[reflection.HKL{H: 1, K: 2, L: 3}]
	require.NotNil(t, g)
	assert.Equal(t, 4, g.Multiplicity)
	assert.InDelta(t, 14.0, g.MeanIntensity, 1e-12)
	assert.InDelta(t, 13.0, g.MedianIntensity, 1e-12)
	// population std of {10,12,14,20}
	assert.InDelta(t, math.Sqrt(14), g.StdIntensity, 1e-12)
	assert.InDelta(t, 2.0, g.MeanSigma, 1e-12)
	assert.False(t, g.HasResolution)

	single := groups[reflection.HKL{H: 0, K: 0, L: 1}]
	require.NotNil(t, single)
	assert.Equal(t, 1, single.Multiplicity)
	assert.Zero(t, single.StdIntensity)
	assert.Equal(t, 5.0, single.MedianIntensity)

	assert.Equal(t, 5, groups.Observations())
	assert.Equal(t, []reflection.HKL{{H: 0, K: 0, L: 1}, {H: 1, K: 2, L: 3}}, groups.Keys())
}

func TestAggregate_Empty(t *testing.T) {
	groups := Aggregate(nil, symmetry.MustLookup("mmm"))
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestAggregate_Resolution(t *testing.T) {
	set := symmetry.MustLookup("-1")
	groups := Aggregate([]reflection.Reflection{
		withSTL(refl(1, 0, 0, 10, 1), 0.1),
		withSTL(refl(-1, 0, 0, 10, 1), 0.3),
	}, set)

	g := groups[reflection.HKL{H: 1, K: 0, L: 0}]
	require.NotNil(t, g)
	assert.True(t, g.HasResolution)
	assert.InDelta(t, 0.2, g.MeanResolution, 1e-12)
}

func TestAggregate_OrderIndependent(t *testing.T) {
	set := symmetry.MustLookup("4/mmm")
	rng := rand.New(rand.NewSource(7))

	var refls []reflection.Reflection
	for i := 0; i < 400; i++ {
		refls = append(refls, refl(rng.Intn(9)-4, rng.Intn(9)-4, rng.Intn(7)-3, rng.Float64()*1e4, 1+rng.Float64()*50))
	}

	want := Aggregate(refls, set)
	for trial := 0; trial < 5; trial++ {
		shuffled := append([]reflection.Reflection(nil), refls...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		got := Aggregate(shuffled, set)
		require.Equal(t, want.Keys(), got.Keys())
		for key, w := range want {
			g := got[key]
			assert.Equal(t, w.Multiplicity, g.Multiplicity, key.String())
			assert.Equal(t, w.MeanIntensity, g.MeanIntensity, key.String())
			assert.Equal(t, w.MedianIntensity, g.MedianIntensity, key.String())
			assert.Equal(t, w.StdIntensity, g.StdIntensity, key.String())
			assert.Equal(t, w.MeanSigma, g.MeanSigma, key.String())
		}
	}
}

func TestMerge(t *testing.T) {
	set := symmetry.MustLookup("-1")
	a := Aggregate([]reflection.Reflection{
		withSTL(refl(1, 1, 1, 100, 10), 0.2),
		refl(-1, -1, -1, 110, 10),
		refl(2, 0, 0, 50, 5),
		refl(3, 0, 0, 30, 3), // only in A
	}, set)
	b := Aggregate([]reflection.Reflection{
		withSTL(refl(-1, -1, -1, 200, 20), 0.4),
		refl(-2, 0, 0, 90, 9),
		refl(0, 0, 7, 1, 1), // only in B
	}, set)

	res := Merge(a, b)

	require.Len(t, res.Rows, 2)
	assert.Equal(t, reflection.HKL{H: 1, K: 1, L: 1}, res.Rows[0].Index)
	assert.Equal(t, reflection.HKL{H: 2, K: 0, L: 0}, res.Rows[1].Index)

	first := res.Rows[0]
	assert.Equal(t, 2, first.First.Multiplicity)
	assert.InDelta(t, 105.0, first.First.Intensity, 1e-12)
	assert.Equal(t, 1, first.Second.Multiplicity)
	assert.InDelta(t, 200.0, first.Second.Intensity, 1e-12)
	assert.True(t, first.HasResolution)
	assert.InDelta(t, 0.3, first.Resolution, 1e-12)
	assert.False(t, res.Rows[1].HasResolution)

	assert.Equal(t, []reflection.HKL{{H: 3, K: 0, L: 0}}, res.UnmatchedFirst)
	assert.Equal(t, []reflection.HKL{{H: 0, K: 0, L: 7}}, res.UnmatchedSecond)
	for _, row := range res.Rows {
		assert.NotEqual(t, reflection.HKL{H: 3, K: 0, L: 0}, row.Index)
	}

	assert.Equal(t, 2, res.Unique())
	assert.Equal(t, 5, res.Observations())
	assert.True(t, res.HasResolution())
}

func TestMerge_Commutative(t *testing.T) {
	set := symmetry.MustLookup("mmm")
	rng := rand.New(rand.NewSource(11))
	gen := func(n int) []reflection.Reflection {
		out := make([]reflection.Reflection, n)
		for i := range out {
			out[i] = refl(rng.Intn(7)-3, rng.Intn(7)-3, rng.Intn(7)-3, rng.Float64()*100, 1)
		}
		return out
	}
	a := Aggregate(gen(150), set)
	b := Aggregate(gen(150), set)

	ab := Merge(a, b)
	ba := Merge(b, a)

	require.Equal(t, len(ab.Rows), len(ba.Rows))
	for i := range ab.Rows {
		assert.Equal(t, ab.Rows[i].Index, ba.Rows[i].Index)
		assert.Equal(t, ab.Rows[i].First, ba.Rows[i].Second)
		assert.Equal(t, ab.Rows[i].Second, ba.Rows[i].First)
	}
	assert.Equal(t, ab.UnmatchedFirst, ba.UnmatchedSecond)
	assert.Equal(t, ab.UnmatchedSecond, ba.UnmatchedFirst)
	assert.Equal(t, ab.Observations(), ba.Observations())
}

func TestMerge_Empty(t *testing.T) {
	res := Merge(Groups{}, Groups{})
	assert.Empty(t, res.Rows)
	assert.Empty(t, res.UnmatchedFirst)
	assert.Equal(t, 0, res.Observations())
}

func TestSideRatios(t *testing.T) {
	s := Side{Intensity: 10, Sigma: 4, Std: 5}
	assert.InDelta(t, 2.5, s.SignalToNoise(), 1e-12)
	assert.InDelta(t, 2.0, s.SignalToSpread(), 1e-12)

	zero := Side{Intensity: 0, Sigma: 0}
	assert.True(t, math.IsNaN(zero.SignalToNoise()))
}

func TestMedian(t *testing.T) {
	assert.True(t, math.IsNaN(Median(nil)))
	assert.Equal(t, 3.0, Median([]float64{9, 1, 3}))
	assert.Equal(t, 2.5, Median([]float64{4, 1, 3, 2}))
}

package statistics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	apperrors "hklcompare/internal/errors"
	"hklcompare/internal/merging"
	"hklcompare/internal/reflection"
)

// ScaleMode selects how the dataset-1 scale factor is obtained.
type ScaleMode string

const (
	ScaleFixed ScaleMode = "fixed"
	ScaleAuto  ScaleMode = "auto"
)

// RatioMode selects the signal-to-noise measure used by the cutoff.
type RatioMode string

const (
	// RatioSigma is mean I over mean sigma.
	RatioSigma RatioMode = "sigma"
	// RatioSpread is mean I over the standard deviation of the equivalents.
	RatioSpread RatioMode = "spread"
)

// ParseScaleMode validates a scale mode string.
func ParseScaleMode(s string) (ScaleMode, error) {
	switch m := ScaleMode(s); m {
	case ScaleFixed, ScaleAuto:
		return m, nil
	}
	return "", apperrors.NewAppValidationError(fmt.Sprintf("unknown scale mode %q", s))
}

// ParseRatioMode validates a ratio mode string.
func ParseRatioMode(s string) (RatioMode, error) {
	switch m := RatioMode(s); m {
	case RatioSigma, RatioSpread:
		return m, nil
	}
	return "", apperrors.NewAppValidationError(fmt.Sprintf("unknown ratio mode %q", s))
}

// Options configures Compute.
type Options struct {
	SigmaCutoff float64
	Scale       ScaleMode
	FixedScale  float64
	Ratio       RatioMode
}

// DefaultOptions returns cutoff 0.5 with least-squares scaling.
func DefaultOptions() Options {
	return Options{
		SigmaCutoff: 0.5,
		Scale:       ScaleAuto,
		FixedScale:  1.0,
		Ratio:       RatioSigma,
	}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.SigmaCutoff < 0 || math.IsNaN(o.SigmaCutoff) {
		return apperrors.NewAppValidationError("sigma cutoff must be >= 0")
	}
	if _, err := ParseScaleMode(string(o.Scale)); err != nil {
		return err
	}
	if _, err := ParseRatioMode(string(o.Ratio)); err != nil {
		return err
	}
	if o.Scale == ScaleFixed && (o.FixedScale <= 0 || math.IsInf(o.FixedScale, 0) || math.IsNaN(o.FixedScale)) {
		return apperrors.NewAppValidationError("fixed scale must be a positive number")
	}
	return nil
}

func (o Options) ratio(s merging.Side) float64 {
	if o.Ratio == RatioSpread {
		return s.SignalToSpread()
	}
	return s.SignalToNoise()
}

// Point is one merged row that survived the cutoff, with dataset 1 scaled.
type Point struct {
	Index         reflection.HKL
	I1, Sigma1    float64
	I2, Sigma2    float64
	Mean          float64 // (I1 + I2) / 2
	RelDiff       float64 // (I1 - I2) / Mean
	LogMean       float64 // log10(Mean), NaN when Mean <= 0
	Resolution    float64
	HasResolution bool
}

// Summary holds scalar statistics over the points.
type Summary struct {
	Count       int
	Mean1       float64
	Median1     float64
	Sum1        float64
	Mean2       float64
	Median2     float64
	Sum2        float64
	MeanRelDiff float64
	StdRelDiff  float64
	// LogCorrelation is the Pearson correlation of log10 I1 and log10 I2.
	LogCorrelation float64
}

// Result is the outcome of Compute.
type Result struct {
	Scale   float64
	Cutoff  float64
	Mode    ScaleMode
	Ratio   RatioMode
	Points  []Point
	Summary Summary
}

// Compute filters rows by the cutoff on both datasets, determines the scale,
// applies it to dataset 1 and derives per-point and summary values.
func Compute(rows []merging.Row, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	kept := make([]merging.Row, 0, len(rows))
	for _, row := range rows {
		if opts.ratio(row.First) >= opts.SigmaCutoff && opts.ratio(row.Second) >= opts.SigmaCutoff {
			kept = append(kept, row)
		}
	}

	i1 := make([]float64, len(kept))
	i2 := make([]float64, len(kept))
	for i, row := range kept {
		i1[i] = row.First.Intensity
		i2[i] = row.Second.Intensity
	}

	n1, n2 := countValid(i1), countValid(i2)
	if n1 != n2 {
		return nil, apperrors.NewDataMismatchError(n1, n2)
	}
	if n1 == 0 {
		return nil, apperrors.NewNoDataError("no data (1) after sigma cutoff").WithContext("cutoff", opts.SigmaCutoff)
	}
	if n2 == 0 {
		return nil, apperrors.NewNoDataError("no data (2) after sigma cutoff").WithContext("cutoff", opts.SigmaCutoff)
	}

	scale := opts.FixedScale
	if opts.Scale == ScaleAuto {
		var err error
		if scale, err = autoScale(i1, i2); err != nil {
			return nil, err
		}
	}

	res := &Result{
		Scale:  scale,
		Cutoff: opts.SigmaCutoff,
		Mode:   opts.Scale,
		Ratio:  opts.Ratio,
		Points: make([]Point, len(kept)),
	}
	for i, row := range kept {
		res.Points[i] = newPoint(row, scale)
	}
	res.Summary = summarize(res.Points)

	return res, nil
}

// autoScale is the least-squares factor minimising sum (k*I1 - I2)^2 over
// pairs where both intensities are finite.
func autoScale(i1, i2 []float64) (float64, error) {
	x := make([]float64, 0, len(i1))
	y := make([]float64, 0, len(i2))
	for i := range i1 {
		if isFinite(i1[i]) && isFinite(i2[i]) {
			x = append(x, i1[i])
			y = append(y, i2[i])
		}
	}

	denom := floats.Dot(x, x)
	if denom == 0 {
		return 0, apperrors.NewNoDataError("dataset 1 intensities sum to zero, cannot autoscale")
	}
	return floats.Dot(x, y) / denom, nil
}

func newPoint(row merging.Row, scale float64) Point {
	p := Point{
		Index:         row.Index,
		I1:            row.First.Intensity * scale,
		Sigma1:        row.First.Sigma * scale,
		I2:            row.Second.Intensity,
		Sigma2:        row.Second.Sigma,
		Resolution:    row.Resolution,
		HasResolution: row.HasResolution,
	}
	p.Mean = (p.I1 + p.I2) / 2
	p.RelDiff = (p.I1 - p.I2) / p.Mean
	p.LogMean = log10(p.Mean)
	return p
}

func summarize(points []Point) Summary {
	i1 := make([]float64, 0, len(points))
	i2 := make([]float64, 0, len(points))
	var rel, log1, log2 []float64
	for _, p := range points {
		i1 = append(i1, p.I1)
		i2 = append(i2, p.I2)
		if isFinite(p.RelDiff) {
			rel = append(rel, p.RelDiff)
		}
		if l1, l2 := log10(p.I1), log10(p.I2); isFinite(l1) && isFinite(l2) {
			log1 = append(log1, l1)
			log2 = append(log2, l2)
		}
	}

	s := Summary{
		Count:          len(points),
		Mean1:          stat.Mean(i1, nil),
		Median1:        merging.Median(i1),
		Sum1:           floats.Sum(i1),
		Mean2:          stat.Mean(i2, nil),
		Median2:        merging.Median(i2),
		Sum2:           floats.Sum(i2),
		MeanRelDiff:    math.NaN(),
		StdRelDiff:     math.NaN(),
		LogCorrelation: math.NaN(),
	}
	if len(rel) > 0 {
		s.MeanRelDiff, s.StdRelDiff = stat.PopMeanStdDev(rel, nil)
	}
	if len(log1) > 1 {
		s.LogCorrelation = stat.Correlation(log1, log2, nil)
	}
	return s
}

// log10 maps non-positive input to NaN instead of -Inf.
func log10(v float64) float64 {
	if !(v > 0) {
		return math.NaN()
	}
	return math.Log10(v)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func countValid(x []float64) int {
	n := 0
	for _, v := range x {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"hklcompare/internal/dataset"
	apperrors "hklcompare/internal/errors"
	"hklcompare/internal/infrastructure"
	"hklcompare/internal/merging"
	"hklcompare/internal/reflection"
	"hklcompare/internal/statistics"
	"hklcompare/internal/symmetry"
)

// Slots holds one value per dataset.
type Slots[T any] [2]T

// SessionOptions configures NewSession. An empty Symmetry selects -1 and
// empty labels become "1" and "2".
type SessionOptions struct {
	Symmetry string
	Labels   Slots[string]
	Parse    reflection.ParseOptions
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Metrics  *infrastructure.BusinessMetrics
}

// Session is the comparison workbench: two dataset slots, the selected
// Laue class and the current merge. All methods are safe for concurrent use.
type Session struct {
	mu sync.Mutex

	parser   *reflection.Parser
	datasets Slots[*dataset.Dataset]
	set      *symmetry.OperatorSet
	merged   *merging.Result

	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *infrastructure.BusinessMetrics
}

// NewSession creates an empty session.
func NewSession(opts SessionOptions) (*Session, error) {
	label := opts.Symmetry
	if label == "" {
		label = "-1"
	}
	set, err := symmetry.Lookup(label)
	if err != nil {
		return nil, err
	}

	logger := infrastructure.WithComponent(opts.Logger, "comparison_session")
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(infrastructure.InstrumentationName)
	}

	labels := opts.Labels
	for i := range labels {
		if labels[i] == "" {
			labels[i] = fmt.Sprint(i + 1)
		}
	}

	return &Session{
		parser:   reflection.NewParser(opts.Parse, logger),
		datasets: Slots[*dataset.Dataset]{dataset.New(1, labels[0]), dataset.New(2, labels[1])},
		set:      set,
		logger:   logger,
		tracer:   tracer,
		metrics:  opts.Metrics,
	}, nil
}

func (s *Session) slot(n int) (*dataset.Dataset, error) {
	if n != 1 && n != 2 {
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("dataset slot must be 1 or 2, got %d", n))
	}
	return s.datasets[n-1], nil
}

// Load reads path into slot n (1 or 2). Any existing merge is discarded.
func (s *Session) Load(ctx context.Context, n int, path string) (dataset.Info, error) {
	ds, err := s.slot(n)
	if err != nil {
		return dataset.Info{}, err
	}
	format, err := reflection.FormatFromPath(path)
	if err != nil {
		return dataset.Info{}, err
	}
	if err := ds.BeginLoad(path, format); err != nil {
		return dataset.Info{}, err
	}

	s.invalidate()

	ctx, span := s.tracer.Start(ctx, "comparison.load", trace.WithAttributes(
		attribute.Int("dataset", n),
		attribute.String("format", string(format)),
	))
	defer span.End()

	start := time.Now()
	refls, err := s.parser.ParseFile(ctx, path)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		_ = ds.FailLoad(err)
		s.logger.ErrorContext(ctx, "dataset load failed",
			slog.Int("dataset", n),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return ds.Snapshot(), err
	}
	if err := ds.CompleteLoad(refls); err != nil {
		return ds.Snapshot(), err
	}

	s.metrics.RecordParsed(ctx, string(format), len(refls))
	span.SetAttributes(attribute.Int("reflections", len(refls)))
	s.logger.InfoContext(ctx, "dataset loaded",
		slog.Int("dataset", n),
		slog.String("path", path),
		slog.String("format", string(format)),
		slog.Int("reflections", len(refls)),
		slog.Duration("duration", time.Since(start)))

	return ds.Snapshot(), nil
}

// LoadBoth loads the two files concurrently and waits for both.
func (s *Session) LoadBoth(ctx context.Context, path1, path2 string) error {
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range []string{path1, path2} {
		g.Go(func() error {
			_, err := s.Load(gctx, i+1, p)
			return err
		})
	}
	return g.Wait()
}

// SetSymmetry selects a Laue class. When both datasets are loaded the merge
// is recomputed immediately.
func (s *Session) SetSymmetry(ctx context.Context, label string) error {
	set, err := symmetry.Lookup(label)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.set = set
	s.merged = nil
	for _, ds := range s.datasets {
		ds.Unmerge()
	}
	s.logger.InfoContext(ctx, "symmetry selected", slog.String("symmetry", label))

	if s.datasets[0].Ready() && s.datasets[1].Ready() {
		_, err := s.mergeLocked(ctx)
		return err
	}
	return nil
}

// Symmetry returns the selected Laue class label.
func (s *Session) Symmetry() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Label
}

// Merge reduces both datasets with the selected symmetry and pairs their
// groups. Both datasets must be loaded.
func (s *Session) Merge(ctx context.Context) (*merging.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mergeLocked(ctx)
}

func (s *Session) mergeLocked(ctx context.Context) (*merging.Result, error) {
	for i, ds := range s.datasets {
		if !ds.Ready() {
			return nil, apperrors.NewStateError(fmt.Sprintf("dataset %d is %s, load both datasets before merging", i+1, ds.Status()))
		}
	}

	_, span := s.tracer.Start(ctx, "comparison.reduce", trace.WithAttributes(attribute.String("symmetry", s.set.Label)))
	var groups Slots[merging.Groups]
	var g errgroup.Group
	for i, ds := range s.datasets {
		g.Go(func() error {
			var err error
			groups[i], err = ds.Reduce(s.set)
			return err
		})
	}
	err := g.Wait()
	span.End()
	if err != nil {
		return nil, err
	}

	_, span = s.tracer.Start(ctx, "comparison.merge")
	res := merging.Merge(groups[0], groups[1])
	span.SetAttributes(
		attribute.Int("rows", len(res.Rows)),
		attribute.Int("unmatched_1", len(res.UnmatchedFirst)),
		attribute.Int("unmatched_2", len(res.UnmatchedSecond)),
	)
	span.End()

	for _, ds := range s.datasets {
		if err := ds.MarkMerged(); err != nil {
			return nil, err
		}
	}
	s.merged = &res
	s.reportUnmatched(ctx, res)

	s.logger.InfoContext(ctx, "datasets merged",
		slog.String("symmetry", s.set.Label),
		slog.Int("unique", res.Unique()),
		slog.Int("observations", res.Observations()))
	return s.merged, nil
}

// reportUnmatched logs canonical indices present in only one dataset.
func (s *Session) reportUnmatched(ctx context.Context, res merging.Result) {
	s.metrics.RecordUnmatched(ctx, "1", len(res.UnmatchedFirst))
	s.metrics.RecordUnmatched(ctx, "2", len(res.UnmatchedSecond))
	if len(res.UnmatchedFirst)+len(res.UnmatchedSecond) == 0 {
		return
	}

	s.logger.InfoContext(ctx, "unmatched canonical indices",
		slog.Int("dataset1_only", len(res.UnmatchedFirst)),
		slog.Int("dataset2_only", len(res.UnmatchedSecond)))
	for slot, keys := range [][]reflection.HKL{res.UnmatchedFirst, res.UnmatchedSecond} {
		for _, key := range keys {
			s.logger.DebugContext(ctx, "unmatched index",
				slog.Int("dataset", slot+1),
				slog.String("hkl", key.String()))
		}
	}
}

// Merged returns the current merge, or nil.
func (s *Session) Merged() *merging.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.merged
}

// Statistics applies the cutoff and scale to the current merge, merging
// first if needed.
func (s *Session) Statistics(ctx context.Context, opts statistics.Options) (*statistics.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := s.merged
	if merged == nil {
		var err error
		if merged, err = s.mergeLocked(ctx); err != nil {
			return nil, err
		}
	}

	ctx, span := s.tracer.Start(ctx, "comparison.statistics", trace.WithAttributes(
		attribute.Float64("cutoff", opts.SigmaCutoff),
		attribute.String("scale_mode", string(opts.Scale)),
	))
	defer span.End()

	res, err := statistics.Compute(merged.Rows, opts)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		if apperrors.IsType(err, apperrors.ErrTypeDataMismatch) {
			s.logger.ErrorContext(ctx, "merged rows out of alignment",
				slog.Int("rows", len(merged.Rows)),
				slog.String("error", err.Error()))
		}
		return nil, err
	}
	span.SetAttributes(attribute.Float64("scale", res.Scale), attribute.Int("points", len(res.Points)))
	return res, nil
}

// Counts are the display totals of the workbench.
type Counts struct {
	Reflections  Slots[int]
	Unique       int
	Observations int
}

// Counts returns reflections per dataset and, once merged, the number of
// unique groups and merged observations.
func (s *Session) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := Counts{Reflections: Slots[int]{s.datasets[0].Count(), s.datasets[1].Count()}}
	if s.merged != nil {
		c.Unique = s.merged.Unique()
		c.Observations = s.merged.Observations()
	}
	return c
}

// Datasets returns a snapshot of both slots.
func (s *Session) Datasets() Slots[dataset.Info] {
	return Slots[dataset.Info]{s.datasets[0].Snapshot(), s.datasets[1].Snapshot()}
}

// Clear empties both slots and drops the merge.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ds := range s.datasets {
		ds.Reset()
	}
	s.merged = nil
}

func (s *Session) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.merged = nil
	for _, ds := range s.datasets {
		ds.Unmerge()
	}
}

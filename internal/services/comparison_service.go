package services

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"hklcompare/internal/config"
	"hklcompare/internal/dataset"
	"hklcompare/internal/infrastructure"
	"hklcompare/internal/merging"
	"hklcompare/internal/reflection"
	"hklcompare/internal/statistics"
)

// Comparison statuses
const (
	ComparisonCompleted = "completed"
	ComparisonFailed    = "failed"
)

// CompareRequest describes one comparison of two reflection files.
type CompareRequest struct {
	File1, File2   string
	Label1, Label2 string
	Symmetry       string
	Parse          reflection.ParseOptions
	Statistics     statistics.Options
}

// Comparison is a stored comparison outcome. Stats is nil when the
// statistics step failed; Error then holds the reason.
type Comparison struct {
	ID        string
	Status    string
	CreatedAt time.Time
	Duration  time.Duration
	Request   CompareRequest
	Datasets  Slots[dataset.Info]
	Merge     *merging.Result
	Stats     *statistics.Result
	Error     string
}

// ComparisonService runs comparisons and keeps their results.
type ComparisonService struct {
	store    *ComparisonStore
	defaults config.ComparisonConfig
	base     *slog.Logger
	logger   *slog.Logger
	tracer   trace.Tracer
	metrics  *infrastructure.BusinessMetrics
}

// NewComparisonService creates a comparison service. Nil telemetry arguments
// fall back to the global logger and tracer and no metrics.
func NewComparisonService(store *ComparisonStore, defaults config.ComparisonConfig, logger *slog.Logger, tracer trace.Tracer, metrics *infrastructure.BusinessMetrics) *ComparisonService {
	if store == nil {
		store = NewComparisonStore(config.DefaultStoreCapacity)
	}
	return &ComparisonService{
		store:    store,
		defaults: defaults,
		base:     logger,
		logger:   infrastructure.WithComponent(logger, "comparison_service"),
		tracer:   tracer,
		metrics:  metrics,
	}
}

// DefaultRequest returns a request filled from the configured defaults.
func (cs *ComparisonService) DefaultRequest() CompareRequest {
	return RequestFromConfig(cs.defaults)
}

// RequestFromConfig builds a request from comparison defaults.
func RequestFromConfig(c config.ComparisonConfig) CompareRequest {
	opts := statistics.Options{
		SigmaCutoff: c.SigmaCutoff,
		Scale:       statistics.ScaleFixed,
		FixedScale:  c.Scale,
		Ratio:       statistics.RatioMode(c.Ratio),
	}
	if c.AutoScale {
		opts.Scale = statistics.ScaleAuto
	}
	return CompareRequest{
		Label1:   c.Label1,
		Label2:   c.Label2,
		Symmetry: c.Symmetry,
		Parse: reflection.ParseOptions{
			UsedOnly:       c.UsedOnly,
			KeepResolution: c.KeepResolution,
		},
		Statistics: opts,
	}
}

// Compare loads both files, merges them and computes statistics. Load and
// merge failures are returned without storing anything. A statistics
// failure is stored as a failed comparison and returned along with the error.
func (cs *ComparisonService) Compare(ctx context.Context, req CompareRequest) (*Comparison, error) {
	start := time.Now()
	ctx = infrastructure.EnsureTraceID(ctx)

	if err := req.Statistics.Validate(); err != nil {
		return nil, err
	}

	sess, err := NewSession(SessionOptions{
		Symmetry: req.Symmetry,
		Labels:   Slots[string]{req.Label1, req.Label2},
		Parse:    req.Parse,
		Logger:   cs.base,
		Tracer:   cs.tracer,
		Metrics:  cs.metrics,
	})
	if err != nil {
		return nil, err
	}

	if err := sess.LoadBoth(ctx, req.File1, req.File2); err != nil {
		cs.metrics.RecordComparison(ctx, ComparisonFailed, time.Since(start))
		return nil, err
	}
	merged, err := sess.Merge(ctx)
	if err != nil {
		cs.metrics.RecordComparison(ctx, ComparisonFailed, time.Since(start))
		return nil, err
	}

	c := &Comparison{
		Status:    ComparisonCompleted,
		CreatedAt: start,
		Request:   req,
		Datasets:  sess.Datasets(),
		Merge:     merged,
	}

	stats, statsErr := sess.Statistics(ctx, req.Statistics)
	if statsErr != nil {
		c.Status = ComparisonFailed
		c.Error = statsErr.Error()
	}
	c.Stats = stats
	c.Duration = time.Since(start)
	cs.store.Put(c)
	cs.metrics.RecordComparison(ctx, c.Status, c.Duration)

	log := cs.logger.With(slog.String("comparison_id", c.ID))
	if statsErr != nil {
		log.WarnContext(ctx, "comparison statistics failed", slog.String("error", statsErr.Error()))
		return c, statsErr
	}
	log.InfoContext(ctx, "comparison completed",
		slog.String("symmetry", req.Symmetry),
		slog.Int("points", len(stats.Points)),
		slog.Float64("scale", stats.Scale),
		slog.Duration("duration", c.Duration))
	return c, nil
}

// Get returns a stored comparison.
func (cs *ComparisonService) Get(id string) (*Comparison, error) {
	return cs.store.Get(id)
}

// List returns stored comparisons, newest first.
func (cs *ComparisonService) List() []*Comparison {
	return cs.store.List()
}

// Delete removes a stored comparison.
func (cs *ComparisonService) Delete(id string) error {
	return cs.store.Delete(id)
}

package http

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"hklcompare/internal/config"
	apierrors "hklcompare/internal/errors"
	"hklcompare/internal/exporter"
	"hklcompare/internal/middleware"
	"hklcompare/internal/services"
	"hklcompare/internal/statistics"
	api "hklcompare/pkg/contracts/api/v1"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	maxHistogramBins = 10000
	maxPageSize      = 1 << 20
)

// ComparisonHandler handles comparison requests with RFC 7807 errors
type ComparisonHandler struct {
	service      ComparisonServiceInterface
	paths        *config.Paths
	validator    *middleware.Validator
	errorHandler *apierrors.ErrorHandler
	bins         int
	reportPrefix string
	logger       *slog.Logger
}

// NewComparisonHandler creates a comparison handler. Request file names are
// resolved under paths.DataDir.
func NewComparisonHandler(service ComparisonServiceInterface, paths *config.Paths, cfg config.ComparisonConfig,
	validator *middleware.Validator, errorHandler *apierrors.ErrorHandler, logger *slog.Logger) *ComparisonHandler {
	return &ComparisonHandler{
		service:      service,
		paths:        paths,
		validator:    validator,
		errorHandler: errorHandler,
		bins:         cfg.HistogramBins,
		reportPrefix: cfg.ReportPrefix,
		logger:       logger.With(slog.String("component", "comparison_handler")),
	}
}

// Routes returns the comparison routes
func (h *ComparisonHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(middleware.ContentTypeValidator("application/json")).Post("/", h.Create)
	r.Get("/", h.List)

	r.Route("/{id}", func(r chi.Router) {
		r.Use(h.ComparisonCtx)
		r.Get("/", h.Get)
		r.Delete("/", h.Delete)
		r.Get("/points", h.Points)
		r.Get("/unmatched", h.Unmatched)
		r.Get("/export.{format}", h.Export)
	})

	return r
}

type comparisonKey struct{}

// ComparisonCtx loads the comparison named by {id} into the request context.
func (h *ComparisonHandler) ComparisonCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := h.service.Get(chi.URLParam(r, "id"))
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		ctx := contextWithComparison(r.Context(), c)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Create handles POST /api/v1/comparisons
func (h *ComparisonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body api.CompareRequest
	if err := h.validator.DecodeJSON(r, &body); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	req, err := h.buildRequest(body)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	c, err := h.service.Compare(r.Context(), req)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = apierrors.NewNotFoundError("reflection file")
		}
		var appErr *apierrors.AppError
		if c != nil && errors.As(err, &appErr) {
			appErr.WithContext("comparison_id", c.ID)
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Location", apiPrefix+c.ID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toComparison(c))
}

// buildRequest overlays the body on the configured defaults.
func (h *ComparisonHandler) buildRequest(body api.CompareRequest) (services.CompareRequest, error) {
	req := h.service.DefaultRequest()

	var err error
	if req.File1, err = h.paths.DataPath(body.File1); err != nil {
		return req, err
	}
	if req.File2, err = h.paths.DataPath(body.File2); err != nil {
		return req, err
	}

	if body.Label1 != "" {
		req.Label1 = body.Label1
	}
	if body.Label2 != "" {
		req.Label2 = body.Label2
	}
	if body.Symmetry != "" {
		req.Symmetry = body.Symmetry
	}
	if body.SigmaCutoff != nil {
		req.Statistics.SigmaCutoff = *body.SigmaCutoff
	}
	if body.Scale != nil {
		if *body.Scale == 0 {
			req.Statistics.Scale = statistics.ScaleAuto
		} else {
			req.Statistics.Scale = statistics.ScaleFixed
			req.Statistics.FixedScale = *body.Scale
		}
	}
	if body.Ratio != "" {
		req.Statistics.Ratio = statistics.RatioMode(body.Ratio)
	}
	if body.UsedOnly != nil {
		req.Parse.UsedOnly = *body.UsedOnly
	}
	if body.KeepResolution != nil {
		req.Parse.KeepResolution = *body.KeepResolution
	}
	return req, nil
}

// List handles GET /api/v1/comparisons
func (h *ComparisonHandler) List(w http.ResponseWriter, r *http.Request) {
	stored := h.service.List()
	out := api.ComparisonList{Comparisons: make([]api.Comparison, 0, len(stored)), Count: len(stored)}
	for _, c := range stored {
		out.Comparisons = append(out.Comparisons, toComparison(c))
	}
	render.JSON(w, r, out)
}

// Get handles GET /api/v1/comparisons/{id}
func (h *ComparisonHandler) Get(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, toComparison(comparisonFromContext(r.Context())))
}

// Delete handles DELETE /api/v1/comparisons/{id}
func (h *ComparisonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	c := comparisonFromContext(r.Context())
	if err := h.service.Delete(c.ID); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.logger.InfoContext(r.Context(), "comparison deleted", slog.String("comparison_id", c.ID))
	w.WriteHeader(http.StatusNoContent)
}

// Points handles GET /api/v1/comparisons/{id}/points?offset=&limit=&bins=
func (h *ComparisonHandler) Points(w http.ResponseWriter, r *http.Request) {
	c := comparisonFromContext(r.Context())
	if c.Stats == nil {
		h.errorHandler.HandleError(w, r, noStatistics(c))
		return
	}
	total := len(c.Stats.Points)

	offset, err := middleware.QueryInt(r, "offset", 0, total, 0)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	limit, err := middleware.QueryInt(r, "limit", 1, maxPageSize, max(total, 1))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	bins, err := middleware.QueryInt(r, "bins", 1, maxHistogramBins, h.bins)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	end := min(offset+limit, total)
	out := api.Points{
		ID:               c.ID,
		Total:            total,
		Offset:           offset,
		Points:           make([]api.Point, 0, end-offset),
		RelDiffHistogram: toHistogram(c.Stats.RelDiffHistogram(bins)),
		LogMeanHistogram: toHistogram(c.Stats.LogMeanHistogram(bins)),
	}
	for _, p := range c.Stats.Points[offset:end] {
		out.Points = append(out.Points, toPoint(p))
	}
	render.JSON(w, r, out)
}

// Unmatched handles GET /api/v1/comparisons/{id}/unmatched
func (h *ComparisonHandler) Unmatched(w http.ResponseWriter, r *http.Request) {
	c := comparisonFromContext(r.Context())
	out := api.Unmatched{ID: c.ID, Dataset1: [][3]int{}, Dataset2: [][3]int{}}
	if c.Merge != nil {
		out.Dataset1 = toIndices(c.Merge.UnmatchedFirst)
		out.Dataset2 = toIndices(c.Merge.UnmatchedSecond)
	}
	render.JSON(w, r, out)
}

// Export handles GET /api/v1/comparisons/{id}/export.{csv|xlsx}
func (h *ComparisonHandler) Export(w http.ResponseWriter, r *http.Request) {
	c := comparisonFromContext(r.Context())
	if c.Stats == nil {
		h.errorHandler.HandleError(w, r, noStatistics(c))
		return
	}

	report := exporter.Report{
		Label1:   c.Request.Label1,
		Label2:   c.Request.Label2,
		Symmetry: c.Request.Symmetry,
		Merge:    c.Merge,
		Stats:    c.Stats,
	}
	base := report.BaseName(h.reportPrefix)

	var (
		buf         bytes.Buffer
		contentType string
		filename    string
		err         error
	)
	switch format := chi.URLParam(r, "format"); format {
	case "csv":
		contentType, filename = contentTypeCSV, base+"_points.csv"
		err = exporter.WriteCSVTo(&buf, report.PointsTable())
	case "xlsx":
		contentType, filename = contentTypeXLSX, base+".xlsx"
		err = exporter.WriteWorkbook(&buf, report)
	default:
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format", "format must be one of: csv, xlsx"))
		return
	}
	if err != nil {
		h.errorHandler.HandleError(w, r, fmt.Errorf("export comparison: %w", err))
		return
	}

	h.logger.InfoContext(r.Context(), "comparison exported",
		slog.String("comparison_id", c.ID),
		slog.String("filename", filename),
		slog.Int("bytes", buf.Len()))

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func noStatistics(c *services.Comparison) error {
	return apierrors.NewStateError("comparison has no statistics").
		WithContext("comparison_id", c.ID).
		WithContext("reason", c.Error)
}

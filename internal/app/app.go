package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"hklcompare/internal/config"
	apierrors "hklcompare/internal/errors"
	"hklcompare/internal/files"
	"hklcompare/internal/infrastructure"
	customMiddleware "hklcompare/internal/middleware"
	"hklcompare/internal/services"
	handlers "hklcompare/internal/transport/http"
	"hklcompare/internal/validation"
	"hklcompare/pkg/contracts"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	Services      *ServiceContainer
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.BusinessMetrics

	listener net.Listener
}

// ServiceContainer holds all application services
type ServiceContainer struct {
	Comparison *services.ComparisonService
	Health     *services.HealthService
	Store      *services.ComparisonStore
}

// NewApplication wires the services, router and server for cfg. A nil
// logger initializes the process-wide logger from cfg.Logging.
func NewApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if cfg == nil {
		return nil, apierrors.NewConfigError("configuration is required", nil)
	}
	if logger == nil {
		var err error
		if logger, err = infrastructure.InitializeLogger(cfg.Logging); err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	logger.Info("application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version))

	paths, err := config.ResolvePaths(cfg.Paths, "")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution(logger)

	providers := infrastructure.NoopProviders(logger)
	if cfg.Telemetry.Enabled {
		otelCfg := infrastructure.OTelConfigFrom(cfg.Telemetry)
		if providers, err = infrastructure.InitializeOTel(otelCfg, logger); err != nil {
			return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
		}
	}
	metrics, err := infrastructure.CreateBusinessMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: providers,
		Metrics:       metrics,
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() {
	store := services.NewComparisonStore(a.Config.Server.StoreCapacity)
	a.Services = &ServiceContainer{
		Store: store,
		Comparison: services.NewComparisonService(store, a.Config.Comparison, a.Logger,
			a.OTelProviders.Tracer, a.Metrics),
		Health: services.NewHealthService(contracts.Version, a.Paths, store, a.Logger),
	}
}

// setupRouter configures the Chi router with middleware and routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	errorHandler := apierrors.NewErrorHandler(a.Logger, a.Config.Logging.Development)
	errorMiddleware := apierrors.NewErrorMiddleware(errorHandler, a.Logger)

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.NewTelemetry(a.OTelProviders.Tracer, a.Metrics).Handler)
	r.Use(errorMiddleware.Handler)
	r.Use(customMiddleware.SecurityHeaders)

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	healthHandler := handlers.NewHealthHandler(a.Services.Health, a.Logger)
	r.Get("/healthz", healthHandler.LivenessCheck)
	r.Get("/readyz", healthHandler.ReadinessCheck)
	if a.OTelProviders.PrometheusHTTP != nil {
		r.Method(http.MethodGet, "/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.setupAPIRoutes(r, errorHandler, healthHandler)

	a.Router = r
}

// setupAPIRoutes mounts the versioned JSON API.
func (a *Application) setupAPIRoutes(r chi.Router, errorHandler *apierrors.ErrorHandler, healthHandler *handlers.HealthHandler) {
	comparisonHandler := handlers.NewComparisonHandler(
		a.Services.Comparison,
		a.Paths,
		a.Config.Comparison,
		customMiddleware.NewValidator(a.Logger),
		errorHandler,
		a.Logger,
	)
	symmetryHandler := handlers.NewSymmetryHandler(a.Config.Comparison.Symmetry)
	filesHandler := handlers.NewFilesHandler(files.NewDiscovery(a.Paths.DataDir), errorHandler, a.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.BodyLimit(a.Config.Server.MaxBodyBytes))
		if a.Config.RateLimit.Enabled {
			limiter := customMiddleware.NewRateLimiter(a.Config.RateLimit.RPS, a.Config.RateLimit.Burst, errorHandler, a.Logger)
			r.Use(limiter.Handler)
		}

		r.Get("/version", healthHandler.Version)
		r.Get("/symmetry", symmetryHandler.List)
		r.Get("/files", filesHandler.List)
		r.Mount("/comparisons", comparisonHandler.Routes())
	})
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(a.Logger.Handler(), slog.LevelError),
	}
}

// Addr returns the bound address once started, else the configured one.
func (a *Application) Addr() string {
	if a.listener != nil {
		return a.listener.Addr().String()
	}
	return a.Server.Addr
}

// Start binds the listener and serves in the background. A serve failure
// calls cancel so Run can shut down.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.Server.Addr, err)
	}
	a.listener = ln

	go func() {
		if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	if err := a.performStartupHealthCheck(ctx); err != nil {
		a.Logger.WarnContext(ctx, "startup health check warnings", slog.String("warnings", err.Error()))
	}

	a.Logger.InfoContext(ctx, "application started",
		slog.String("address", a.Addr()),
		slog.String("data_dir", a.Paths.DataDir),
		slog.String("level", a.Config.Logging.Level))
	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
		a.Logger.ErrorContext(ctx, "error shutting down OpenTelemetry", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "application shutdown complete")
	return nil
}

// Run runs the application until interrupted or the server fails.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}

// performStartupHealthCheck checks the data directory exists and the report
// and log directories are writable.
func (a *Application) performStartupHealthCheck(ctx context.Context) error {
	validator := validation.NewFileValidator(a.Logger)
	var warnings []string

	if err := validator.ValidateInputDirectory(a.Paths.DataDir); err != nil {
		warnings = append(warnings, fmt.Sprintf("data directory not found: %s", a.Paths.DataDir))
	}
	for _, dir := range []string{a.Paths.ReportsDir, a.Paths.LogsDir} {
		if err := validator.ValidateOutputDirectory(dir); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	if len(warnings) > 0 {
		return fmt.Errorf("startup health check: %s", strings.Join(warnings, "; "))
	}

	a.Logger.InfoContext(ctx, "startup health check passed")
	return nil
}

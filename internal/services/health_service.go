package services

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"hklcompare/internal/config"
	"hklcompare/internal/symmetry"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	paths     *config.Paths
	store     *ComparisonStore
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Runtime   map[string]interface{}   `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a health service. paths and store may be nil.
func NewHealthService(version string, paths *config.Paths, store *ComparisonStore, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		paths:     paths,
		store:     store,
		startTime: time.Now(),
		logger:    logger,
	}
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// ReadinessCheck reports whether the data directory and symmetry registry
// are usable.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services: map[string]ServiceHealth{
			"data":     hs.checkDataHealth(),
			"symmetry": checkSymmetryHealth(),
		},
	}
	if hs.store != nil {
		status.Runtime = map[string]interface{}{"stored_comparisons": hs.store.Len()}
	}

	for name, sh := range status.Services {
		if sh.Status != "ready" {
			status.Status = "not_ready"
			hs.logger.WarnContext(ctx, "service not ready",
				slog.String("service", name),
				slog.String("message", sh.Message))
		}
	}
	return status
}

func (hs *HealthService) checkDataHealth() ServiceHealth {
	if hs.paths == nil {
		return ServiceHealth{Status: "not_ready", Message: "paths not configured"}
	}
	info, err := os.Stat(hs.paths.DataDir)
	if err != nil {
		return ServiceHealth{Status: "not_ready", Message: err.Error()}
	}
	if !info.IsDir() {
		return ServiceHealth{Status: "not_ready", Message: hs.paths.DataDir + " is not a directory"}
	}
	return ServiceHealth{Status: "ready"}
}

func checkSymmetryHealth() ServiceHealth {
	if len(symmetry.Labels()) == 0 {
		return ServiceHealth{Status: "not_ready", Message: "no Laue classes registered"}
	}
	return ServiceHealth{Status: "ready"}
}

package http

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hklcompare/internal/config"
	"hklcompare/internal/services"
	"hklcompare/internal/shared/testutil"
	"hklcompare/pkg/contracts"
	api "hklcompare/pkg/contracts/api/v1"
)

func TestHealthHandler(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	ready := newTestPaths(t)
	missing := &config.Paths{DataDir: filepath.Join(t.TempDir(), "absent")}

	tests := []struct {
		name       string
		paths      *config.Paths
		call       func(h *HealthHandler) http.HandlerFunc
		wantStatus int
		wantBody   string
	}{
		{name: "liveness", paths: ready, call: func(h *HealthHandler) http.HandlerFunc { return h.LivenessCheck }, wantStatus: http.StatusOK, wantBody: `"alive"`},
		{name: "ready", paths: ready, call: func(h *HealthHandler) http.HandlerFunc { return h.ReadinessCheck }, wantStatus: http.StatusOK, wantBody: `"ready"`},
		{name: "not ready", paths: missing, call: func(h *HealthHandler) http.HandlerFunc { return h.ReadinessCheck }, wantStatus: http.StatusServiceUnavailable, wantBody: `"not_ready"`},
		{name: "version", paths: ready, call: func(h *HealthHandler) http.HandlerFunc { return h.Version }, wantStatus: http.StatusOK, wantBody: contracts.Version},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := services.NewHealthService(contracts.Version, tt.paths, services.NewComparisonStore(4), logger)
			h := NewHealthHandler(svc, logger)

			rec := httptest.NewRecorder()
			tt.call(h)(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestSymmetryHandler_List(t *testing.T) {
	rec := httptest.NewRecorder()
	NewSymmetryHandler("mmm").List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/symmetry", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	out := decode[api.SymmetryList](t, rec)
	assert.Equal(t, "mmm", out.Default)
	require.Len(t, out.Classes, 12)

	orders := map[string]int{}
	for _, c := range out.Classes {
		orders[c.Label] = c.Order
	}
	assert.Equal(t, 2, orders["-1"])
	assert.Equal(t, 8, orders["mmm"])
	assert.Equal(t, 48, orders["m-3m"])
}

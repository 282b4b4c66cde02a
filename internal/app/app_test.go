package app

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hklcompare/internal/config"
	"hklcompare/internal/shared/testutil"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths = config.PathsConfig{
		DataDir:    filepath.Join(dir, "data"),
		ReportsDir: filepath.Join(dir, "reports"),
		LogsDir:    filepath.Join(dir, "logs"),
	}
	cfg.Server.Port = 0
	cfg.Server.ShutdownTimeout = 5 * time.Second
	cfg.RateLimit.Enabled = false
	return cfg
}

func writeData(t *testing.T, cfg *config.Config) {
	t.Helper()
	require.NoError(t, mkdir(cfg.Paths.DataDir))
	testutil.WriteFixture(t, cfg.Paths.DataDir, "a.hkl", testutil.SHELX([]testutil.Row{
		{H: 1, K: 0, L: 0, I: 10, Sigma: 1},
		{H: 0, K: 2, L: 0, I: 20, Sigma: 1},
	}))
	testutil.WriteFixture(t, cfg.Paths.DataDir, "b.hkl", testutil.SHELX([]testutil.Row{
		{H: -1, K: 0, L: 0, I: 30, Sigma: 1},
		{H: 0, K: -2, L: 0, I: 60, Sigma: 1},
	}))
}

func newTestApp(t *testing.T, cfg *config.Config) *Application {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	a, err := NewApplication(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.OTelProviders.Shutdown(context.Background()) })
	return a
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestNewApplication_Routes(t *testing.T) {
	cfg := testConfig(t)
	writeData(t, cfg)
	a := newTestApp(t, cfg)

	srv := httptest.NewServer(a.Router)
	defer srv.Close()

	resp, body := get(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"alive"`)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))

	resp, _ = get(t, srv, "/readyz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = get(t, srv, "/api/v1/symmetry")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"m-3m"`)

	resp, body = get(t, srv, "/api/v1/files")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"a.hkl"`)
	assert.Contains(t, body, `"total":2`)

	post, err := http.Post(srv.URL+"/api/v1/comparisons", "application/json",
		strings.NewReader(`{"file1":"a.hkl","file2":"b.hkl","sigma_cutoff":0}`))
	require.NoError(t, err)
	created, _ := io.ReadAll(post.Body)
	post.Body.Close()
	require.Equal(t, http.StatusCreated, post.StatusCode, string(created))
	assert.Contains(t, string(created), `"scale":3`)

	resp, body = get(t, srv, "/nowhere")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "/errors/not-found")

	resp, body = get(t, srv, "/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, "comparisons_total")
	assert.Contains(t, body, "go_goroutines")
}

func TestNewApplication_TelemetryDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Telemetry.Enabled = false
	a := newTestApp(t, cfg)

	srv := httptest.NewServer(a.Router)
	defer srv.Close()

	resp, _ := get(t, srv, "/metrics")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = get(t, srv, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, "data dir was never created")
}

func TestNewApplication_RateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 0.1, Burst: 1}
	a := newTestApp(t, cfg)

	srv := httptest.NewServer(a.Router)
	defer srv.Close()

	first, _ := get(t, srv, "/api/v1/symmetry")
	second, _ := get(t, srv, "/api/v1/symmetry")
	health, _ := get(t, srv, "/healthz")

	assert.Equal(t, http.StatusOK, first.StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
	assert.Equal(t, http.StatusOK, health.StatusCode, "health endpoints are not limited")
}

func TestNewApplication_NilConfig(t *testing.T) {
	_, err := NewApplication(nil, nil)
	assert.Error(t, err)
}

func TestApplication_StartStop(t *testing.T) {
	cfg := testConfig(t)
	writeData(t, cfg)
	a := newTestApp(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, a.Start(ctx, cancel))

	_, port, err := net.SplitHostPort(a.Addr())
	require.NoError(t, err)
	url := "http://127.0.0.1:" + port + "/healthz"

	resp, err := http.Get(url)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, a.Stop(context.Background()))
	_, err = http.Get(url)
	assert.Error(t, err)
}

func TestApplication_createServer(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.Port = 9090
	a := newTestApp(t, cfg)

	assert.Equal(t, ":9090", a.Server.Addr)
	assert.Equal(t, cfg.Server.ReadTimeout, a.Server.ReadTimeout)
	assert.Equal(t, cfg.Server.MaxHeaderBytes, a.Server.MaxHeaderBytes)
	assert.Equal(t, ":9090", a.Addr())
}

func TestApplication_performStartupHealthCheck(t *testing.T) {
	cfg := testConfig(t)
	a := newTestApp(t, cfg)

	err := a.performStartupHealthCheck(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data directory not found")

	writeData(t, cfg)
	assert.NoError(t, a.performStartupHealthCheck(context.Background()))
}

func mkdir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

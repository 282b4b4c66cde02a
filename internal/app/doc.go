// Package app wires the comparison server together.
//
// NewApplication resolves paths, initializes telemetry, builds the services
// and mounts the router:
//
//	/healthz, /readyz     liveness and readiness
//	/metrics              Prometheus exposition (when telemetry is enabled)
//	/api/v1/...           JSON API, see internal/transport/http
//
// Run serves until SIGINT or SIGTERM and then shuts down gracefully.
package app

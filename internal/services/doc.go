// Package services orchestrates comparisons of reflection datasets.
//
// Session is the workbench: two dataset slots, a selected Laue class, the
// current merge and the statistics derived from it. ComparisonService runs a
// whole comparison in one call and keeps the result in a bounded in-memory
// ComparisonStore. HealthService backs the liveness and readiness probes.
//
// Services take a *slog.Logger, an OpenTelemetry tracer and business
// metrics at construction; nil values fall back to globals or no-ops.
package services

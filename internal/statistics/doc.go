// Package statistics turns merged rows into the comparison result: the
// sigma-cutoff filter (applied to both datasets), the dataset-1 scale factor,
// per-reflection mean, relative difference and log10 mean, a scalar summary
// and histogram helpers for the distribution panels.
//
// Non-positive means and zero-over-zero ratios yield NaN rather than errors;
// summaries and histograms skip them.
package statistics

// Package exporter writes comparison reports.
//
// A Report bundles the merge result and statistics of one comparison. It
// renders as CSV tables (points and unmatched indices) through CSVWriter or
// WriteCSVTo, and as an xlsx workbook through WriteWorkbook. File names
// follow BaseName:
//
//	compare_Mo_vs_Cu_c0.5_s1.0_points.csv
package exporter

package exporter

import (
	"fmt"
	"strings"

	"hklcompare/internal/merging"
	"hklcompare/internal/reflection"
	"hklcompare/internal/statistics"
)

// Report is everything an export needs from one comparison.
type Report struct {
	Label1, Label2 string
	Symmetry       string
	Merge          *merging.Result
	Stats          *statistics.Result
}

var labelCleaner = strings.NewReplacer(`\`, "", "/", "-")

// BaseName builds {prefix}_{label1}_vs_{label2}_c{cutoff}_s{scale}.
// Backslashes (TeX markup) are dropped from labels and slashes replaced.
func BaseName(prefix, label1, label2 string, cutoff, scale float64) string {
	return fmt.Sprintf("%s_%s_vs_%s_c%s_s%s",
		prefix, labelCleaner.Replace(label1), labelCleaner.Replace(label2), nameFloat(cutoff), nameFloat(scale))
}

// BaseName is the report base name for r, or "" without statistics.
func (r Report) BaseName(prefix string) string {
	if r.Stats == nil {
		return ""
	}
	return BaseName(prefix, r.Label1, r.Label2, r.Stats.Cutoff, r.Stats.Scale)
}

// pointHeaders lists the point table columns; stl is appended when the
// points carry resolution.
func pointHeaders(withResolution bool) []string {
	h := []string{"h", "k", "l", "I1", "sigma1", "I2", "sigma2", "mean", "rel_diff", "log_mean"}
	if withResolution {
		h = append(h, "stl")
	}
	return h
}

func hasResolution(points []statistics.Point) bool {
	for _, p := range points {
		if p.HasResolution {
			return true
		}
	}
	return false
}

// PointsTable renders the statistics points as CSV headers and records.
func (r Report) PointsTable() WriteOptions {
	opts := WriteOptions{BOMPrefix: true}
	if r.Stats == nil {
		opts.Headers = pointHeaders(false)
		return opts
	}

	withRes := hasResolution(r.Stats.Points)
	opts.Headers = pointHeaders(withRes)
	opts.Records = make([][]string, 0, len(r.Stats.Points))
	for _, p := range r.Stats.Points {
		rec := []string{
			formatInt(p.Index.H), formatInt(p.Index.K), formatInt(p.Index.L),
			formatFloat(p.I1), formatFloat(p.Sigma1),
			formatFloat(p.I2), formatFloat(p.Sigma2),
			formatFloat(p.Mean), formatFloat(p.RelDiff), formatFloat(p.LogMean),
		}
		if withRes {
			stl := ""
			if p.HasResolution {
				stl = formatFloat(p.Resolution)
			}
			rec = append(rec, stl)
		}
		opts.Records = append(opts.Records, rec)
	}
	return opts
}

// UnmatchedTable lists canonical indices found in only one dataset.
func (r Report) UnmatchedTable() WriteOptions {
	opts := WriteOptions{Headers: []string{"dataset", "h", "k", "l"}, BOMPrefix: true}
	if r.Merge == nil {
		return opts
	}
	add := func(label string, keys []reflection.HKL) {
		for _, k := range keys {
			opts.Records = append(opts.Records, []string{label, formatInt(k.H), formatInt(k.K), formatInt(k.L)})
		}
	}
	add(r.Label1, r.Merge.UnmatchedFirst)
	add(r.Label2, r.Merge.UnmatchedSecond)
	return opts
}

// SummaryRows are the key/value pairs of the summary sheet.
func (r Report) SummaryRows() [][2]interface{} {
	rows := [][2]interface{}{
		{"dataset 1", r.Label1},
		{"dataset 2", r.Label2},
		{"symmetry", r.Symmetry},
	}
	if r.Merge != nil {
		rows = append(rows,
			[2]interface{}{"unique", r.Merge.Unique()},
			[2]interface{}{"observations", r.Merge.Observations()},
			[2]interface{}{"unmatched 1", len(r.Merge.UnmatchedFirst)},
			[2]interface{}{"unmatched 2", len(r.Merge.UnmatchedSecond)},
		)
	}
	if r.Stats != nil {
		s := r.Stats.Summary
		rows = append(rows,
			[2]interface{}{"scale", r.Stats.Scale},
			[2]interface{}{"scale mode", string(r.Stats.Mode)},
			[2]interface{}{"cutoff", r.Stats.Cutoff},
			[2]interface{}{"ratio", string(r.Stats.Ratio)},
			[2]interface{}{"points", s.Count},
			[2]interface{}{"mean I1", cellValue(s.Mean1)},
			[2]interface{}{"median I1", cellValue(s.Median1)},
			[2]interface{}{"sum I1", cellValue(s.Sum1)},
			[2]interface{}{"mean I2", cellValue(s.Mean2)},
			[2]interface{}{"median I2", cellValue(s.Median2)},
			[2]interface{}{"sum I2", cellValue(s.Sum2)},
			[2]interface{}{"mean rel diff", cellValue(s.MeanRelDiff)},
			[2]interface{}{"std rel diff", cellValue(s.StdRelDiff)},
			[2]interface{}{"log correlation", cellValue(s.LogCorrelation)},
		)
	}
	return rows
}

// WriteCSVReport writes {base}_points.csv and {base}_unmatched.csv and
// returns their paths.
func (w *CSVWriter) WriteCSVReport(r Report, base string) ([]string, error) {
	var written []string
	for suffix, table := range map[string]WriteOptions{
		"_points.csv":    r.PointsTable(),
		"_unmatched.csv": r.UnmatchedTable(),
	} {
		path, err := w.WriteCSV(base+suffix, table)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

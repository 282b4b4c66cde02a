package http

import (
	"hklcompare/internal/dataset"
	"hklcompare/internal/reflection"
	"hklcompare/internal/services"
	"hklcompare/internal/statistics"
	api "hklcompare/pkg/contracts/api/v1"
)

const apiPrefix = "/api/v1/comparisons/"

func toComparison(c *services.Comparison) api.Comparison {
	out := api.Comparison{
		ID:         c.ID,
		Status:     c.Status,
		CreatedAt:  c.CreatedAt,
		DurationMS: float64(c.Duration.Microseconds()) / 1000,
		Symmetry:   c.Request.Symmetry,
		Datasets:   []api.DatasetInfo{toDatasetInfo(c.Datasets[0]), toDatasetInfo(c.Datasets[1])},
		Error:      c.Error,
		Links: map[string]string{
			"self":      apiPrefix + c.ID,
			"unmatched": apiPrefix + c.ID + "/unmatched",
		},
	}
	if c.Merge != nil {
		out.Unique = c.Merge.Unique()
		out.Observations = c.Merge.Observations()
		out.Unmatched = [2]int{len(c.Merge.UnmatchedFirst), len(c.Merge.UnmatchedSecond)}
	}
	if c.Stats != nil {
		out.Statistics = toStatistics(c.Stats)
		out.Links["points"] = apiPrefix + c.ID + "/points"
		out.Links["csv"] = apiPrefix + c.ID + "/export.csv"
		out.Links["xlsx"] = apiPrefix + c.ID + "/export.xlsx"
	}
	return out
}

func toDatasetInfo(info dataset.Info) api.DatasetInfo {
	out := api.DatasetInfo{
		Slot:        info.Slot,
		Label:       info.Label,
		Status:      string(info.Status),
		Path:        info.Path,
		Format:      string(info.Format),
		Reflections: info.Reflections,
		Unique:      info.Unique,
		Error:       info.Error,
	}
	if !info.LoadedAt.IsZero() {
		t := info.LoadedAt
		out.LoadedAt = &t
	}
	return out
}

func toStatistics(res *statistics.Result) *api.Statistics {
	s := res.Summary
	return &api.Statistics{
		Scale:     res.Scale,
		ScaleMode: string(res.Mode),
		Cutoff:    res.Cutoff,
		Ratio:     string(res.Ratio),
		Summary: api.Summary{
			Count:          s.Count,
			Mean1:          api.Float(s.Mean1),
			Median1:        api.Float(s.Median1),
			Sum1:           api.Float(s.Sum1),
			Mean2:          api.Float(s.Mean2),
			Median2:        api.Float(s.Median2),
			Sum2:           api.Float(s.Sum2),
			MeanRelDiff:    api.Float(s.MeanRelDiff),
			StdRelDiff:     api.Float(s.StdRelDiff),
			LogCorrelation: api.Float(s.LogCorrelation),
		},
	}
}

func toPoint(p statistics.Point) api.Point {
	out := api.Point{
		H:       p.Index.H,
		K:       p.Index.K,
		L:       p.Index.L,
		I1:      api.Float(p.I1),
		Sigma1:  api.Float(p.Sigma1),
		I2:      api.Float(p.I2),
		Sigma2:  api.Float(p.Sigma2),
		Mean:    api.Float(p.Mean),
		RelDiff: api.Float(p.RelDiff),
		LogMean: api.Float(p.LogMean),
	}
	if p.HasResolution {
		out.STL = api.Float(p.Resolution)
	}
	return out
}

func toHistogram(h statistics.Histogram) api.Histogram {
	return api.Histogram{Edges: h.Edges, Counts: h.Counts, Dropped: h.Dropped}
}

func toIndices(keys []reflection.HKL) [][3]int {
	out := make([][3]int, len(keys))
	for i, k := range keys {
		out[i] = [3]int{k.H, k.K, k.L}
	}
	return out
}

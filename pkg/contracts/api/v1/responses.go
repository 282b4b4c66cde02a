package api

import (
	"math"
	"time"
)

// Float converts v for JSON output; NaN and infinities become null.
func Float(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// DatasetInfo describes one loaded dataset slot.
type DatasetInfo struct {
	Slot        int        `json:"slot"`
	Label       string     `json:"label"`
	Status      string     `json:"status"`
	Path        string     `json:"path,omitempty"`
	Format      string     `json:"format,omitempty"`
	Reflections int        `json:"reflections"`
	Unique      int        `json:"unique"`
	LoadedAt    *time.Time `json:"loaded_at,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// Summary holds the scalar statistics. Undefined values are null.
type Summary struct {
	Count          int      `json:"count"`
	Mean1          *float64 `json:"mean1"`
	Median1        *float64 `json:"median1"`
	Sum1           *float64 `json:"sum1"`
	Mean2          *float64 `json:"mean2"`
	Median2        *float64 `json:"median2"`
	Sum2           *float64 `json:"sum2"`
	MeanRelDiff    *float64 `json:"mean_rel_diff"`
	StdRelDiff     *float64 `json:"std_rel_diff"`
	LogCorrelation *float64 `json:"log_correlation"`
}

// Statistics describes the scaled comparison.
type Statistics struct {
	Scale     float64 `json:"scale"`
	ScaleMode string  `json:"scale_mode"`
	Cutoff    float64 `json:"sigma_cutoff"`
	Ratio     string  `json:"ratio"`
	Summary   Summary `json:"summary"`
}

// Comparison is the outcome of POST /api/v1/comparisons.
type Comparison struct {
	ID           string            `json:"id"`
	Status       string            `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	DurationMS   float64           `json:"duration_ms"`
	Symmetry     string            `json:"symmetry"`
	Datasets     []DatasetInfo     `json:"datasets"`
	Unique       int               `json:"unique"`
	Observations int               `json:"observations"`
	Unmatched    [2]int            `json:"unmatched"`
	Statistics   *Statistics       `json:"statistics,omitempty"`
	Error        string            `json:"error,omitempty"`
	Links        map[string]string `json:"links"`
}

// ComparisonList is returned by GET /api/v1/comparisons.
type ComparisonList struct {
	Comparisons []Comparison `json:"comparisons"`
	Count       int          `json:"count"`
}

// Point is one scaled reflection pair.
type Point struct {
	H       int      `json:"h"`
	K       int      `json:"k"`
	L       int      `json:"l"`
	I1      *float64 `json:"i1"`
	Sigma1  *float64 `json:"sigma1"`
	I2      *float64 `json:"i2"`
	Sigma2  *float64 `json:"sigma2"`
	Mean    *float64 `json:"mean"`
	RelDiff *float64 `json:"rel_diff"`
	LogMean *float64 `json:"log_mean"`
	STL     *float64 `json:"stl,omitempty"`
}

// Histogram is a binned distribution with len(Counts)+1 edges.
type Histogram struct {
	Edges   []float64 `json:"edges"`
	Counts  []float64 `json:"counts"`
	Dropped int       `json:"dropped"`
}

// Points is returned by GET /api/v1/comparisons/{id}/points.
type Points struct {
	ID               string    `json:"id"`
	Total            int       `json:"total"`
	Offset           int       `json:"offset"`
	Points           []Point   `json:"points"`
	RelDiffHistogram Histogram `json:"rel_diff_histogram"`
	LogMeanHistogram Histogram `json:"log_mean_histogram"`
}

// Unmatched lists canonical indices present in only one dataset.
type Unmatched struct {
	ID       string   `json:"id"`
	Dataset1 [][3]int `json:"dataset1"`
	Dataset2 [][3]int `json:"dataset2"`
}

// SymmetryClass describes one registered Laue class.
type SymmetryClass struct {
	Label string `json:"label"`
	Order int    `json:"order"`
}

// SymmetryList is returned by GET /api/v1/symmetry.
type SymmetryList struct {
	Classes []SymmetryClass `json:"classes"`
	Default string          `json:"default"`
}

// DataFile is a reflection file available under the data directory. Path
// is accepted as file1/file2 in a CompareRequest.
type DataFile struct {
	Path     string    `json:"path"`
	Name     string    `json:"name"`
	Format   string    `json:"format"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// FileList is returned by GET /api/v1/files.
type FileList struct {
	Files  []DataFile `json:"files"`
	Total  int        `json:"total"`
	Latest string     `json:"latest,omitempty"`
}

// Package api contains the JSON contracts of the hklcompare HTTP API.
// Version v1 represents the current stable API version.
package api

// CompareRequest starts a comparison of two reflection files. File names are
// relative to the server's data directory. Omitted options take the server
// defaults.
type CompareRequest struct {
	File1    string `json:"file1" validate:"required,datafile"`
	File2    string `json:"file2" validate:"required,datafile"`
	Label1   string `json:"label1,omitempty" validate:"max=64"`
	Label2   string `json:"label2,omitempty" validate:"max=64"`
	Symmetry string `json:"symmetry,omitempty" validate:"omitempty,symmetry"`

	SigmaCutoff *float64 `json:"sigma_cutoff,omitempty" validate:"omitempty,gte=0"`
	// Scale multiplies dataset 1; 0 selects least-squares autoscaling.
	Scale *float64 `json:"scale,omitempty" validate:"omitempty,gte=0"`
	Ratio string   `json:"ratio,omitempty" validate:"omitempty,oneof=sigma spread"`

	UsedOnly       *bool `json:"used_only,omitempty"`
	KeepResolution *bool `json:"keep_resolution,omitempty"`
}

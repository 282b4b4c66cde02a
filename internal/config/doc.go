// Package config loads the hklcompare configuration.
//
// # Configuration Sources
//
// Values are applied in the following order, later sources winning:
//
//	1. Default()
//	2. A YAML file: $HKLCMP_CONFIG, else config.yaml or configs/config.yaml
//	3. Environment variables
//
// # Environment Variables
//
// Variables follow the pattern HKLCMP_<SECTION>_<FIELD>:
//
//	HKLCMP_SERVER_PORT=8080
//	HKLCMP_LOGGING_LEVEL=debug
//	HKLCMP_COMPARISON_SYMMETRY=mmm
//	HKLCMP_COMPARISON_SIGMA_CUTOFF=3
//	HKLCMP_TELEMETRY_ENABLED=false
//
// # Validation
//
// The merged configuration is checked with validator struct tags. Failures
// are returned as CONFIG application errors.
//
// # Path Management
//
// ResolvePaths turns the configured directories into absolute paths and
// confines request-supplied data paths to the data directory.
package config

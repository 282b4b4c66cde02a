package config

import "time"

// Application constants
const (
	AppName    = "hklcompare"
	AppVersion = "1.0.0"

	// Rate limiting
	DefaultRateLimit = 20 // requests per second
	DefaultBurstSize = 40

	// Server
	DefaultReadTimeout   = 30 * time.Second
	DefaultWriteTimeout  = 60 * time.Second
	DefaultMaxBodyBytes  = 1 << 20
	DefaultStoreCapacity = 64

	// File paths (relative to the working directory)
	DefaultDataDir    = "data"
	DefaultReportsDir = "reports"
	DefaultLogsDir    = "logs"
	DefaultLogFile    = "hklcompare.log"

	// Logging
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// Comparison
	DefaultSymmetry      = "-1"
	DefaultSigmaCutoff   = 0.5
	DefaultHistogramBins = 400
	DefaultReportPrefix  = "compare"
)

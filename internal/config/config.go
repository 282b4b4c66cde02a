package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "hklcompare/internal/errors"
)

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "HKLCMP"

// ConfigFileEnv names the variable that points at an explicit config file.
const ConfigFileEnv = "HKLCMP_CONFIG"

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server" envconfig:"SERVER"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Paths      PathsConfig      `yaml:"paths" envconfig:"PATHS"`
	Comparison ComparisonConfig `yaml:"comparison" envconfig:"COMPARISON"`
	Telemetry  TelemetryConfig  `yaml:"telemetry" envconfig:"TELEMETRY"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" validate:"gte=0"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
	// MaxBodyBytes bounds request bodies accepted by the API.
	MaxBodyBytes int64 `yaml:"max_body_bytes" envconfig:"MAX_BODY_BYTES" validate:"gt=0"`
	// StoreCapacity is the number of comparisons kept in memory.
	StoreCapacity int `yaml:"store_capacity" envconfig:"STORE_CAPACITY" validate:"min=1"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" validate:"gt=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" validate:"min=1"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// PathsConfig contains file system paths configuration. Relative entries are
// resolved against the working directory by ResolvePaths.
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" validate:"required"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

// ComparisonConfig holds the defaults applied when a comparison request
// leaves a parameter out.
type ComparisonConfig struct {
	Symmetry       string  `yaml:"symmetry" envconfig:"SYMMETRY" validate:"required"`
	SigmaCutoff    float64 `yaml:"sigma_cutoff" envconfig:"SIGMA_CUTOFF" validate:"gte=0"`
	AutoScale      bool    `yaml:"auto_scale" envconfig:"AUTO_SCALE"`
	Scale          float64 `yaml:"scale" envconfig:"SCALE" validate:"gt=0"`
	Ratio          string  `yaml:"ratio" envconfig:"RATIO" validate:"oneof=sigma spread"`
	UsedOnly       bool    `yaml:"used_only" envconfig:"USED_ONLY"`
	KeepResolution bool    `yaml:"keep_resolution" envconfig:"KEEP_RESOLUTION"`
	Label1         string  `yaml:"label1" envconfig:"LABEL1" validate:"required"`
	Label2         string  `yaml:"label2" envconfig:"LABEL2" validate:"required"`
	HistogramBins  int     `yaml:"histogram_bins" envconfig:"HISTOGRAM_BINS" validate:"min=1,max=100000"`
	ReportPrefix   string  `yaml:"report_prefix" envconfig:"REPORT_PREFIX" validate:"required"`
}

// TelemetryConfig contains OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled       bool    `yaml:"enabled" envconfig:"ENABLED"`
	ServiceName   string  `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
	Environment   string  `yaml:"environment" envconfig:"ENVIRONMENT"`
	TraceExporter string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none stdout"`
	SampleRatio   float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"gte=0,lte=1"`
}

// Load builds the configuration from defaults, then the config file if one
// is found, then environment variables.
func Load() (*Config, error) {
	return LoadFile(findConfigFile())
}

// LoadFile is Load with an explicit config file. An empty path skips the file.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, apperrors.NewConfigError(fmt.Sprintf("load config file %s", path), err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays the YAML document onto cfg; keys that are absent keep
// their current values.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(data, cfg)
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}
	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		return apperrors.NewConfigError("logging.file_path is required when output is "+c.Logging.Output, nil)
	}
	return nil
}

// findConfigFile returns the explicit config file, or the first default
// location that exists, or "".
func findConfigFile() string {
	if p := os.Getenv(ConfigFileEnv); p != "" {
		return p
	}
	for _, location := range []string{"config.yaml", "configs/config.yaml"} {
		if FileExists(location) {
			return location
		}
	}
	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20,
			ShutdownTimeout: 30 * time.Second,
			MaxBodyBytes:    DefaultMaxBodyBytes,
			StoreCapacity:   DefaultStoreCapacity,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "console",
			FilePath: "logs/" + DefaultLogFile,
		},
		Paths: PathsConfig{
			DataDir:    DefaultDataDir,
			ReportsDir: DefaultReportsDir,
			LogsDir:    DefaultLogsDir,
		},
		Comparison: ComparisonConfig{
			Symmetry:       DefaultSymmetry,
			SigmaCutoff:    DefaultSigmaCutoff,
			AutoScale:      true,
			Scale:          1.0,
			Ratio:          "sigma",
			UsedOnly:       true,
			KeepResolution: true,
			Label1:         "1",
			Label2:         "2",
			HistogramBins:  DefaultHistogramBins,
			ReportPrefix:   DefaultReportPrefix,
		},
		Telemetry: TelemetryConfig{
			Enabled:       true,
			ServiceName:   AppName,
			Environment:   "development",
			TraceExporter: "none",
			SampleRatio:   1.0,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     DefaultRateLimit,
			Burst:   DefaultBurstSize,
		},
	}
}

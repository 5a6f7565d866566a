package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"ogacli/internal/errors"
)

// Config represents the complete application configuration.
// Values are layered: built-in defaults, then an optional YAML file,
// then OGA_* environment variables.
type Config struct {
	Dataset  DatasetConfig  `yaml:"dataset" envconfig:"DATASET"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Export   ExportConfig   `yaml:"export" envconfig:"EXPORT"`
}

// DatasetConfig locates the two raw tabular sources. Both CSV and XLSX
// files are accepted; the loader dispatches on the file extension.
type DatasetConfig struct {
	AthletesPath string `yaml:"athletes_path" envconfig:"ATHLETES_PATH" validate:"required"`
	RegionsPath  string `yaml:"regions_path" envconfig:"REGIONS_PATH" validate:"required"`
}

// PipelineConfig controls the cleaning pipeline.
type PipelineConfig struct {
	// CutoffYear classifies a sport as discontinued when its last Games
	// appearance predates this year. The discontinued set is always derived
	// from the data at run time, never from a stored list.
	CutoffYear int `yaml:"cutoff_year" envconfig:"CUTOFF_YEAR" validate:"min=1896,max=2100"`

	// RegionPatches maps NOC codes with a known-null region in the source
	// mapping to their literal region names. Any other empty region after
	// the join is an integrity defect, not something to patch silently.
	RegionPatches map[string]string `yaml:"region_patches" envconfig:"REGION_PATCHES"`

	// OrphanTolerance is the per-NOC row count up to which join-dropped rows
	// that violate the discontinued-sport assumption are only warned about.
	OrphanTolerance int `yaml:"orphan_tolerance" envconfig:"ORPHAN_TOLERANCE" validate:"min=0"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int             `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration   `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// ExportConfig controls report output from the batch analyzer.
type ExportConfig struct {
	OutDir string `yaml:"out_dir" envconfig:"OUT_DIR" validate:"required"`
	Excel  bool   `yaml:"excel" envconfig:"EXCEL"`
}

// Load loads configuration from defaults, an optional YAML file and
// OGA_* environment variables, in that order of precedence.
func Load() (*Config, error) {
	cfg := Default()

	if configFile := findConfigFile(); configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, errors.NewConfigError(fmt.Sprintf("read config file %s", configFile), err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.NewConfigError(fmt.Sprintf("parse config file %s", configFile), err)
		}
	}

	if err := envconfig.Process("OGA", cfg); err != nil {
		return nil, errors.NewConfigError("process environment variables", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.NewConfigError("config validation failed", err)
	}

	for code, region := range c.Pipeline.RegionPatches {
		if code == "" || region == "" {
			return errors.NewConfigError(
				fmt.Sprintf("region patch %q -> %q: both NOC code and region name are required", code, region), nil)
		}
	}

	return nil
}

// findConfigFile returns the path of the first config file found in the
// conventional locations, or empty when running on env vars alone.
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			AthletesPath: "data/athlete_events.csv",
			RegionsPath:  "data/noc_regions.csv",
		},
		Pipeline: PipelineConfig{
			CutoffYear: 2000,
			RegionPatches: map[string]string{
				"ROT": "Refugee Olympic Team",
				"TUV": "Tuvalu",
			},
			OrphanTolerance: 0,
		},
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "both",
			FilePath: "logs/app.log",
		},
		Export: ExportConfig{
			OutDir: "reports",
			Excel:  true,
		},
	}
}

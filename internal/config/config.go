// =============================================================================
// Cart Parser - Configuration Module
// =============================================================================
//
// This module loads the application configuration.
//
// SOURCES (later wins):
//   1. Built-in defaults
//   2. The YAML config file (config.yaml by default, optional)
//   3. CARTPARSER_* environment variables, e.g. CARTPARSER_OUTPUT_FORMAT=yaml
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// DefaultPath is the config file read when no other path is given. It is the
// only path allowed to be missing.
const DefaultPath = "config.yaml"

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "CARTPARSER"

// ErrInvalidConfig is wrapped by every validation failure in Load.
var ErrInvalidConfig = errors.New("invalid configuration")

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the global application configuration.
type Config struct {
	// =========================================================================
	// SOURCE SETTINGS
	// =========================================================================

	// DefaultSource is the cart file parsed when no path is given.
	// Default: "samples/cart.csv"
	DefaultSource string `mapstructure:"default_source"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputDir is the directory where exported results and error logs go.
	// Default: "./output"
	OutputDir string `mapstructure:"output_dir"`

	// OutputFormat is the export format.
	// Valid values: "json", "yaml", "xml", "xlsx"
	// Default: "json"
	OutputFormat string `mapstructure:"output_format"`

	// OutputNameFormat defines the format for output file names.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {original}  - Source file name without extension
	// Default: "{original}_{uuid}"
	OutputNameFormat string `mapstructure:"output_name_format"`

	// =========================================================================
	// ARCHIVE SETTINGS
	// =========================================================================

	// ArchiveDir is where sources are moved after a successful parse.
	// Empty disables archiving.
	ArchiveDir string `mapstructure:"archive_dir"`

	// ArchiveTimestampSubdirs stores archived sources under YYYY/MM/DD.
	ArchiveTimestampSubdirs bool `mapstructure:"archive_timestamp_subdirs"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `mapstructure:"log_level"`

	// LogFormat selects the log handler.
	// Valid values: "text", "json"
	// Default: "text"
	LogFormat string `mapstructure:"log_format"`
}

// =============================================================================
// LOADING FUNCTIONS
// =============================================================================

// Load reads the configuration.
//
// PARAMETERS:
//   - configPath: The path to the YAML config file. An empty path or a
//                 missing DefaultPath is not an error; defaults and
//                 environment variables still apply. Any other missing
//                 file is.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be parsed or a value is invalid.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if !isNotFound(err) || configPath != DefaultPath {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("default_source", "samples/cart.csv")
	v.SetDefault("output_dir", "./output")
	v.SetDefault("output_format", "json")
	v.SetDefault("output_name_format", "{original}_{uuid}")
	v.SetDefault("archive_dir", "")
	v.SetDefault("archive_timestamp_subdirs", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// applyDefaults sets default values for options set to empty strings.
func applyDefaults(cfg *Config) {
	if cfg.DefaultSource == "" {
		cfg.DefaultSource = "samples/cart.csv"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "json"
	}
	if cfg.OutputNameFormat == "" {
		cfg.OutputNameFormat = "{original}_{uuid}"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
}

// validate checks enumerated values.
func validate(cfg *Config) error {
	cfg.OutputFormat = strings.ToLower(cfg.OutputFormat)
	switch cfg.OutputFormat {
	case "json", "yaml", "yml", "xml", "xlsx":
	default:
		return fmt.Errorf("%w: output_format %q", ErrInvalidConfig, cfg.OutputFormat)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, cfg.LogLevel)
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, cfg.LogFormat)
	}

	return nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

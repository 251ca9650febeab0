// Package config provides Viper-based configuration loading for the map checker.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable override, e.g. TILECHECK_LOGGING_LEVEL.
const EnvPrefix = "TILECHECK"

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// ValidationConfig controls which files are considered maps.
type ValidationConfig struct {
	// Extension is the required map file suffix, including the dot.
	Extension string `mapstructure:"extension"`
	// MapsDir is the default directory for directory-wide checks and watch mode.
	MapsDir string `mapstructure:"maps_dir"`
}

// DiagnosticsConfig controls how failures are reported to people.
type DiagnosticsConfig struct {
	// Locale selects the message catalog, e.g. "en_US" or "fr_FR".
	Locale string `mapstructure:"locale"`
	// LocalesDir is the root of the gettext catalog tree.
	LocalesDir string `mapstructure:"locales_dir"`
	// Domain is the gettext domain (catalog file name without extension).
	Domain string `mapstructure:"domain"`
	// Color enables ANSI colors in text reports.
	Color bool `mapstructure:"color"`
}

// DatabaseConfig holds PostgreSQL settings for the report store.
type DatabaseConfig struct {
	// Enabled turns report persistence on.
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// TelemetryConfig holds OpenTelemetry tracing settings. Exporter endpoints
// come from the standard OTEL_* environment variables.
type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
}

// WatchConfig holds watch mode settings.
type WatchConfig struct {
	// Debounce collapses bursts of file events for one map into a single check.
	Debounce time.Duration `mapstructure:"debounce"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging     LoggingConfig     `mapstructure:"logging"`
	Validation  ValidationConfig  `mapstructure:"validation"`
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Telemetry   TelemetryConfig   `mapstructure:"telemetry"`
	Watch       WatchConfig       `mapstructure:"watch"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateValidation(c.Validation); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateDiagnostics(c.Diagnostics); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Database.Enabled {
		if err := validateDatabase(c.Database); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if c.Telemetry.Enabled && c.Telemetry.ServiceName == "" {
		errs = append(errs, "telemetry.service_name must not be empty when telemetry is enabled")
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, "watch.debounce must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateValidation(v ValidationConfig) error {
	if len(v.Extension) < 2 || !strings.HasPrefix(v.Extension, ".") {
		return fmt.Errorf("validation.extension must start with '.' and name a suffix, got %q", v.Extension)
	}
	return nil
}

func validateDiagnostics(d DiagnosticsConfig) error {
	var errs []string
	if d.Locale == "" {
		errs = append(errs, "diagnostics.locale must not be empty")
	}
	if d.Domain == "" {
		errs = append(errs, "diagnostics.domain must not be empty")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path skips the file and uses
// defaults plus environment overrides only.
//
// Precondition: path is empty or names a readable YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewViper returns a Viper instance carrying the default settings.
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("validation.extension", ".ber")
	v.SetDefault("validation.maps_dir", "maps")

	v.SetDefault("diagnostics.locale", "en_US")
	v.SetDefault("diagnostics.locales_dir", "locales")
	v.SetDefault("diagnostics.domain", "tilecheck")
	v.SetDefault("diagnostics.color", true)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "tilecheck")
	v.SetDefault("database.password", "tilecheck")
	v.SetDefault("database.name", "tilecheck")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 4)
	v.SetDefault("database.min_conns", 0)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "tilecheck")

	v.SetDefault("watch.debounce", "250ms")
}

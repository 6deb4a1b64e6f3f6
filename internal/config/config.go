// Package config provides configuration management for the subscription merger.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingSourcesFile  = errors.New("merger.sources_file is required")
	ErrMissingPlainPath    = errors.New("output.plain_path is required")
	ErrMissingBase64Path   = errors.New("output.base64_path is required")
	ErrSameOutputPaths     = errors.New("output.plain_path and output.base64_path must differ")
	ErrInvalidTimeout      = errors.New("fetch.timeout_sec must be at least 1")
	ErrInvalidMaxBody      = errors.New("fetch.max_body_kb must be non-negative")
	ErrMissingUserAgent    = errors.New("fetch.user_agent is required")
	ErrInvalidProxy        = errors.New("fetch.proxy must be an http, https, socks5 or socks5h URL")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrReportPathCollision = errors.New("output.report_path must differ from the artifact paths")
)

// Defaults used when neither the config file nor the command line sets a value.
const (
	DefaultSourcesFile = "sources.txt"
	DefaultPlainPath   = "nodes.txt"
	DefaultBase64Path  = "sub.txt"
	DefaultTimeoutSec  = 30
	DefaultUserAgent   = "Mozilla/5.0"
	DefaultLogLevel    = "info"
)

// Config represents the complete merger configuration.
type Config struct {
	Merger MergerConfig `yaml:"merger"`
}

// MergerConfig contains merger-specific settings.
type MergerConfig struct {
	SourcesFile string        `yaml:"sources_file"`
	Output      OutputConfig  `yaml:"output"`
	Fetch       FetchConfig   `yaml:"fetch"`
	Extract     ExtractConfig `yaml:"extract"`
	Logging     LoggingConfig `yaml:"logging"`
}

// OutputConfig defines where the merged artifacts go.
type OutputConfig struct {
	PlainPath    string `yaml:"plain_path"`
	Base64Path   string `yaml:"base64_path"`
	ReportPath   string `yaml:"report_path"`
	CreateBackup bool   `yaml:"create_backup"`
}

// FetchConfig defines how sources are requested.
type FetchConfig struct {
	Headers    map[string]string `yaml:"headers"`
	UserAgent  string            `yaml:"user_agent"`
	Proxy      string            `yaml:"proxy"`
	TimeoutSec int               `yaml:"timeout_sec"`
	MaxBodyKb  int               `yaml:"max_body_kb"`
}

// ExtractConfig tunes how fetched bodies are turned into text.
type ExtractConfig struct {
	// HTMLSelector, when set, is applied to text/html responses and the
	// text of every matched element is scanned instead of the raw markup.
	HTMLSelector string `yaml:"html_selector"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns a configuration with every field at its built-in value.
func Default() *Config {
	return &Config{
		Merger: MergerConfig{
			SourcesFile: DefaultSourcesFile,
			Output: OutputConfig{
				PlainPath:  DefaultPlainPath,
				Base64Path: DefaultBase64Path,
			},
			Fetch: FetchConfig{
				UserAgent:  DefaultUserAgent,
				TimeoutSec: DefaultTimeoutSec,
			},
			Logging: LoggingConfig{Level: DefaultLogLevel},
		},
	}
}

// LoadConfig loads configuration from YAML file. Fields the file leaves out
// keep their default values.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	m := c.Merger

	if m.SourcesFile == "" {
		return ErrMissingSourcesFile
	}

	// Validate output config
	if m.Output.PlainPath == "" {
		return ErrMissingPlainPath
	}

	if m.Output.Base64Path == "" {
		return ErrMissingBase64Path
	}

	if samePath(m.Output.PlainPath, m.Output.Base64Path) {
		return ErrSameOutputPaths
	}

	if m.Output.ReportPath != "" &&
		(samePath(m.Output.ReportPath, m.Output.PlainPath) || samePath(m.Output.ReportPath, m.Output.Base64Path)) {
		return ErrReportPathCollision
	}

	// Validate fetch config
	if m.Fetch.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if m.Fetch.MaxBodyKb < 0 {
		return ErrInvalidMaxBody
	}

	if m.Fetch.UserAgent == "" {
		return ErrMissingUserAgent
	}

	if m.Fetch.Proxy != "" {
		if err := validateProxy(m.Fetch.Proxy); err != nil {
			return err
		}
	}

	// Validate logging config
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[m.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

func validateProxy(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProxy, err)
	}

	switch u.Scheme {
	case "http", "https", "socks5", "socks5h":
	default:
		return fmt.Errorf("%w: got scheme %q", ErrInvalidProxy, u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidProxy)
	}

	return nil
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

// GetTimeout returns the per-source fetch timeout.
func (f *FetchConfig) GetTimeout() time.Duration {
	return time.Duration(f.TimeoutSec) * time.Second
}

// GetMaxBodyBytes returns the response size limit in bytes, 0 meaning unlimited.
func (f *FetchConfig) GetMaxBodyBytes() int64 {
	return int64(f.MaxBodyKb) * 1024
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Sources: %s, Plain: %s, Base64: %s, Timeout: %ds}",
		c.Merger.SourcesFile,
		c.Merger.Output.PlainPath,
		c.Merger.Output.Base64Path,
		c.Merger.Fetch.TimeoutSec,
	)
}

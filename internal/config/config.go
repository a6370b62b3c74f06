package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the evalview host configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Report  ReportConfig  `yaml:"report"`
	Redis   RedisConfig   `yaml:"redis"`
	Assets  AssetsConfig  `yaml:"assets"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
}

// Record sources.
const (
	SourceFile  = "file"
	SourceRedis = "redis"
)

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// ReportConfig points at the static report and the records it was generated from.
type ReportConfig struct {
	HTMLPath               string `yaml:"html_path"`
	RecordsSource          string `yaml:"records_source"` // file, redis (default: file)
	RecordsPath            string `yaml:"records_path"`
	ThresholdsPath         string `yaml:"thresholds_path"`
	MaxNonMatchesDisplayed int    `yaml:"max_non_matches_displayed"`
}

// RedisConfig holds record store connection settings.
type RedisConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	KeyPrefix        string   `yaml:"key_prefix"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// AssetsConfig holds document asset locations.
type AssetsConfig struct {
	Root string   `yaml:"root"` // default: directory of report.html_path
	S3   S3Config `yaml:"s3"`
}

// S3Config enables s3:// asset paths when Enabled is set.
type S3Config struct {
	Enabled   bool   `yaml:"enabled"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// ViewerConfig holds paginated viewer layout and decode limits.
type ViewerConfig struct {
	MaxWidth             float64 `yaml:"max_width"`
	ScaleCap             float64 `yaml:"scale_cap"`
	MaxConcurrentDecodes int     `yaml:"max_concurrent_decodes"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Report.RecordsSource == "" {
		c.Report.RecordsSource = SourceFile
	}
	if c.Report.MaxNonMatchesDisplayed <= 0 {
		c.Report.MaxNonMatchesDisplayed = 1000
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "evalview:"
	}
	if c.Redis.ReadinessTimeout <= 0 {
		c.Redis.ReadinessTimeout = 10
	}
	if c.Assets.Root == "" && c.Report.HTMLPath != "" {
		c.Assets.Root = filepath.Dir(c.Report.HTMLPath)
	}
	if c.Viewer.MaxWidth <= 0 {
		c.Viewer.MaxWidth = 800
	}
	if c.Viewer.ScaleCap <= 0 {
		c.Viewer.ScaleCap = 1.5
	}
	if c.Viewer.MaxConcurrentDecodes <= 0 {
		c.Viewer.MaxConcurrentDecodes = 4
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Report.HTMLPath == "" {
		return fmt.Errorf("report.html_path is required")
	}
	switch c.Report.RecordsSource {
	case SourceFile:
		if c.Report.RecordsPath == "" {
			return fmt.Errorf("report.records_path is required for records_source %q", SourceFile)
		}
	case SourceRedis:
		if len(c.Redis.Addrs) == 0 {
			return fmt.Errorf("redis.addrs is required for records_source %q", SourceRedis)
		}
	default:
		return fmt.Errorf(
			"report.records_source must be %q or %q, got %q",
			SourceFile, SourceRedis, c.Report.RecordsSource,
		)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}

// ABOUTME: Configuration loading and parsing for campus-gateway
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Default token lifetimes, used when the config omits them.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Config represents the complete campus-gateway configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Mail     MailConfig     `yaml:"mail"`
	PDFs     PDFConfig      `yaml:"pdfs"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds server address configuration
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
	// Environment is "production" or "development"; cookies are marked
	// Secure only in production.
	Environment string `yaml:"environment"`
}

// Production reports whether the server runs in production mode.
func (s ServerConfig) Production() bool {
	return s.Environment == "production"
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AuthConfig holds token signing configuration.
// The two secrets are independent: one signs access tokens, the other
// refresh tokens. Supply them via ${VAR} expansion, never inline.
type AuthConfig struct {
	AccessSecret  string `yaml:"access_secret"`
	RefreshSecret string `yaml:"refresh_secret"`

	AccessTokenTTL  time.Duration `yaml:"-"`
	RefreshTokenTTL time.Duration `yaml:"-"`

	// Raw string values for YAML unmarshaling
	AccessTokenTTLRaw  string `yaml:"access_token_ttl"`
	RefreshTokenTTLRaw string `yaml:"refresh_token_ttl"`
}

// MailConfig holds SMTP transport configuration for the contact form
type MailConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	// To is the mailbox that receives contact form submissions
	To string `yaml:"to"`
}

// PDFConfig holds the study-material directory configuration
type PDFConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded.
// Duration strings are parsed into time.Duration values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := parseDurations(&cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	if c.Auth.AccessSecret == "" {
		return fmt.Errorf("auth.access_secret is required")
	}
	if c.Auth.RefreshSecret == "" {
		return fmt.Errorf("auth.refresh_secret is required")
	}
	if c.Auth.AccessSecret == c.Auth.RefreshSecret {
		return fmt.Errorf("auth.access_secret and auth.refresh_secret must differ")
	}

	if c.Mail.Enabled {
		if c.Mail.Host == "" {
			return fmt.Errorf("mail.host is required when mail is enabled")
		}
		if c.Mail.To == "" {
			return fmt.Errorf("mail.to is required when mail is enabled")
		}
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	cfg.Auth.AccessTokenTTL = DefaultAccessTokenTTL
	cfg.Auth.RefreshTokenTTL = DefaultRefreshTokenTTL

	if cfg.Auth.AccessTokenTTLRaw != "" {
		d, err := time.ParseDuration(cfg.Auth.AccessTokenTTLRaw)
		if err != nil {
			return fmt.Errorf("parsing access_token_ttl %q: %w", cfg.Auth.AccessTokenTTLRaw, err)
		}
		cfg.Auth.AccessTokenTTL = d
	}

	if cfg.Auth.RefreshTokenTTLRaw != "" {
		d, err := time.ParseDuration(cfg.Auth.RefreshTokenTTLRaw)
		if err != nil {
			return fmt.Errorf("parsing refresh_token_ttl %q: %w", cfg.Auth.RefreshTokenTTLRaw, err)
		}
		cfg.Auth.RefreshTokenTTL = d
	}

	return nil
}

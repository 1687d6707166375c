// Package config provides configuration management for vlanreg.
//
// This package handles loading configuration from multiple sources:
//   - YAML configuration files
//   - Environment variables (with VR_ prefix)
//   - .env files
//   - Default values
//
// # Configuration Sources Priority
//
// Configuration is loaded in the following order (later sources override earlier ones):
//  1. Default values (hardcoded)
//  2. Configuration files (./config.yaml, ./configs/config.yaml, ~/.vlanreg/config.yaml, /etc/vlanreg/config.yaml)
//  3. .env files
//  4. Environment variables (VR_ prefix)
//
// # Usage Example
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Server: %s:%d\n", cfg.Server.Host, cfg.Server.Port)
//
// # Environment Variables
//
// Use VR_ prefix and underscores for nested keys:
//   - VR_SERVER_PORT=5000
//   - VR_REGISTRY_MAX_ID=1999
//   - VR_LOGGING_LEVEL=debug
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"evalgo.org/vlanreg/models"
)

// Config is the root configuration structure for vlanreg.
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Registry contains VLAN registry settings
	Registry RegistryConfig `mapstructure:"registry" yaml:"registry"`

	// Logging contains logging settings
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Security contains CORS and rate limiting settings
	Security SecurityConfig `mapstructure:"security" yaml:"security"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	// Host is the server bind address (default: 0.0.0.0)
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the server listen port (default: 5000)
	Port int `mapstructure:"port" yaml:"port"`

	// ReadTimeout is the maximum duration for reading requests
	ReadTimeout time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout is the maximum duration for writing responses
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`

	// ShutdownTimeout is the maximum duration for graceful shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	// BodyLimit caps request bodies (echo size notation, e.g. "64K")
	BodyLimit string `mapstructure:"body_limit" yaml:"body_limit"`

	// Debug exposes internal error details in responses
	Debug bool `mapstructure:"debug" yaml:"debug"`
}

// RegistryConfig contains the accepted VLAN ID range.
type RegistryConfig struct {
	// MinID is the lowest VLAN ID accepted (default: 2)
	MinID int `mapstructure:"min_id" yaml:"min_id"`

	// MaxID is the highest VLAN ID accepted (default: 4094)
	MaxID int `mapstructure:"max_id" yaml:"max_id"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error)
	Level string `mapstructure:"level" yaml:"level"`

	// Format is the log format (json, console)
	Format string `mapstructure:"format" yaml:"format"`
}

// SecurityConfig contains CORS and rate limiting settings.
type SecurityConfig struct {
	// RateLimit is the maximum requests per second per client, 0 disables it
	RateLimit int `mapstructure:"rate_limit" yaml:"rate_limit"`

	// AllowedOrigins are the CORS allowed origins
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

// Load reads configuration from a file and environment variables.
// If cfgFile is empty, it searches for config.yaml in standard locations.
// A missing explicit file falls back to defaults.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.vlanreg")
		v.AddConfigPath("/etc/vlanreg")
	}

	if err := v.ReadInConfig(); err != nil {
		if cfgFile != "" {
			if !isFileNotFoundError(err) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		} else {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.MergeInConfig() // Ignore error if .env file doesn't exist

	v.SetEnvPrefix("VR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := Validate(c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return c, nil
}

// Default returns the built-in configuration without reading files or env.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	c := &Config{}
	// Defaults always decode
	_ = v.Unmarshal(c)
	return c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.body_limit", "64K")
	v.SetDefault("server.debug", false)

	v.SetDefault("registry.min_id", models.MinVLANID)
	v.SetDefault("registry.max_id", models.MaxVLANID)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("security.rate_limit", 0)
	v.SetDefault("security.allowed_origins", []string{"*"})
}

// Validate checks a decoded configuration for values the server cannot use.
func Validate(c *Config) error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Registry.MinID < models.MinVLANID || c.Registry.MaxID > models.MaxVLANID {
		return fmt.Errorf("registry range [%d, %d] exceeds 802.1Q bounds [%d, %d]",
			c.Registry.MinID, c.Registry.MaxID, models.MinVLANID, models.MaxVLANID)
	}
	if c.Registry.MinID > c.Registry.MaxID {
		return fmt.Errorf("registry min_id %d is greater than max_id %d", c.Registry.MinID, c.Registry.MaxID)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %q", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "console", "text":
	default:
		return fmt.Errorf("invalid logging format: %q", c.Logging.Format)
	}

	if c.Security.RateLimit < 0 {
		return fmt.Errorf("invalid rate limit: %d", c.Security.RateLimit)
	}

	return nil
}

// Address returns the host:port the server listens on.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// isFileNotFoundError checks if an error is a file not found error.
func isFileNotFoundError(err error) bool {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return errors.Is(pathErr, os.ErrNotExist)
	}
	return false
}

// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/SyedDaiam9101/hmm-service/internal/logging"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "HMM_SERVICE"

// Config holds all configuration for the service
type Config struct {
	// Server configuration
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
	Redis       string `mapstructure:"redis"`

	// CacheTTL is how long decoded paths stay in Redis.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	// ShutdownGrace is how long the server reports NOT_SERVING before it
	// stops accepting requests.
	ShutdownGrace time.Duration `mapstructure:"shutdown_grace"`

	// OpenTelemetry configuration
	OTELEnabled  bool   `mapstructure:"otel_enabled"`
	OTELEndpoint string `mapstructure:"otel_endpoint"`

	LogLevel string `mapstructure:"log_level"`

	// Feature flags
	UseMockInference bool `mapstructure:"use_mock_inference"`
}

// flagKeys maps command-line flag names onto configuration keys.
var flagKeys = map[string]string{
	"port":          "port",
	"metrics-port":  "metrics_port",
	"redis":         "redis",
	"cache-ttl":     "cache_ttl",
	"otel":          "otel_enabled",
	"log-level":     "log_level",
	"mock":          "use_mock_inference",
	"shutdown-wait": "shutdown_grace",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 50051)
	v.SetDefault("metrics_port", 9100)
	v.SetDefault("redis", "")
	v.SetDefault("cache_ttl", "10m")
	v.SetDefault("shutdown_grace", "5s")
	v.SetDefault("otel_enabled", false)
	v.SetDefault("otel_endpoint", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("use_mock_inference", false)
}

// Load loads configuration from flags, environment variables, and an optional config file.
// Priority (highest to lowest): flags > env vars > config file > defaults
//
// When configFile is empty, config.yaml is looked up in the working
// directory, /etc/hmm-service/ and $HOME/.hmm-service; a missing file is
// not an error. flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Environment variable configuration
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("otel_endpoint", EnvPrefix+"_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT"); err != nil {
		return nil, fmt.Errorf("failed to bind env: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/hmm-service/")
		v.AddConfigPath("$HOME/.hmm-service")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	// The standard OTEL variable turns tracing on by itself.
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
		v.Set("otel_enabled", true)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.MetricsPort <= 0 || c.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", c.MetricsPort)
	}
	if c.Port == c.MetricsPort {
		return fmt.Errorf("port and metrics_port must be different")
	}
	if c.Redis != "" && c.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be positive when redis is set, got %s", c.CacheTTL)
	}
	if c.ShutdownGrace < 0 {
		return fmt.Errorf("shutdown_grace must not be negative, got %s", c.ShutdownGrace)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

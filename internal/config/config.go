// Package config provides Viper-based hierarchical configuration
// management: defaults, then an optional YAML file, then FINTRACK_*
// environment variables.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
		Backend   string `mapstructure:"backend" yaml:"backend"` // "json" or "sqlite"
	} `mapstructure:"data" yaml:"data"`

	Classifier struct {
		TableFile string `mapstructure:"table_file" yaml:"table_file"`
	} `mapstructure:"classifier" yaml:"classifier"`

	Alerts struct {
		LowBalanceThreshold float64 `mapstructure:"low_balance_threshold" yaml:"low_balance_threshold"`
	} `mapstructure:"alerts" yaml:"alerts"`

	Auth struct {
		CredentialsFile string `mapstructure:"credentials_file" yaml:"credentials_file"`
	} `mapstructure:"auth" yaml:"auth"`
}

// SQLitePath returns the database file path for the sqlite backend.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.Data.Directory, "fintrack.db")
}

// CredentialsPath returns the credentials file path, defaulting into the
// data directory when not configured explicitly.
func (c *Config) CredentialsPath() string {
	if c.Auth.CredentialsFile != "" {
		return c.Auth.CredentialsFile
	}
	return filepath.Join(c.Data.Directory, "credentials.json")
}

// InitializeConfig initializes Viper configuration with hierarchical
// loading.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.fintrack")
	v.AddConfigPath(".fintrack")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FINTRACK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars; a broken config file
			// should not make the tool unusable.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.directory", ".fintrack/data")
	v.SetDefault("data.backend", "json")

	v.SetDefault("classifier.table_file", "")

	v.SetDefault("alerts.low_balance_threshold", 100.0)

	v.SetDefault("auth.credentials_file", "")
}

// validateConfig validates the configuration values.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}
	if config.Data.Backend != "json" && config.Data.Backend != "sqlite" {
		return fmt.Errorf("invalid data backend: %s (must be 'json' or 'sqlite')", config.Data.Backend)
	}
	if config.Data.Directory == "" {
		return fmt.Errorf("data.directory must not be empty")
	}
	if config.Alerts.LowBalanceThreshold < 0 {
		return fmt.Errorf("alerts.low_balance_threshold must not be negative, got: %f", config.Alerts.LowBalanceThreshold)
	}
	return nil
}

// ConfigureLoggingFromConfig configures a logrus logger based on the
// Config struct.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
	return logger
}

package config

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfigDefaults(t *testing.T) {
	// Run from an empty directory so no config file is picked up.
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "json", cfg.Data.Backend)
	assert.Equal(t, ".fintrack/data", cfg.Data.Directory)
	assert.Equal(t, 100.0, cfg.Alerts.LowBalanceThreshold)
	assert.Empty(t, cfg.Classifier.TableFile)
}

func TestInitializeConfigEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FINTRACK_LOG_LEVEL", "debug")
	t.Setenv("FINTRACK_DATA_BACKEND", "sqlite")
	t.Setenv("FINTRACK_ALERTS_LOW_BALANCE_THRESHOLD", "250")

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "sqlite", cfg.Data.Backend)
	assert.Equal(t, 250.0, cfg.Alerts.LowBalanceThreshold)
}

func TestInitializeConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"Bad log level", "FINTRACK_LOG_LEVEL", "loud"},
		{"Bad log format", "FINTRACK_LOG_FORMAT", "xml"},
		{"Bad backend", "FINTRACK_DATA_BACKEND", "postgres"},
		{"Negative threshold", "FINTRACK_ALERTS_LOW_BALANCE_THRESHOLD", "-1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv("HOME", t.TempDir())
			t.Setenv(tc.key, tc.value)

			_, err := InitializeConfig()
			assert.Error(t, err)
		})
	}
}

func TestDerivedPaths(t *testing.T) {
	var cfg Config
	cfg.Data.Directory = "/var/lib/fintrack"

	assert.Equal(t, filepath.Join("/var/lib/fintrack", "fintrack.db"), cfg.SQLitePath())
	assert.Equal(t, filepath.Join("/var/lib/fintrack", "credentials.json"), cfg.CredentialsPath())

	cfg.Auth.CredentialsFile = "/etc/fintrack/creds.json"
	assert.Equal(t, "/etc/fintrack/creds.json", cfg.CredentialsPath())
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	var cfg Config
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(&cfg)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)

	cfg.Log.Level = "not-a-level"
	cfg.Log.Format = "text"
	logger = ConfigureLoggingFromConfig(&cfg)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	_, isText := logger.Formatter.(*logrus.TextFormatter)
	assert.True(t, isText)
}

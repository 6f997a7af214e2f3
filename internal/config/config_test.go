package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CONTACTS_PRIMARY__ENV", "development")
	t.Setenv("CONTACTS_SERVER__PORT", "8080")
	t.Setenv("CONTACTS_SERVER__READ_TIMEOUT", "30")
	t.Setenv("CONTACTS_SERVER__WRITE_TIMEOUT", "30")
	t.Setenv("CONTACTS_SERVER__IDLE_TIMEOUT", "60")
	t.Setenv("CONTACTS_SERVER__CORS_ALLOWED_ORIGINS", "http://localhost:3000")
}

func TestLoadConfigMongoDefaults(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CONTACTS_MONGO__URI", "mongodb://localhost:27017")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DriverMongo, cfg.Storage.Driver)
	assert.Equal(t, "contacts", cfg.Mongo.Name)
	assert.Equal(t, "contacts", cfg.Mongo.Collection)
	assert.Equal(t, 10*time.Second, cfg.Mongo.ConnectTimeout)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
}

func TestLoadConfigRequiresMongoURI(t *testing.T) {
	setBaseEnv(t)

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo.uri")
}

func TestLoadConfigPostgresDriver(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CONTACTS_STORAGE__DRIVER", "postgres")

	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("CONTACTS_DATABASE__HOST", "localhost")
	t.Setenv("CONTACTS_DATABASE__PORT", "5432")
	t.Setenv("CONTACTS_DATABASE__USER", "postgres")
	t.Setenv("CONTACTS_DATABASE__NAME", "contacts")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
}

func TestLoadConfigMemoryDriverNeedsNoBackend(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CONTACTS_STORAGE__DRIVER", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CONTACTS_STORAGE__DRIVER", "cassandra")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigMissingServer(t *testing.T) {
	t.Setenv("CONTACTS_PRIMARY__ENV", "development")
	t.Setenv("CONTACTS_STORAGE__DRIVER", "memory")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestObservabilityValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ObservabilityConfig)
		wantErr bool
	}{
		{"defaults", func(c *ObservabilityConfig) {}, false},
		{"bad level", func(c *ObservabilityConfig) { c.Logging.Level = "verbose" }, true},
		{"bad format", func(c *ObservabilityConfig) { c.Logging.Format = "xml" }, true},
		{"negative threshold", func(c *ObservabilityConfig) { c.Logging.SlowQueryThreshold = -time.Second }, true},
		{"missing service name", func(c *ObservabilityConfig) { c.ServiceName = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultObservabilityConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetLogLevel(t *testing.T) {
	c := DefaultObservabilityConfig()
	c.Logging.Level = ""

	c.Environment = "production"
	assert.Equal(t, "info", c.GetLogLevel())

	c.Environment = "development"
	assert.Equal(t, "debug", c.GetLogLevel())

	c.Logging.Level = "warn"
	assert.Equal(t, "warn", c.GetLogLevel())
}

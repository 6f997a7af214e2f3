package logger

import (
	"testing"

	"github.com/deppfellow/contacts-api/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerUsesConfiguredLevel(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "warn"

	logger := NewLogger(cfg)
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "nonsense"

	logger := NewLogger(cfg)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestLoggerServiceWithoutLicense(t *testing.T) {
	service := NewLoggerService(config.DefaultObservabilityConfig())
	assert.Nil(t, service.GetApplication())
	service.Shutdown()

	var nilService *LoggerService
	assert.Nil(t, nilService.GetApplication())
}

func TestLoggerServiceWithInvalidLicense(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.NewRelic.LicenseKey = "too-short"

	service := NewLoggerService(cfg)
	assert.Nil(t, service.GetApplication())
}

func TestEnvironmentLabel(t *testing.T) {
	nrCfg := &newrelic.Config{}
	environmentLabel("production")(nrCfg)
	assert.Equal(t, "production", nrCfg.Labels["environment"])

	nrCfg.Labels["team"] = "contacts"
	environmentLabel("staging")(nrCfg)
	assert.Equal(t, map[string]string{"environment": "staging", "team": "contacts"}, nrCfg.Labels)
}

func TestWithTraceContextNilTransaction(t *testing.T) {
	logger := zerolog.Nop()
	assert.Equal(t, logger, WithTraceContext(logger, nil))
}

func TestGetPgxTraceLogLevel(t *testing.T) {
	assert.Equal(t, int(tracelog.LogLevelDebug), GetPgxTraceLogLevel(zerolog.DebugLevel))
	assert.Equal(t, int(tracelog.LogLevelInfo), GetPgxTraceLogLevel(zerolog.InfoLevel))
	assert.Equal(t, int(tracelog.LogLevelWarn), GetPgxTraceLogLevel(zerolog.WarnLevel))
	assert.Equal(t, int(tracelog.LogLevelError), GetPgxTraceLogLevel(zerolog.ErrorLevel))
	assert.Equal(t, int(tracelog.LogLevelNone), GetPgxTraceLogLevel(zerolog.Disabled))
}

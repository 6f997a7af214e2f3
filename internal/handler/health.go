package handler

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/deppfellow/contacts-api/internal/middleware"
	"github.com/deppfellow/contacts-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Pinger is implemented by dependencies the health check can ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports whether the service and its dependencies are up.
type HealthHandler struct {
	Handler
	storage Pinger
}

func NewHealthHandler(s *server.Server, storage Pinger) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		storage: storage,
	}
}

// CheckHealth pings the contact store and, when configured, Redis.
//
// It responds 200 when every required check passes and 503 otherwise. Redis
// only backs background jobs, so a Redis failure is reported without making
// the service unhealthy.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	obs := h.server.Config.Observability

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]any)
	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"storage":     h.server.Config.Storage.Driver,
		"checks":      checks,
	}
	isHealthy := true

	enabled := func(name string) bool {
		if obs == nil {
			return true
		}
		return obs.HealthChecks.Enabled && slices.Contains(obs.HealthChecks.Checks, name)
	}
	timeout := 5 * time.Second
	if obs != nil {
		timeout = obs.HealthCheckTimeout()
	}

	if enabled("storage") {
		result, err := h.runCheck(c.Request().Context(), timeout, h.storage)
		checks["storage"] = result
		if err != nil {
			isHealthy = false
			h.recordFailure(logger, "storage", err, result)
		}
	}

	if enabled("redis") && h.server.Redis != nil {
		result, err := h.runCheck(c.Request().Context(), timeout, redisPinger{h.server})
		checks["redis"] = result
		if err != nil {
			h.recordFailure(logger, "redis", err, result)
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}

func (h *HealthHandler) runCheck(parent context.Context, timeout time.Duration, p Pinger) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	checkStart := time.Now()
	err := p.Ping(ctx)
	result := map[string]any{
		"status":        "healthy",
		"response_time": time.Since(checkStart).String(),
	}
	if err != nil {
		result["status"] = "unhealthy"
	}
	return result, err
}

func (h *HealthHandler) recordFailure(logger zerolog.Logger, check string, err error, result map[string]any) {
	logger.Error().
		Err(err).
		Str("check", check).
		Msg("health check failed")

	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", map[string]any{
			"check_type":    check,
			"operation":     "health_check",
			"error_type":    check + "_unhealthy",
			"response_time": result["response_time"],
			"error_message": err.Error(),
		})
	}
}

type redisPinger struct {
	server *server.Server
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.server.Redis.Ping(ctx).Err()
}

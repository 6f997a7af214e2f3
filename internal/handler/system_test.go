package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/contacts-api/internal/errs"
	"github.com/deppfellow/contacts-api/internal/middleware"
	"github.com/deppfellow/contacts-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unreachableRepository struct {
	repository.ContactRepository
}

func (unreachableRepository) Ping(context.Context) error {
	return errors.New("server selection timeout")
}

func TestStatusHealthy(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(t, e, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Equal(t, "healthy", body["status"])
	checks := body["checks"].(map[string]any)
	assert.Contains(t, checks, "storage")
	assert.NotContains(t, checks, "redis")
}

func TestStatusUnhealthyStorage(t *testing.T) {
	e := newTestRouterWith(t, newTestConfig(), unreachableRepository{repository.NewMemoryContactRepository()})

	rec := do(t, e, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unhealthy", decode[map[string]any](t, rec)["status"])
	assert.NotContains(t, rec.Body.String(), "server selection timeout")
}

func TestUnknownRoute(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(t, e, http.MethodGet, "/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decode[errs.HTTPError](t, rec).Message)
}

func TestRequestIDHeader(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(t, e, http.MethodGet, "/contacts", "")
	assert.Len(t, rec.Header().Get(middleware.RequestIDHeader), 36)

	rec = do(t, e, http.MethodGet, "/contacts/"+malformedID, "")
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader), "error responses carry the id too")

	req := newRequest(http.MethodGet, "/contacts")
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	rec = serve(e, req)
	assert.Equal(t, "abc-123", rec.Header().Get(middleware.RequestIDHeader))
}

func TestDocsAndOpenAPI(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(t, e, http.MethodGet, "/docs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/static/openapi.json")

	rec = do(t, e, http.MethodGet, "/static/openapi.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/contacts/{id}/favorite"`)
}

func TestMetricsEndpoint(t *testing.T) {
	e, _ := newTestRouter(t)

	do(t, e, http.MethodGet, "/contacts", "")
	do(t, e, http.MethodGet, "/contacts/"+unknownID, "")

	rec := do(t, e, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `contacts_http_requests_total{method="GET",route="/contacts",status="200"} 1`)
	assert.Contains(t, rec.Body.String(), `contacts_http_requests_total{method="GET",route="/contacts/:id",status="404"} 1`)
}

func TestRateLimit(t *testing.T) {
	cfg := newTestConfig()
	cfg.Server.RateLimit = 1
	e := newTestRouterWith(t, cfg, repository.NewMemoryContactRepository())

	// burst is twice the rate
	for range 2 {
		rec := do(t, e, http.MethodGet, "/contacts", "")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := do(t, e, http.MethodGet, "/contacts", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	rec = do(t, e, http.MethodGet, "/status", "")
	assert.Equal(t, http.StatusOK, rec.Code, "system routes are not limited")
}

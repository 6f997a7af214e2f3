package router

import (
	"net/http"

	"github.com/deppfellow/contacts-api/internal/handler"
	"github.com/deppfellow/contacts-api/internal/middleware"
	"github.com/deppfellow/contacts-api/static"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes mounts the endpoints that are not part of the contacts
// API: health, docs, static assets and metrics.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	r.GET("/status", h.Health.CheckHealth)

	r.StaticFS("/static", static.Files)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)

	r.GET("/metrics", m.Metrics.Handler())

	r.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/docs")
	})
}

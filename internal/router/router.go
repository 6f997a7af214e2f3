// Package router builds the echo instance: global middleware, the contact
// routes and the system routes.
package router

import (
	"github.com/deppfellow/contacts-api/internal/handler"
	"github.com/deppfellow/contacts-api/internal/middleware"
	"github.com/deppfellow/contacts-api/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter returns the configured echo instance. The request id and the New
// Relic transaction must exist before the context logger is built, and every
// response, including rejected ones, carries the request id.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Metrics.Middleware(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h, middlewares)
	registerContactRoutes(router, h)

	return router
}

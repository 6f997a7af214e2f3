package router

import (
	"github.com/deppfellow/contacts-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerContactRoutes mounts the contact endpoints. PUT and PATCH on a
// single contact both perform the partial update.
func registerContactRoutes(r *echo.Echo, h *handler.Handlers) {
	contacts := r.Group("/contacts")

	contacts.GET("", h.Contacts.ListHandler())
	contacts.POST("", h.Contacts.CreateHandler())

	contacts.GET("/:id", h.Contacts.GetHandler())
	contacts.PUT("/:id", h.Contacts.UpdateHandler())
	contacts.PATCH("/:id", h.Contacts.UpdateHandler())
	contacts.DELETE("/:id", h.Contacts.DeleteHandler())

	contacts.PATCH("/:id/favorite", h.Contacts.UpdateFavoriteHandler())
}

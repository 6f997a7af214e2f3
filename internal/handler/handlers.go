// Package handler is the HTTP layer: it binds and validates requests, calls
// the service layer and writes responses.
package handler

import (
	"github.com/deppfellow/contacts-api/internal/server"
	"github.com/deppfellow/contacts-api/internal/service"
)

// Handlers groups every HTTP handler so the router receives a single value.
type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Contacts *ContactHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s, services.Contacts),
		OpenAPI:  NewOpenAPIHandler(s),
		Contacts: NewContactHandler(s, services.Contacts),
	}
}

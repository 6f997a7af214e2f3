package handler

import (
	"net/http"

	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/deppfellow/contacts-api/internal/server"
	"github.com/deppfellow/contacts-api/internal/service"
	"github.com/labstack/echo/v4"
)

// ContactDeletedMessage is the message of a successful delete.
const ContactDeletedMessage = "Contact successfully deleted"

// ContactHandler serves the /contacts endpoints.
type ContactHandler struct {
	Handler
	contacts *service.ContactService
}

func NewContactHandler(s *server.Server, contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{
		Handler:  NewHandler(s),
		contacts: contacts,
	}
}

func (h *ContactHandler) List(c echo.Context, _ *model.ListContactsRequest) ([]*model.Contact, error) {
	return h.contacts.List(c.Request().Context())
}

func (h *ContactHandler) Get(c echo.Context, req *model.ContactIDRequest) (*model.Contact, error) {
	return h.contacts.GetByID(c.Request().Context(), req.ID)
}

func (h *ContactHandler) Create(c echo.Context, req *model.CreateContactRequest) (*model.Contact, error) {
	return h.contacts.Create(c.Request().Context(), req.ToCreateContact())
}

func (h *ContactHandler) Update(c echo.Context, req *model.UpdateContactRequest) (*model.Contact, error) {
	return h.contacts.UpdateByID(c.Request().Context(), req.ID, req.ToContactUpdate())
}

func (h *ContactHandler) UpdateFavorite(c echo.Context, req *model.UpdateFavoriteRequest) (*model.Contact, error) {
	return h.contacts.UpdateFavorite(c.Request().Context(), req.ID, *req.Favorite)
}

func (h *ContactHandler) Delete(c echo.Context, req *model.ContactIDRequest) (*model.DeleteContactResponse, error) {
	contact, err := h.contacts.Remove(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return &model.DeleteContactResponse{
		Message: ContactDeletedMessage,
		Contact: contact,
	}, nil
}

// ListHandler and the methods below adapt each endpoint for the router.
func (h *ContactHandler) ListHandler() echo.HandlerFunc {
	return Handle(h.Handler, h.List, http.StatusOK, func() *model.ListContactsRequest {
		return &model.ListContactsRequest{}
	})
}

func (h *ContactHandler) GetHandler() echo.HandlerFunc {
	return Handle(h.Handler, h.Get, http.StatusOK, newContactIDRequest)
}

func (h *ContactHandler) CreateHandler() echo.HandlerFunc {
	return Handle(h.Handler, h.Create, http.StatusCreated, func() *model.CreateContactRequest {
		return &model.CreateContactRequest{}
	})
}

func (h *ContactHandler) UpdateHandler() echo.HandlerFunc {
	return Handle(h.Handler, h.Update, http.StatusOK, func() *model.UpdateContactRequest {
		return &model.UpdateContactRequest{}
	})
}

func (h *ContactHandler) UpdateFavoriteHandler() echo.HandlerFunc {
	return Handle(h.Handler, h.UpdateFavorite, http.StatusOK, func() *model.UpdateFavoriteRequest {
		return &model.UpdateFavoriteRequest{}
	})
}

func (h *ContactHandler) DeleteHandler() echo.HandlerFunc {
	return Handle(h.Handler, h.Delete, http.StatusOK, newContactIDRequest)
}

func newContactIDRequest() *model.ContactIDRequest {
	return &model.ContactIDRequest{}
}

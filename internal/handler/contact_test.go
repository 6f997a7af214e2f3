package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/contacts-api/internal/config"
	"github.com/deppfellow/contacts-api/internal/errs"
	"github.com/deppfellow/contacts-api/internal/handler"
	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/deppfellow/contacts-api/internal/repository"
	"github.com/deppfellow/contacts-api/internal/router"
	"github.com/deppfellow/contacts-api/internal/server"
	"github.com/deppfellow/contacts-api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	malformedID = "not-an-id"
	unknownID   = "65a1f0c2e4b0a1b2c3d4e5f6"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Storage:       config.StorageConfig{Driver: config.DriverMemory},
		Observability: config.DefaultObservabilityConfig(),
	}
}

func newTestRouterWith(t *testing.T, cfg *config.Config, repo repository.ContactRepository) *echo.Echo {
	t.Helper()

	log := zerolog.Nop()
	s := &server.Server{Config: cfg, Logger: &log}

	services, err := service.NewService(s, &repository.Repositories{Contacts: repo})
	require.NoError(t, err)

	return router.NewRouter(s, handler.NewHandlers(s, services))
}

func newTestRouter(t *testing.T) (*echo.Echo, *repository.MemoryContactRepository) {
	t.Helper()
	repo := repository.NewMemoryContactRepository()
	return newTestRouterWith(t, newTestConfig(), repo), repo
}

func do(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func createContact(t *testing.T, e *echo.Echo, body string) model.Contact {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/contacts", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[model.Contact](t, rec)
}

const allenRaymond = `{"name":"Allen Raymond","email":"nulla.ante@vestibul.co.uk","phone":"(992) 914-3792"}`

func TestListContacts(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(t, e, http.MethodGet, "/contacts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	first := createContact(t, e, allenRaymond)
	second := createContact(t, e, `{"name":"Chaim Lewis","email":"dui.in@egetlacus.ca","phone":"(294) 840-6685","favorite":true}`)

	rec = do(t, e, http.MethodGet, "/contacts", "")
	require.Equal(t, http.StatusOK, rec.Code)

	contacts := decode[[]model.Contact](t, rec)
	require.Len(t, contacts, 2)
	assert.Equal(t, first.ID, contacts[0].ID)
	assert.Equal(t, second.ID, contacts[1].ID)
	assert.True(t, contacts[1].Favorite)
}

func TestCreateThenGetReturnsSameRecord(t *testing.T) {
	e, _ := newTestRouter(t)

	created := createContact(t, e, allenRaymond)
	assert.Len(t, created.ID, 24)
	assert.Equal(t, "Allen Raymond", created.Name)
	assert.False(t, created.Favorite)

	rec := do(t, e, http.MethodGet, "/contacts/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	fetched := decode[model.Contact](t, rec)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Name, fetched.Name)
	assert.Equal(t, created.Email, fetched.Email)
	assert.Equal(t, created.Phone, fetched.Phone)
	assert.Equal(t, created.Favorite, fetched.Favorite)

	raw := decode[map[string]any](t, rec)
	assert.Contains(t, raw, "_id")
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing name", `{"email":"a@b.io","phone":"(992) 914-3792"}`, "name"},
		{"missing email", `{"name":"Allen","phone":"(992) 914-3792"}`, "email"},
		{"missing phone", `{"name":"Allen","email":"a@b.io"}`, "phone"},
		{"bad email", `{"name":"Allen","email":"nope","phone":"(992) 914-3792"}`, "email"},
		{"bad phone", `{"name":"Allen","email":"a@b.io","phone":"call me"}`, "phone"},
		{"short name", `{"name":"A","email":"a@b.io","phone":"(992) 914-3792"}`, "name"},
		{"string favorite", `{"name":"Allen","email":"a@b.io","phone":"(992) 914-3792","favorite":"yes"}`, "favorite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, repo := newTestRouter(t)

			rec := do(t, e, http.MethodPost, "/contacts", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			body := decode[errs.HTTPError](t, rec)
			assert.Equal(t, http.StatusBadRequest, body.Status)
			assert.Contains(t, body.Message, tt.field)

			contacts, err := repo.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, contacts, "nothing is persisted on validation failure")
		})
	}
}

func TestCreateMalformedJSON(t *testing.T) {
	e, repo := newTestRouter(t)

	rec := do(t, e, http.MethodPost, "/contacts", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	contacts, _ := repo.List(context.Background())
	assert.Empty(t, contacts)
}

func TestMalformedIDIsRejected(t *testing.T) {
	e, _ := newTestRouter(t)

	requests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/contacts/" + malformedID, ""},
		{http.MethodPut, "/contacts/" + malformedID, `{"name":"Someone"}`},
		{http.MethodPatch, "/contacts/" + malformedID, `{"name":"Someone"}`},
		{http.MethodPatch, "/contacts/" + malformedID + "/favorite", `{"favorite":true}`},
		{http.MethodDelete, "/contacts/" + malformedID, ""},
		{http.MethodGet, "/contacts/65a1f0c2e4b0a1b2c3d4e5fZ", ""},
	}

	for _, r := range requests {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			rec := do(t, e, r.method, r.path, r.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			body := decode[errs.HTTPError](t, rec)
			assert.Equal(t, "Invalid ID format", body.Message)
		})
	}
}

func TestMalformedIDCheckedBeforeBody(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(t, e, http.MethodPut, "/contacts/"+malformedID, `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid ID format", decode[errs.HTTPError](t, rec).Message)
}

func TestUnknownIDIsNotFound(t *testing.T) {
	e, _ := newTestRouter(t)

	requests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/contacts/" + unknownID, ""},
		{http.MethodPut, "/contacts/" + unknownID, `{"name":"Someone"}`},
		{http.MethodPatch, "/contacts/" + unknownID + "/favorite", `{"favorite":true}`},
		{http.MethodDelete, "/contacts/" + unknownID, ""},
	}

	for _, r := range requests {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			rec := do(t, e, r.method, r.path, r.body)
			require.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "Contact not found", decode[errs.HTTPError](t, rec).Message)
		})
	}
}

func TestUpdateContact(t *testing.T) {
	e, _ := newTestRouter(t)
	created := createContact(t, e, allenRaymond)

	for _, method := range []string{http.MethodPut, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			rec := do(t, e, method, "/contacts/"+created.ID, `{"phone":"(555) 123-4567"}`)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			updated := decode[model.Contact](t, rec)
			assert.Equal(t, created.ID, updated.ID)
			assert.Equal(t, "(555) 123-4567", updated.Phone)
			assert.Equal(t, created.Name, updated.Name, "fields absent from the body are kept")
			assert.Equal(t, created.Email, updated.Email)
		})
	}
}

func TestUpdateEmptyBody(t *testing.T) {
	e, _ := newTestRouter(t)
	created := createContact(t, e, allenRaymond)

	for _, body := range []string{"", `{}`, `{"unknown":"field"}`} {
		rec := do(t, e, http.MethodPut, "/contacts/"+created.ID, body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Body must have at least one field", decode[errs.HTTPError](t, rec).Message)
	}
}

func TestUpdateInvalidField(t *testing.T) {
	e, _ := newTestRouter(t)
	created := createContact(t, e, allenRaymond)

	rec := do(t, e, http.MethodPatch, "/contacts/"+created.ID, `{"email":"not-an-email"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[errs.HTTPError](t, rec)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "email", body.Errors[0].Field)

	rec = do(t, e, http.MethodGet, "/contacts/"+created.ID, "")
	assert.Equal(t, created.Email, decode[model.Contact](t, rec).Email)
}

func TestUpdateFavorite(t *testing.T) {
	e, _ := newTestRouter(t)
	created := createContact(t, e, allenRaymond)

	rec := do(t, e, http.MethodPatch, "/contacts/"+created.ID+"/favorite", `{"favorite":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[model.Contact](t, rec).Favorite)

	rec = do(t, e, http.MethodPatch, "/contacts/"+created.ID+"/favorite", `{"favorite":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[model.Contact](t, rec).Favorite)
}

func TestUpdateFavoriteRejectsInvalidBody(t *testing.T) {
	e, _ := newTestRouter(t)
	created := createContact(t, e, allenRaymond)

	for _, body := range []string{`{"favorite":"true"}`, `{"favorite":1}`, `{}`, ""} {
		t.Run(body, func(t *testing.T) {
			rec := do(t, e, http.MethodPatch, "/contacts/"+created.ID+"/favorite", body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Contains(t, decode[errs.HTTPError](t, rec).Message, "favorite")
		})
	}

	rec := do(t, e, http.MethodGet, "/contacts/"+created.ID, "")
	assert.False(t, decode[model.Contact](t, rec).Favorite)
}

func TestDeleteThenGetIsNotFound(t *testing.T) {
	e, _ := newTestRouter(t)
	created := createContact(t, e, allenRaymond)

	rec := do(t, e, http.MethodDelete, "/contacts/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	deleted := decode[model.DeleteContactResponse](t, rec)
	assert.Equal(t, handler.ContactDeletedMessage, deleted.Message)
	require.NotNil(t, deleted.Contact)
	assert.Equal(t, created.ID, deleted.Contact.ID)

	rec = do(t, e, http.MethodGet, "/contacts/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, e, http.MethodDelete, "/contacts/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBodyIDDoesNotOverridePathID(t *testing.T) {
	e, _ := newTestRouter(t)
	a := createContact(t, e, allenRaymond)
	b := createContact(t, e, `{"name":"Chaim Lewis","email":"dui.in@egetlacus.ca","phone":"(294) 840-6685"}`)

	rec := do(t, e, http.MethodGet, "/contacts/"+unknownID, `{"ID":"`+a.ID+`"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())

	rec = do(t, e, http.MethodDelete, "/contacts/"+a.ID, `{"id":"`+b.ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	deleted := decode[model.DeleteContactResponse](t, rec)
	require.NotNil(t, deleted.Contact)
	assert.Equal(t, a.ID, deleted.Contact.ID)

	assert.Equal(t, http.StatusNotFound, do(t, e, http.MethodGet, "/contacts/"+a.ID, "").Code)
	assert.Equal(t, http.StatusOK, do(t, e, http.MethodGet, "/contacts/"+b.ID, "").Code)
}

func TestUppercaseIDFindsContact(t *testing.T) {
	e, _ := newTestRouter(t)
	created := createContact(t, e, allenRaymond)
	upper := strings.ToUpper(created.ID)

	rec := do(t, e, http.MethodGet, "/contacts/"+upper, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, created.ID, decode[model.Contact](t, rec).ID)

	rec = do(t, e, http.MethodPatch, "/contacts/"+upper+"/favorite", `{"favorite":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decode[model.Contact](t, rec).Favorite)

	rec = do(t, e, http.MethodDelete, "/contacts/"+upper, "")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestNonObjectBodyIsRejected(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(t, e, http.MethodPost, "/contacts", `[]`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "body must be an object", decode[errs.HTTPError](t, rec).Message)
}

type failingRepository struct {
	repository.ContactRepository
}

func (failingRepository) List(context.Context) ([]*model.Contact, error) {
	return nil, errors.New("connection reset by peer 10.0.0.7:27017")
}

func TestUnexpectedErrorsAreGeneric(t *testing.T) {
	e := newTestRouterWith(t, newTestConfig(), failingRepository{repository.NewMemoryContactRepository()})

	rec := do(t, e, http.MethodGet, "/contacts", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decode[errs.HTTPError](t, rec)
	assert.Equal(t, "Internal Server Error", body.Message)
	assert.NotContains(t, rec.Body.String(), "10.0.0.7")
}

func newRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

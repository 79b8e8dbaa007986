package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/eventdesk/internal/auth"
	"github.com/MrJamesThe3rd/eventdesk/internal/console"
	"github.com/MrJamesThe3rd/eventdesk/internal/export"
	api "github.com/MrJamesThe3rd/eventdesk/internal/http"
	exporthttp "github.com/MrJamesThe3rd/eventdesk/internal/http/export"
	"github.com/MrJamesThe3rd/eventdesk/internal/http/reports"
	"github.com/MrJamesThe3rd/eventdesk/internal/http/session"
	"github.com/MrJamesThe3rd/eventdesk/internal/http/tables"
	"github.com/MrJamesThe3rd/eventdesk/internal/tablestore"
)

func newRouter() http.Handler {
	// Unconfigured REST backend: every table call fails without touching
	// the network.
	backend := tablestore.NewREST(tablestore.RESTConfig{
		URL: tablestore.PlaceholderURL,
		Key: tablestore.PlaceholderKey,
	}, nil)
	c := console.New(backend, nil)

	return api.New(
		[]string{"*"},
		session.NewHandler(nil),
		tables.NewHandler(c),
		reports.NewHandler(c, nil),
		exporthttp.NewHandler(export.NewService(c, nil, nil), nil),
	)
}

func serve(h http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestRouterGuardsEveryPage(t *testing.T) {
	h := newRouter()

	for _, path := range []string{
		"/api/v1/dashboard",
		"/api/v1/reports",
		"/api/v1/customers",
		"/api/v1/receipts",
	} {
		rec := serve(h, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Equal(t, session.LoginPath, rec.Header().Get("Location"), path)
	}

	rec := serve(h, http.MethodPost, "/api/v1/export/download", "{}")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterAfterLoginReachesUnconfiguredStore(t *testing.T) {
	h := newRouter()

	rec := serve(h, http.MethodPost, "/api/v1/auth/login", `{"username":"admin","password":"admin123"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	signedIn := rec.Result().Cookies()

	rec = serve(h, http.MethodGet, "/api/v1/customers", "", signedIn...)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "not configured")

	rec = serve(h, http.MethodGet, "/api/v1/dashboard", "", signedIn...)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRouterLoginDoesNotAdmitOtherClients(t *testing.T) {
	h := newRouter()

	assert.Equal(t, http.StatusUnauthorized, serve(h, http.MethodGet, "/api/v1/dashboard", "").Code)

	rec := serve(h, http.MethodPost, "/api/v1/auth/login", `{"username":"admin","password":"admin123"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, http.MethodGet, "/api/v1/dashboard", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, session.LoginPath, rec.Header().Get("Location"))
}

func TestRouterRejectsNonJSONBodies(t *testing.T) {
	h := newRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", strings.NewReader("name=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: auth.KeyAuth, Value: "true"})
	req.AddCookie(&http.Cookie{Name: auth.KeyUsername, Value: "admin"})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

package middleware

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/bookmarks-api/internal/config"
	"github.com/deppfellow/bookmarks-api/internal/errs"
	"github.com/deppfellow/bookmarks-api/internal/server"
	"github.com/deppfellow/bookmarks-api/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(buf *bytes.Buffer) *server.Server {
	logger := zerolog.New(buf)
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server:  config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
		},
		Logger: &logger,
	}
}

func renderError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	global := NewGlobalMiddlewares(newTestServer(&buf))

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	global.GlobalErrorHandler(err, c)
	return rec
}

func TestGlobalErrorHandler_JSON(t *testing.T) {
	rec := renderError(t, errs.NewBadRequestError("bad", false, nil, nil, nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"code":"BAD_REQUEST","message":"bad","status":400,"override":false,"errors":null,"action":null}`, rec.Body.String())
}

func TestGlobalErrorHandler_Text(t *testing.T) {
	rec := renderError(t, errs.NewNotFoundError("Bookmark Not Found", false, nil).AsText())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Bookmark Not Found", rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextPlain)
}

func TestGlobalErrorHandler_Envelope(t *testing.T) {
	rec := renderError(t, errs.NewBadRequestError("empty", false, nil, nil, nil).AsEnvelope())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":{"message":"empty"}}`, rec.Body.String())
}

func TestGlobalErrorHandler_RouteNotFound(t *testing.T) {
	rec := renderError(t, echo.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Route not found")
}

func TestGlobalErrorHandler_DatabaseErrors(t *testing.T) {
	rec := renderError(t, sqlerr.WithTable("bookmarks", &pgconn.PgError{Code: "23514", ColumnName: "rating"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "BOOKMARK_INVALID")

	rec = renderError(t, fmt.Errorf("query: %w", pgx.ErrNoRows))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGlobalErrorHandler_UnknownErrorIsHidden(t *testing.T) {
	rec := renderError(t, errors.New("dial tcp 10.0.0.1:5432: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.1")
}

func TestClassify_EchoError(t *testing.T) {
	httpErr := classify(echo.ErrMethodNotAllowed)
	assert.Equal(t, http.StatusMethodNotAllowed, httpErr.Status)
	assert.Equal(t, "METHOD_NOT_ALLOWED", httpErr.Code)
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Body.String())
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}

func TestEnhanceContext(t *testing.T) {
	var buf bytes.Buffer
	ce := NewContextEnhancer(newTestServer(&buf))

	e := echo.New()
	e.Use(RequestID(), ce.EnhanceContext())
	e.GET("/api/bookmarks", func(c echo.Context) error {
		zerolog.Ctx(c.Request().Context()).Info().Msg("from request context")
		GetLogger(c).Info().Msg("from echo context")
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/bookmarks", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	e.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, "from request context")
	assert.Contains(t, out, "from echo context")
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte(`"request_id":"req-1"`)))
	assert.Contains(t, out, `"path":"/api/bookmarks"`)
}

func TestGetLogger_Fallback(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	require.NotNil(t, GetLogger(c))
}

func TestRateLimit(t *testing.T) {
	var buf bytes.Buffer
	s := newTestServer(&buf)
	s.Config.Server.RateLimit = 1

	m := NewMiddlewares(s)

	e := echo.New()
	e.HTTPErrorHandler = m.Global.GlobalErrorHandler
	e.Use(m.RateLimit.Limit())
	e.GET("/api/bookmarks", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/status", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	send := func(path string) int {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("/api/bookmarks"))
	assert.Equal(t, http.StatusTooManyRequests, send("/api/bookmarks"))
	assert.Equal(t, http.StatusOK, send("/status"))
	assert.Equal(t, http.StatusOK, send("/status"))
}

func TestRateLimit_Disabled(t *testing.T) {
	var buf bytes.Buffer
	m := NewRateLimitMiddleware(newTestServer(&buf))

	e := echo.New()
	e.Use(m.Limit())
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for range 5 {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/bookmarks-api/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taggedRequest struct {
	ID    string `param:"id" validate:"required"`
	Name  string `json:"name" validate:"required,max=5"`
	Email string `json:"email" validate:"omitempty,email"`
}

func (r *taggedRequest) Validate() error { return Struct(r) }

type customRequest struct {
	Name string `json:"name"`
}

func (r *customRequest) Validate() error {
	if r.Name == "bad" {
		return CustomValidationErrors{{Field: "name", Message: "is bad"}}
	}
	if r.Name == "teapot" {
		return errs.NewBadRequestError("no teapots", false, nil, nil, nil).AsText()
	}
	return nil
}

func newContext(method, body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestBindAndValidate_OK(t *testing.T) {
	c := newContext(http.MethodPost, `{"name":"ok"}`)
	c.SetParamNames("id")
	c.SetParamValues("7")

	req := &taggedRequest{}
	require.NoError(t, BindAndValidate(c, req))
	assert.Equal(t, "7", req.ID)
	assert.Equal(t, "ok", req.Name)
}

func TestBindAndValidate_TagErrors(t *testing.T) {
	c := newContext(http.MethodPost, `{"name":"too long","email":"nope"}`)
	c.SetParamNames("id")
	c.SetParamValues("7")

	httpErr := asHTTPError(t, BindAndValidate(c, &taggedRequest{}))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "name", Error: "must not exceed 5 characters"},
		{Field: "email", Error: "must be a valid email address"},
	}, httpErr.Errors)
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	c := newContext(http.MethodPost, `{"name":"bad"}`)

	httpErr := asHTTPError(t, BindAndValidate(c, &customRequest{}))
	assert.Equal(t, []errs.FieldError{{Field: "name", Error: "is bad"}}, httpErr.Errors)
}

func TestBindAndValidate_HTTPErrorPassesThrough(t *testing.T) {
	c := newContext(http.MethodPost, `{"name":"teapot"}`)

	httpErr := asHTTPError(t, BindAndValidate(c, &customRequest{}))
	assert.Equal(t, "no teapots", httpErr.Message)
	assert.Equal(t, errs.FormatText, httpErr.Format)
}

func TestBindAndValidate_MalformedJSON(t *testing.T) {
	c := newContext(http.MethodPost, `{"name":`)

	httpErr := asHTTPError(t, BindAndValidate(c, &customRequest{}))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.NotEmpty(t, httpErr.Message)
}

func TestBindAndValidate_UnknownContentTypeIsEmptyBody(t *testing.T) {
	for _, ctype := range []string{"", echo.MIMETextPlain} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok"}`))
		if ctype != "" {
			req.Header.Set(echo.HeaderContentType, ctype)
		}
		c := echo.New().NewContext(req, httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues("7")

		payload := &taggedRequest{}
		httpErr := asHTTPError(t, BindAndValidate(c, payload))

		assert.Equal(t, http.StatusBadRequest, httpErr.Status, ctype)
		assert.Equal(t, "7", payload.ID, "path params are still bound")
		assert.Empty(t, payload.Name, ctype)
	}
}

func TestExtractValidationError_UnknownError(t *testing.T) {
	msg, fields := extractValidationError(errors.New("odd"))
	assert.Equal(t, "Validation failed: odd", msg)
	assert.Nil(t, fields)
}

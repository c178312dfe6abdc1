package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/deppfellow/bookmarks-api/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Validatable interface {
	Validate() error
}

// CustomValidationError is a single rule failure on one field.
type CustomValidationError struct {
	Field   string
	Message string
}

type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var validate = validator.New()

// Struct runs the struct tag rules on v.
func Struct(v any) error {
	return validate.Struct(v)
}

var binder = &echo.DefaultBinder{}

// BindAndValidate binds path parameters and the body into payload, which
// must be a pointer, then runs its Validate method.
//
// A body whose content type the binder does not understand (including no
// Content-Type at all) is treated as empty, so the request reaches Validate
// and fails on its missing fields rather than with a 415.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := bind(c, payload); err != nil {
		return bindError(err)
	}

	if err := payload.Validate(); err != nil {
		var httpErr *errs.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}

		msg, fieldErrors := extractValidationError(err)
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

// bind follows echo.DefaultBinder.Bind: path params, query params for
// GET, DELETE and HEAD, then the body.
func bind(c echo.Context, payload any) error {
	if err := binder.BindPathParams(c, payload); err != nil {
		return err
	}

	method := c.Request().Method
	if method == http.MethodGet || method == http.MethodDelete || method == http.MethodHead {
		if err := binder.BindQueryParams(c, payload); err != nil {
			return err
		}
	}

	err := binder.BindBody(c, payload)
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) && echoErr.Code == http.StatusUnsupportedMediaType {
		return nil
	}
	return err
}

// bindError keeps echo's client-facing message and drops its internals.
func bindError(err error) error {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		message, ok := echoErr.Message.(string)
		if !ok {
			message = http.StatusText(echoErr.Code)
		}
		if echoErr.Code == http.StatusBadRequest {
			return errs.NewBadRequestError(message, false, nil, nil, nil)
		}
		return echo.NewHTTPError(echoErr.Code, message)
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	return errs.NewBadRequestError("Invalid request", false, nil, nil, nil)
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		for _, e := range custom {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: e.Field, Error: e.Message})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed: " + err.Error(), nil
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: tagMessage(field, e),
		})
	}

	return "Validation failed", fieldErrors
}

func tagMessage(field string, e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", e.Param())
		}
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", e.Param())
		}
		return fmt.Sprintf("must not exceed %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "email":
		return "must be a valid email address"
	case "url", "http_url":
		return "must be a valid URL"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	default:
		if e.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", field, e.Tag(), e.Param())
		}
		return fmt.Sprintf("%s: %s", field, e.Tag())
	}
}

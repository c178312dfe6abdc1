package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/bookmarks-api/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleError_CheckViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23514",
		Message:        `new row for relation "bookmarks" violates check constraint "bookmarks_rating_check"`,
		TableName:      "bookmarks",
		ColumnName:     "rating",
		ConstraintName: "bookmarks_rating_check",
	}

	httpErr := asHTTPError(t, HandleError(fmt.Errorf("update: %w", pgErr)))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "BOOKMARK_INVALID", httpErr.Code)
	assert.Equal(t, "The Rating value does not meet required conditions", httpErr.Message)
}

func TestHandleError_CheckViolationWithoutColumn(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23514", ConstraintName: "bookmarks_rating_check"}

	httpErr := asHTTPError(t, HandleError(WithTable("bookmarks", pgErr)))

	assert.Equal(t, "BOOKMARK_INVALID", httpErr.Code)
	assert.Equal(t, "The Rating value does not meet required conditions", httpErr.Message)
}

func TestExtractColumnForCheckViolation(t *testing.T) {
	assert.Equal(t, "rating", extractColumnForCheckViolation("bookmarks_rating_check"))
	assert.Equal(t, "", extractColumnForCheckViolation("rating_positive"))
}

func TestHandleError_NotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23502", ColumnName: "title"}

	httpErr := asHTTPError(t, HandleError(WithTable("bookmarks", pgErr)))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "BOOKMARK_REQUIRED", httpErr.Code)
	assert.Equal(t, "The Title is required", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "title", httpErr.Errors[0].Field)
}

func TestHandleError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", TableName: "bookmarks", ConstraintName: "bookmarks_url_key"}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, "BOOKMARK_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A Bookmark with this Url already exists", httpErr.Message)
}

func TestHandleError_UnknownPgError(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(&pgconn.PgError{Code: "57014"}))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestHandleError_NoRows(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(WithTable("bookmarks", pgx.ErrNoRows)))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Bookmark not found", httpErr.Message)

	httpErr = asHTTPError(t, HandleError(pgx.ErrNoRows))
	assert.Equal(t, "Resource not found", httpErr.Message)
}

func TestHandleError_PassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewNotFoundError("Bookmark Not Found", false, nil).AsText()
	assert.Same(t, original, HandleError(original))
}

func TestHandleError_Unknown(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("connection reset")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestErrCode(t *testing.T) {
	converted := ConvertPgError(&pgconn.PgError{Code: "23505", Severity: "ERROR"})
	assert.Equal(t, UniqueViolation, ErrCode(fmt.Errorf("wrap: %w", converted)))
	assert.Equal(t, Other, ErrCode(errors.New("x")))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "url", extractColumnForUniqueViolation("unique_bookmarks_url"))
	assert.Equal(t, "url", extractColumnForUniqueViolation("bookmarks_url_key"))
	assert.Equal(t, "", extractColumnForUniqueViolation("pk"))
}

func TestWithTable_Nil(t *testing.T) {
	assert.NoError(t, WithTable("bookmarks", nil))
}

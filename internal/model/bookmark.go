// Package model holds the domain types persisted by the repositories and
// returned by the API.
package model

import (
	"encoding/json"
	"errors"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Rating bounds, inclusive.
const (
	MinRating = 0
	MaxRating = 5
)

// ErrInvalidRating is returned by ParseRating for anything that is not an
// integer in [MinRating, MaxRating].
var ErrInvalidRating = errors.New("the rating must be between 0 and 5")

// Bookmark is a row of the bookmarks table.
type Bookmark struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	URL         string    `json:"url" db:"url"`
	Description *string   `json:"description" db:"description"`
	Rating      int       `json:"rating" db:"rating"`
}

// NewBookmark is a bookmark that has not been stored yet, so it has no id.
type NewBookmark struct {
	Title       string
	URL         string
	Description *string
	Rating      int
}

// SerializedBookmark is the projection returned by list and fetch.
type SerializedBookmark struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Rating      int       `json:"rating"`
}

// Serialize projects the bookmark for clients, HTML-escaping every text field.
// A NULL description becomes "".
func (b *Bookmark) Serialize() SerializedBookmark {
	description := ""
	if b.Description != nil {
		description = *b.Description
	}

	return SerializedBookmark{
		ID:          b.ID,
		Title:       html.EscapeString(b.Title),
		URL:         html.EscapeString(b.URL),
		Description: html.EscapeString(description),
		Rating:      b.Rating,
	}
}

// SerializeBookmarks projects every bookmark, never returning nil.
func SerializeBookmarks(bookmarks []Bookmark) []SerializedBookmark {
	out := make([]SerializedBookmark, 0, len(bookmarks))
	for i := range bookmarks {
		out = append(out, bookmarks[i].Serialize())
	}
	return out
}

// ParseRating converts a raw JSON value into a rating.
//
// Numbers and numeric strings are accepted; the result must be a whole
// number within [MinRating, MaxRating]. 2.5, "abc", true and 6 all fail.
func ParseRating(raw json.RawMessage) (int, error) {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, ErrInvalidRating
	}

	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, ErrInvalidRating
		}
		f = parsed
	default:
		return 0, ErrInvalidRating
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, ErrInvalidRating
	}
	if f < MinRating || f > MaxRating {
		return 0, ErrInvalidRating
	}

	return int(f), nil
}

var uriValidator = validator.New()

// IsWebURI reports whether s is an absolute http or https URI with a host.
func IsWebURI(s string) bool {
	return uriValidator.Var(s, "required,http_url") == nil
}

// IsFalsy reports whether a raw JSON value counts as "not provided":
// absent, null, false, 0 or the empty string.
func IsFalsy(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return true
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return false
	}

	switch v := value.(type) {
	case nil:
		return true
	case bool:
		return !v
	case float64:
		return v == 0
	case string:
		return v == ""
	default:
		return false
	}
}

// IsBlank is IsFalsy without the numeric case: 0 counts as provided.
// Create uses it so that a rating of 0 is accepted.
func IsBlank(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return true
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return false
	}

	if _, ok := value.(float64); ok {
		return false
	}
	return IsFalsy(raw)
}

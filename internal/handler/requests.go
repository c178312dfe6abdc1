package handler

import (
	"encoding/json"
	"fmt"

	"github.com/deppfellow/bookmarks-api/internal/errs"
	"github.com/deppfellow/bookmarks-api/internal/model"
	"github.com/deppfellow/bookmarks-api/internal/validation"
)

const emptyPatchMessage = "Request body must contain either 'title', 'url', 'description', or 'rating'"

func badRequest(field, message string) error {
	return errs.NewBadRequestError(message, false, nil, []errs.FieldError{{Field: field, Error: message}}, nil).AsText()
}

func required(field string) error {
	return badRequest(field, fmt.Sprintf("'%s' is required", field))
}

func invalidRating() error {
	return badRequest("rating", model.ErrInvalidRating.Error())
}

func invalidURL() error {
	return badRequest("url", "url must be valid")
}

// decodeText reads a JSON string. Anything else is reported against field.
func decodeText(field string, raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", badRequest(field, fmt.Sprintf("'%s' must be text", field))
	}
	return s, nil
}

func decodeURL(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || !model.IsWebURI(s) {
		return "", invalidURL()
	}
	return s, nil
}

// decodeDescription maps null to nil.
func decodeDescription(raw json.RawMessage) (*string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	s, err := decodeText("description", raw)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

type ListBookmarksRequest struct{}

func (r *ListBookmarksRequest) Validate() error { return nil }

type BookmarkIDRequest struct {
	BookmarkID string `param:"bookmark_id" validate:"required"`
}

func (r *BookmarkIDRequest) Validate() error {
	return validation.Struct(r)
}

type GetBookmarkRequest struct {
	BookmarkIDRequest
}

type DeleteBookmarkRequest struct {
	BookmarkIDRequest
}

// CreateBookmarkRequest keeps the raw body values so that absent, null,
// empty and mistyped fields can be told apart. Validate fills Bookmark.
type CreateBookmarkRequest struct {
	Title       json.RawMessage `json:"title"`
	URL         json.RawMessage `json:"url"`
	Description json.RawMessage `json:"description"`
	Rating      json.RawMessage `json:"rating"`

	Bookmark model.NewBookmark `json:"-"`
}

// Validate checks presence in the order title, url, rating, then the
// rating range, then the url.
func (r *CreateBookmarkRequest) Validate() error {
	if model.IsFalsy(r.Title) {
		return required("title")
	}
	if model.IsFalsy(r.URL) {
		return required("url")
	}
	if model.IsBlank(r.Rating) {
		return required("rating")
	}

	rating, err := model.ParseRating(r.Rating)
	if err != nil {
		return invalidRating()
	}

	url, err := decodeURL(r.URL)
	if err != nil {
		return err
	}

	title, err := decodeText("title", r.Title)
	if err != nil {
		return err
	}

	description, err := decodeDescription(r.Description)
	if err != nil {
		return err
	}

	r.Bookmark = model.NewBookmark{
		Title:       title,
		URL:         url,
		Description: description,
		Rating:      rating,
	}
	return nil
}

// PatchBookmarkRequest records which of the four fields the body carried.
type PatchBookmarkRequest struct {
	BookmarkID string `param:"bookmark_id" validate:"required"`

	fields map[string]json.RawMessage

	Patch model.BookmarkPatch `json:"-"`
}

var patchableFields = []string{"title", "url", "description", "rating"}

func (r *PatchBookmarkRequest) UnmarshalJSON(data []byte) error {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}

	r.fields = make(map[string]json.RawMessage, len(patchableFields))
	for _, name := range patchableFields {
		if raw, ok := body[name]; ok {
			r.fields[name] = raw
		}
	}
	return nil
}

// Validate rejects a patch whose values are all falsy, then validates and
// collects every present field. Present falsy values are still written.
func (r *PatchBookmarkRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}

	allFalsy := true
	for _, raw := range r.fields {
		if !model.IsFalsy(raw) {
			allFalsy = false
			break
		}
	}
	if allFalsy {
		return errs.NewBadRequestError(emptyPatchMessage, false, nil, nil, nil).AsEnvelope()
	}

	var patch model.BookmarkPatch

	if raw, ok := r.fields["title"]; ok {
		field, err := textField("title", raw)
		if err != nil {
			return err
		}
		patch.Title = field
	}

	if raw, ok := r.fields["url"]; ok {
		if string(raw) == "null" {
			patch.URL = model.Null[string]()
		} else {
			url, err := decodeURL(raw)
			if err != nil {
				return err
			}
			patch.URL = model.Of(url)
		}
	}

	if raw, ok := r.fields["description"]; ok {
		field, err := textField("description", raw)
		if err != nil {
			return err
		}
		patch.Description = field
	}

	if raw, ok := r.fields["rating"]; ok {
		if string(raw) == "null" {
			patch.Rating = model.Null[int]()
		} else {
			rating, err := model.ParseRating(raw)
			if err != nil {
				return invalidRating()
			}
			patch.Rating = model.Of(rating)
		}
	}

	r.Patch = patch
	return nil
}

func textField(name string, raw json.RawMessage) (model.PatchField[string], error) {
	if string(raw) == "null" {
		return model.Null[string](), nil
	}
	s, err := decodeText(name, raw)
	if err != nil {
		return model.PatchField[string]{}, err
	}
	return model.Of(s), nil
}

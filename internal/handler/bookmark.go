package handler

import (
	"github.com/deppfellow/bookmarks-api/internal/model"
	"github.com/deppfellow/bookmarks-api/internal/server"
	"github.com/deppfellow/bookmarks-api/internal/service"
	"github.com/labstack/echo/v4"
)

// BookmarksPath is the collection path; items live under BookmarksPath/<id>.
const BookmarksPath = "/api/bookmarks"

type BookmarkHandler struct {
	Handler
	bookmarks *service.BookmarkService
}

func NewBookmarkHandler(s *server.Server, bookmarks *service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{
		Handler:   NewHandler(s),
		bookmarks: bookmarks,
	}
}

func (h *BookmarkHandler) ListBookmarks(c echo.Context, _ *ListBookmarksRequest) ([]model.SerializedBookmark, error) {
	return h.bookmarks.ListBookmarks(c.Request().Context())
}

func (h *BookmarkHandler) GetBookmark(c echo.Context, req *GetBookmarkRequest) (*model.SerializedBookmark, error) {
	return h.bookmarks.GetBookmark(c.Request().Context(), req.BookmarkID)
}

// CreateBookmark responds with the stored record as is, unescaped, and
// points Location at it.
func (h *BookmarkHandler) CreateBookmark(c echo.Context, req *CreateBookmarkRequest) (*model.Bookmark, error) {
	bookmark, err := h.bookmarks.CreateBookmark(c.Request().Context(), req.Bookmark)
	if err != nil {
		return nil, err
	}

	c.Response().Header().Set(echo.HeaderLocation, BookmarksPath+"/"+bookmark.ID.String())
	return bookmark, nil
}

func (h *BookmarkHandler) DeleteBookmark(c echo.Context, req *DeleteBookmarkRequest) error {
	return h.bookmarks.DeleteBookmark(c.Request().Context(), req.BookmarkID)
}

func (h *BookmarkHandler) UpdateBookmark(c echo.Context, req *PatchBookmarkRequest) error {
	return h.bookmarks.UpdateBookmark(c.Request().Context(), req.BookmarkID, req.Patch)
}

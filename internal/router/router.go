// Package router builds the echo instance: global middleware, system routes
// and the bookmarks API.
package router

import (
	"net/http"

	"github.com/deppfellow/bookmarks-api/internal/handler"
	"github.com/deppfellow/bookmarks-api/internal/middleware"
	"github.com/labstack/echo/v4"
)

func NewRouter(h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = m.Global.GlobalErrorHandler

	router.Use(
		m.Global.CORS(),
		m.Global.Secure(),
		middleware.RequestID(),
		m.Tracing.NewRelicMiddleware(),
		m.Tracing.EnhanceTracing(),
		m.ContextEnhancer.EnhanceContext(),
		m.Global.RequestLogger(),
		m.Global.Recover(),
		m.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h)
	registerBookmarkRoutes(router, h)

	return router
}

func registerBookmarkRoutes(r *echo.Echo, h *handler.Handlers) {
	b := h.Bookmarks
	bookmarks := r.Group(handler.BookmarksPath)

	bookmarks.GET("", handler.Handle(b.Handler, b.ListBookmarks, http.StatusOK, &handler.ListBookmarksRequest{}))
	bookmarks.POST("", handler.Handle(b.Handler, b.CreateBookmark, http.StatusCreated, &handler.CreateBookmarkRequest{}))

	bookmarks.GET("/:bookmark_id", handler.Handle(b.Handler, b.GetBookmark, http.StatusOK, &handler.GetBookmarkRequest{}))
	bookmarks.DELETE("/:bookmark_id", handler.HandleNoContent(b.Handler, b.DeleteBookmark, http.StatusNoContent, &handler.DeleteBookmarkRequest{}))
	bookmarks.PATCH("/:bookmark_id", handler.HandleNoContent(b.Handler, b.UpdateBookmark, http.StatusNoContent, &handler.PatchBookmarkRequest{}))
}

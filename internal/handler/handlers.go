// Package handler is the HTTP layer.
//
// Handlers bind and validate requests, call the service layer and shape the
// response. Errors are returned to the global error handler, which writes
// them.
package handler

import (
	"github.com/deppfellow/bookmarks-api/internal/server"
	"github.com/deppfellow/bookmarks-api/internal/service"
)

type Handlers struct {
	Health    *HealthHandler
	OpenAPI   *OpenAPIHandler
	Bookmarks *BookmarkHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(s),
		OpenAPI:   NewOpenAPIHandler(s),
		Bookmarks: NewBookmarkHandler(s, services.Bookmarks),
	}
}

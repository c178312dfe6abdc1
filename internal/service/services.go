// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives validated
// input from handlers, performs one repository call per operation and maps
// storage outcomes onto application errors.
package service

import (
	"github.com/deppfellow/bookmarks-api/internal/repository"
	"github.com/deppfellow/bookmarks-api/internal/server"
)

type Services struct {
	Bookmarks *BookmarkService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var notifier Notifier
	if s.Config.Integration.NotificationsEnabled() && s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Bookmarks: NewBookmarkService(repos.Bookmarks, notifier, s.Config.Integration.NotifyEmail),
	}, nil
}

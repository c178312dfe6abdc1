package service

import (
	"context"
	"errors"

	"github.com/deppfellow/bookmarks-api/internal/errs"
	"github.com/deppfellow/bookmarks-api/internal/lib/job"
	"github.com/deppfellow/bookmarks-api/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// BookmarkStore is the persistence the service needs.
type BookmarkStore interface {
	GetAllBookmarks(ctx context.Context) ([]model.Bookmark, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Bookmark, error)
	InsertBookmark(ctx context.Context, b model.NewBookmark) (*model.Bookmark, error)
	DeleteBookmark(ctx context.Context, id uuid.UUID) (int64, error)
	UpdateBookmark(ctx context.Context, id uuid.UUID, patch model.BookmarkPatch) (int64, error)
}

// Notifier queues the email sent after a bookmark is created.
type Notifier interface {
	EnqueueBookmarkCreated(ctx context.Context, p job.BookmarkCreatedPayload) error
}

type BookmarkService struct {
	store    BookmarkStore
	notifier Notifier
	notifyTo string
}

// NewBookmarkService builds the service. A nil notifier disables notifications.
func NewBookmarkService(store BookmarkStore, notifier Notifier, notifyTo string) *BookmarkService {
	return &BookmarkService{store: store, notifier: notifier, notifyTo: notifyTo}
}

const (
	msgNotFound       = "Bookmark Not Found"
	msgDeleteNotFound = "Bookmark not found"
)

func notFound(message string) error {
	return errs.NewNotFoundError(message, false, nil).AsText()
}

// parseID treats a malformed id like a missing row: neither can match.
func parseID(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	return id, err == nil
}

func (s *BookmarkService) ListBookmarks(ctx context.Context) ([]model.SerializedBookmark, error) {
	bookmarks, err := s.store.GetAllBookmarks(ctx)
	if err != nil {
		return nil, err
	}
	return model.SerializeBookmarks(bookmarks), nil
}

func (s *BookmarkService) GetBookmark(ctx context.Context, rawID string) (*model.SerializedBookmark, error) {
	logger := zerolog.Ctx(ctx)

	id, ok := parseID(rawID)
	if !ok {
		logger.Error().Str("bookmark_id", rawID).Msg("bookmark not found")
		return nil, notFound(msgNotFound)
	}

	bookmark, err := s.store.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Str("bookmark_id", rawID).Msg("bookmark not found")
		return nil, notFound(msgNotFound)
	}
	if err != nil {
		return nil, err
	}

	serialized := bookmark.Serialize()
	return &serialized, nil
}

// CreateBookmark stores b and, when configured, queues a notification.
// A failure to queue is logged and never fails the create.
func (s *BookmarkService) CreateBookmark(ctx context.Context, b model.NewBookmark) (*model.Bookmark, error) {
	logger := zerolog.Ctx(ctx)

	logger.Info().Str("title", b.Title).Msg("creating bookmark")

	bookmark, err := s.store.InsertBookmark(ctx, b)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("bookmark_id", bookmark.ID.String()).Msg("bookmark created")

	if s.notifier != nil {
		err := s.notifier.EnqueueBookmarkCreated(ctx, job.BookmarkCreatedPayload{
			To:         s.notifyTo,
			BookmarkID: bookmark.ID.String(),
			Title:      bookmark.Title,
			URL:        bookmark.URL,
			Rating:     bookmark.Rating,
		})
		if err != nil {
			logger.Error().Err(err).
				Str("bookmark_id", bookmark.ID.String()).
				Msg("failed to enqueue bookmark notification")
		}
	}

	return bookmark, nil
}

func (s *BookmarkService) DeleteBookmark(ctx context.Context, rawID string) error {
	logger := zerolog.Ctx(ctx)

	logger.Info().Str("bookmark_id", rawID).Msg("deleting bookmark")

	id, ok := parseID(rawID)
	if !ok {
		return notFound(msgDeleteNotFound)
	}

	n, err := s.store.DeleteBookmark(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		logger.Error().Str("bookmark_id", rawID).Msg("bookmark not found")
		return notFound(msgDeleteNotFound)
	}

	logger.Info().Str("bookmark_id", rawID).Msg("bookmark deleted")
	return nil
}

// UpdateBookmark applies patch, which must set at least one field.
func (s *BookmarkService) UpdateBookmark(ctx context.Context, rawID string, patch model.BookmarkPatch) error {
	logger := zerolog.Ctx(ctx)

	id, ok := parseID(rawID)
	if !ok {
		logger.Error().Str("bookmark_id", rawID).Msg("bookmark not found")
		return notFound(msgNotFound)
	}

	n, err := s.store.UpdateBookmark(ctx, id, patch)
	if err != nil {
		return err
	}
	if n == 0 {
		logger.Error().Str("bookmark_id", rawID).Msg("bookmark not found")
		return notFound(msgNotFound)
	}

	logger.Info().Str("bookmark_id", rawID).Msg("bookmark updated")
	return nil
}

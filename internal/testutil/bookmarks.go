// Package testutil holds in-memory fakes shared by handler and service tests.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/deppfellow/bookmarks-api/internal/model"
	"github.com/deppfellow/bookmarks-api/internal/sqlerr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// BookmarkStore keeps bookmarks in insertion order.
type BookmarkStore struct {
	mu        sync.Mutex
	bookmarks []model.Bookmark

	// Err, when set, is returned by every call.
	Err error
}

func NewBookmarkStore(seed ...model.Bookmark) *BookmarkStore {
	return &BookmarkStore{bookmarks: append([]model.Bookmark(nil), seed...)}
}

func (s *BookmarkStore) GetAllBookmarks(_ context.Context) ([]model.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	return append([]model.Bookmark(nil), s.bookmarks...), nil
}

func (s *BookmarkStore) GetByID(_ context.Context, id uuid.UUID) (*model.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	if i := s.index(id); i >= 0 {
		b := s.bookmarks[i]
		return &b, nil
	}
	return nil, sqlerr.WithTable("bookmarks", pgx.ErrNoRows)
}

func (s *BookmarkStore) InsertBookmark(_ context.Context, nb model.NewBookmark) (*model.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	b := model.Bookmark{
		ID:          uuid.New(),
		Title:       nb.Title,
		URL:         nb.URL,
		Description: nb.Description,
		Rating:      nb.Rating,
	}
	s.bookmarks = append(s.bookmarks, b)
	return &b, nil
}

func (s *BookmarkStore) DeleteBookmark(_ context.Context, id uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return 0, s.Err
	}
	i := s.index(id)
	if i < 0 {
		return 0, nil
	}
	s.bookmarks = append(s.bookmarks[:i], s.bookmarks[i+1:]...)
	return 1, nil
}

func (s *BookmarkStore) UpdateBookmark(_ context.Context, id uuid.UUID, patch model.BookmarkPatch) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return 0, s.Err
	}
	i := s.index(id)
	if i < 0 {
		return 0, nil
	}

	if column := nullInRequiredColumn(patch); column != "" {
		return 0, sqlerr.WithTable("bookmarks", &pgconn.PgError{
			Severity:   "ERROR",
			Code:       "23502",
			Message:    fmt.Sprintf("null value in column %q of relation \"bookmarks\" violates not-null constraint", column),
			TableName:  "bookmarks",
			ColumnName: column,
		})
	}

	b := &s.bookmarks[i]
	if patch.Title.Set {
		b.Title = *patch.Title.Value
	}
	if patch.URL.Set {
		b.URL = *patch.URL.Value
	}
	if patch.Description.Set {
		b.Description = patch.Description.Value
	}
	if patch.Rating.Set {
		b.Rating = *patch.Rating.Value
	}
	return 1, nil
}

// nullInRequiredColumn returns the first NOT NULL column the patch sets to
// NULL, in table column order, as PostgreSQL reports it.
func nullInRequiredColumn(patch model.BookmarkPatch) string {
	switch {
	case patch.Title.Set && patch.Title.Value == nil:
		return "title"
	case patch.URL.Set && patch.URL.Value == nil:
		return "url"
	case patch.Rating.Set && patch.Rating.Value == nil:
		return "rating"
	}
	return ""
}

// Len reports how many bookmarks are stored.
func (s *BookmarkStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookmarks)
}

func (s *BookmarkStore) index(id uuid.UUID) int {
	for i := range s.bookmarks {
		if s.bookmarks[i].ID == id {
			return i
		}
	}
	return -1
}

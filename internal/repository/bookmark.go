package repository

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/deppfellow/bookmarks-api/internal/model"
	"github.com/deppfellow/bookmarks-api/internal/sqlerr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bookmarksTable = "bookmarks"

var bookmarkColumns = []string{"id", "title", "url", "description", "rating"}

type BookmarkRepository struct {
	db DBTX
}

func NewBookmarkRepository(db DBTX) *BookmarkRepository {
	return &BookmarkRepository{db: db}
}

func selectBookmarks() sq.SelectBuilder {
	return psql.Select(bookmarkColumns...).From(bookmarksTable)
}

func selectBookmarkByID(id uuid.UUID) sq.SelectBuilder {
	return selectBookmarks().Where(sq.Eq{"id": id}).Limit(1)
}

func insertBookmark(b model.NewBookmark) sq.InsertBuilder {
	return psql.Insert(bookmarksTable).
		Columns("title", "url", "description", "rating").
		Values(b.Title, b.URL, b.Description, b.Rating).
		Suffix("RETURNING " + strings.Join(bookmarkColumns, ", "))
}

func deleteBookmark(id uuid.UUID) sq.DeleteBuilder {
	return psql.Delete(bookmarksTable).Where(sq.Eq{"id": id})
}

func updateBookmark(id uuid.UUID, patch model.BookmarkPatch) sq.UpdateBuilder {
	return psql.Update(bookmarksTable).
		SetMap(patch.Columns()).
		Where(sq.Eq{"id": id})
}

// GetAllBookmarks returns every bookmark in storage order.
func (r *BookmarkRepository) GetAllBookmarks(ctx context.Context) ([]model.Bookmark, error) {
	query, args, err := selectBookmarks().ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list bookmarks query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, sqlerr.WithTable(bookmarksTable, fmt.Errorf("failed to execute list bookmarks query: %w", err))
	}

	bookmarks, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Bookmark])
	if err != nil {
		return nil, sqlerr.WithTable(bookmarksTable, fmt.Errorf("failed to collect bookmarks: %w", err))
	}

	return bookmarks, nil
}

// GetByID returns the bookmark or a wrapped pgx.ErrNoRows.
func (r *BookmarkRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Bookmark, error) {
	query, args, err := selectBookmarkByID(id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get bookmark query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, sqlerr.WithTable(bookmarksTable, fmt.Errorf("failed to execute get bookmark query for id=%s: %w", id, err))
	}

	bookmark, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Bookmark])
	if err != nil {
		return nil, sqlerr.WithTable(bookmarksTable, fmt.Errorf("failed to collect bookmark id=%s: %w", id, err))
	}

	return &bookmark, nil
}

// InsertBookmark stores b and returns the row with its generated id.
func (r *BookmarkRepository) InsertBookmark(ctx context.Context, b model.NewBookmark) (*model.Bookmark, error) {
	query, args, err := insertBookmark(b).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert bookmark query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, sqlerr.WithTable(bookmarksTable, fmt.Errorf("failed to execute insert bookmark query: %w", err))
	}

	bookmark, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Bookmark])
	if err != nil {
		return nil, sqlerr.WithTable(bookmarksTable, fmt.Errorf("failed to collect inserted bookmark: %w", err))
	}

	return &bookmark, nil
}

// DeleteBookmark removes the bookmark and reports how many rows went away.
func (r *BookmarkRepository) DeleteBookmark(ctx context.Context, id uuid.UUID) (int64, error) {
	query, args, err := deleteBookmark(id).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete bookmark query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, sqlerr.WithTable(bookmarksTable, fmt.Errorf("failed to delete bookmark id=%s: %w", id, err))
	}

	return tag.RowsAffected(), nil
}

// UpdateBookmark writes the set fields of patch and reports how many rows matched.
func (r *BookmarkRepository) UpdateBookmark(ctx context.Context, id uuid.UUID, patch model.BookmarkPatch) (int64, error) {
	if patch.IsEmpty() {
		return 0, fmt.Errorf("update bookmark id=%s: empty patch", id)
	}

	query, args, err := updateBookmark(id, patch).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build update bookmark query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, sqlerr.WithTable(bookmarksTable, fmt.Errorf("failed to update bookmark id=%s: %w", id, err))
	}

	return tag.RowsAffected(), nil
}

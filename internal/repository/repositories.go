// Package repository handles all interactions with the database.
//
// Queries are built with squirrel and run through a DBTX, so every
// repository works the same on the pool and inside a transaction.
package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/deppfellow/bookmarks-api/internal/server"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// psql renders $1, $2... placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repositories is a container for all repository instances.
type Repositories struct {
	Bookmarks *BookmarkRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Bookmarks: NewBookmarkRepository(s.DB.Pool),
	}
}

package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/bookmarks-api/internal/errs"
	"github.com/deppfellow/bookmarks-api/internal/lib/job"
	"github.com/deppfellow/bookmarks-api/internal/model"
	"github.com/deppfellow/bookmarks-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	payloads []job.BookmarkCreatedPayload
	err      error
}

func (n *fakeNotifier) EnqueueBookmarkCreated(_ context.Context, p job.BookmarkCreatedPayload) error {
	n.payloads = append(n.payloads, p)
	return n.err
}

func loggedContext() (context.Context, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	return logger.WithContext(context.Background()), &buf
}

func requireNotFound(t *testing.T, err error, message string) {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, message, httpErr.Message)
	assert.Equal(t, errs.FormatText, httpErr.Format)
}

func seeded() (*testutil.BookmarkStore, model.Bookmark) {
	b := model.Bookmark{ID: uuid.New(), Title: "<i>Go</i>", URL: "https://go.dev", Rating: 4}
	return testutil.NewBookmarkStore(b), b
}

func TestListBookmarks(t *testing.T) {
	store, b := seeded()
	svc := NewBookmarkService(store, nil, "")

	got, err := svc.ListBookmarks(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)
	assert.Equal(t, "&lt;i&gt;Go&lt;/i&gt;", got[0].Title)
}

func TestListBookmarks_Empty(t *testing.T) {
	svc := NewBookmarkService(testutil.NewBookmarkStore(), nil, "")

	got, err := svc.ListBookmarks(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListBookmarks_StoreError(t *testing.T) {
	store := testutil.NewBookmarkStore()
	store.Err = errors.New("connection refused")
	svc := NewBookmarkService(store, nil, "")

	_, err := svc.ListBookmarks(context.Background())
	assert.EqualError(t, err, "connection refused")
}

func TestGetBookmark(t *testing.T) {
	store, b := seeded()
	svc := NewBookmarkService(store, nil, "")

	got, err := svc.GetBookmark(context.Background(), b.ID.String())
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, "", got.Description)
}

func TestGetBookmark_NotFound(t *testing.T) {
	store, _ := seeded()
	svc := NewBookmarkService(store, nil, "")
	ctx, logs := loggedContext()

	_, err := svc.GetBookmark(ctx, uuid.NewString())
	requireNotFound(t, err, "Bookmark Not Found")
	assert.Contains(t, logs.String(), `"level":"error"`)

	_, err = svc.GetBookmark(ctx, "not-a-uuid")
	requireNotFound(t, err, "Bookmark Not Found")
}

func TestCreateBookmark(t *testing.T) {
	store := testutil.NewBookmarkStore()
	notifier := &fakeNotifier{}
	svc := NewBookmarkService(store, notifier, "me@example.com")
	ctx, logs := loggedContext()

	created, err := svc.CreateBookmark(ctx, model.NewBookmark{Title: "Go", URL: "https://go.dev", Rating: 0})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, 0, created.Rating)
	assert.Equal(t, 1, store.Len())

	assert.Contains(t, logs.String(), "creating bookmark")
	assert.Contains(t, logs.String(), created.ID.String())

	require.Len(t, notifier.payloads, 1)
	assert.Equal(t, job.BookmarkCreatedPayload{
		To:         "me@example.com",
		BookmarkID: created.ID.String(),
		Title:      "Go",
		URL:        "https://go.dev",
		Rating:     0,
	}, notifier.payloads[0])
}

func TestCreateBookmark_NotifierFailureIsLogged(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("redis down")}
	svc := NewBookmarkService(testutil.NewBookmarkStore(), notifier, "me@example.com")
	ctx, logs := loggedContext()

	created, err := svc.CreateBookmark(ctx, model.NewBookmark{Title: "Go", URL: "https://go.dev", Rating: 3})
	require.NoError(t, err)
	assert.NotNil(t, created)
	assert.Contains(t, logs.String(), "failed to enqueue bookmark notification")
}

func TestCreateBookmark_StoreError(t *testing.T) {
	store := testutil.NewBookmarkStore()
	store.Err = errors.New("insert failed")
	notifier := &fakeNotifier{}
	svc := NewBookmarkService(store, notifier, "me@example.com")

	_, err := svc.CreateBookmark(context.Background(), model.NewBookmark{Title: "Go", URL: "https://go.dev"})
	assert.Error(t, err)
	assert.Empty(t, notifier.payloads)
}

func TestDeleteBookmark(t *testing.T) {
	store, b := seeded()
	svc := NewBookmarkService(store, nil, "")

	require.NoError(t, svc.DeleteBookmark(context.Background(), b.ID.String()))
	assert.Equal(t, 0, store.Len())

	requireNotFound(t, svc.DeleteBookmark(context.Background(), b.ID.String()), "Bookmark not found")
	requireNotFound(t, svc.DeleteBookmark(context.Background(), "42"), "Bookmark not found")
}

func TestDeleteBookmark_StoreError(t *testing.T) {
	store, b := seeded()
	store.Err = errors.New("boom")
	svc := NewBookmarkService(store, nil, "")

	assert.EqualError(t, svc.DeleteBookmark(context.Background(), b.ID.String()), "boom")
}

func TestUpdateBookmark(t *testing.T) {
	store, b := seeded()
	svc := NewBookmarkService(store, nil, "")

	err := svc.UpdateBookmark(context.Background(), b.ID.String(), model.BookmarkPatch{Rating: model.Of(1)})
	require.NoError(t, err)

	got, err := store.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Rating)
	assert.Equal(t, b.Title, got.Title)
}

func TestUpdateBookmark_NotFound(t *testing.T) {
	store, _ := seeded()
	svc := NewBookmarkService(store, nil, "")
	patch := model.BookmarkPatch{Title: model.Of("x")}

	requireNotFound(t, svc.UpdateBookmark(context.Background(), uuid.NewString(), patch), "Bookmark Not Found")
	requireNotFound(t, svc.UpdateBookmark(context.Background(), "abc", patch), "Bookmark Not Found")
}

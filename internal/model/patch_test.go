package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookmarkPatch_Columns(t *testing.T) {
	p := BookmarkPatch{
		Title:       Of("new title"),
		Description: Null[string](),
		Rating:      Of(0),
	}

	assert.Equal(t, map[string]any{
		"title":       "new title",
		"description": nil,
		"rating":      0,
	}, p.Columns())
	assert.False(t, p.IsEmpty())
}

func TestBookmarkPatch_Empty(t *testing.T) {
	assert.True(t, BookmarkPatch{}.IsEmpty())
	assert.Empty(t, BookmarkPatch{}.Columns())
}

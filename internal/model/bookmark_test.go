package model

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRating(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: `0`, want: 0},
		{raw: `5`, want: 5},
		{raw: `4`, want: 4},
		{raw: `"3"`, want: 3},
		{raw: `" 2 "`, want: 2},
		{raw: `4.0`, want: 4},
		{raw: `-1`, wantErr: true},
		{raw: `6`, wantErr: true},
		{raw: `2.5`, wantErr: true},
		{raw: `"abc"`, wantErr: true},
		{raw: `true`, wantErr: true},
		{raw: `null`, wantErr: true},
		{raw: `[1]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseRating(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRating)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsWebURI(t *testing.T) {
	assert.True(t, IsWebURI("https://example.com"))
	assert.True(t, IsWebURI("http://example.com/path?q=1"))

	assert.False(t, IsWebURI("not-a-url"))
	assert.False(t, IsWebURI("ftp://example.com"))
	assert.False(t, IsWebURI("https://"))
	assert.False(t, IsWebURI(""))
}

func TestIsFalsy(t *testing.T) {
	for _, raw := range []string{``, `null`, `false`, `0`, `""`} {
		assert.True(t, IsFalsy(json.RawMessage(raw)), raw)
	}
	for _, raw := range []string{`"x"`, `1`, `true`, `{}`, `[]`} {
		assert.False(t, IsFalsy(json.RawMessage(raw)), raw)
	}
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(nil))
	assert.True(t, IsBlank(json.RawMessage(`""`)))
	assert.True(t, IsBlank(json.RawMessage(`null`)))
	assert.False(t, IsBlank(json.RawMessage(`0`)))
	assert.False(t, IsBlank(json.RawMessage(`"0"`)))
}

func TestSerialize_EscapesText(t *testing.T) {
	description := `<img src=x onerror="alert(1)">`
	b := Bookmark{
		ID:          uuid.New(),
		Title:       "<script>x</script>",
		URL:         "https://example.com/?a=1&b=2",
		Description: &description,
		Rating:      3,
	}

	s := b.Serialize()

	assert.Equal(t, b.ID, s.ID)
	assert.Equal(t, "&lt;script&gt;x&lt;/script&gt;", s.Title)
	assert.Equal(t, "https://example.com/?a=1&amp;b=2", s.URL)
	assert.NotContains(t, s.Description, "<")
	assert.Equal(t, 3, s.Rating)
}

func TestSerialize_NilDescription(t *testing.T) {
	b := Bookmark{Title: "t", URL: "https://example.com", Rating: 1}
	assert.Equal(t, "", b.Serialize().Description)
}

func TestSerializeBookmarks_Empty(t *testing.T) {
	out := SerializeBookmarks(nil)
	require.NotNil(t, out)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

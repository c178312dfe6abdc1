package email

import "strconv"

// BookmarkCreated describes the bookmark announced by a notification.
type BookmarkCreated struct {
	ID     string
	Title  string
	URL    string
	Rating int
}

// SendBookmarkCreatedEmail tells to that a bookmark was saved.
func (c *Client) SendBookmarkCreatedEmail(to string, b BookmarkCreated) error {
	data := map[string]string{
		"BookmarkID":     b.ID,
		"BookmarkTitle":  b.Title,
		"BookmarkURL":    b.URL,
		"BookmarkRating": strconv.Itoa(b.Rating),
	}

	return c.SendEmail(to, "New bookmark: "+b.Title, TemplateBookmarkCreated, data)
}

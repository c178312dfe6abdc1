package email

// PreviewData holds sample values for every template, keyed by template name.
var PreviewData = map[Template]map[string]string{
	TemplateBookmarkCreated: {
		"BookmarkID":     "8b0f0d4e-2a8c-4f7e-9a55-1f3c2d9e7b10",
		"BookmarkTitle":  "The Go Programming Language",
		"BookmarkURL":    "https://go.dev",
		"BookmarkRating": "5",
	},
}

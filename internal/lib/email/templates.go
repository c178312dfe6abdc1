package email

// Template names a file under templates/emails, without the extension.
type Template string

const (
	TemplateBookmarkCreated Template = "bookmark_created"
)

package email

import "embed"

// Template names an HTML file under templates/.
type Template string

const (
	// TemplateContactCreated corresponds to templates/contact_created.html.
	TemplateContactCreated Template = "contact_created"
)

//go:embed templates/*.html
var templates embed.FS

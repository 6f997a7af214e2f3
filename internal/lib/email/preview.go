package email

// PreviewData holds sample template data for local previews and tests,
// keyed by template name.
var PreviewData = map[Template]map[string]string{
	TemplateContactCreated: {
		"ContactID": "507f1f77bcf86cd799439011",
		"Name":      "Allen Raymond",
		"Email":     "nulla.ante@vestibul.co.uk",
		"Phone":     "(992) 914-3792",
	},
}

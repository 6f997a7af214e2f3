package email

// SendContactCreatedEmail tells to that a contact was added.
func (c *Client) SendContactCreatedEmail(to, contactID, name, email, phone string) error {
	data := map[string]string{
		"ContactID": contactID,
		"Name":      name,
		"Email":     email,
		"Phone":     phone,
	}

	return c.SendEmail(
		to,
		"New contact: "+name,
		TemplateContactCreated,
		data,
	)
}

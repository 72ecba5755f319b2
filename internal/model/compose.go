package model

// Compose is the school's new-message form.
type Compose struct {
	Type      MessageType `form:"type" validate:"oneof=general individual"`
	Subject   string      `form:"subject" validate:"required,max=200"`
	Message   string      `form:"message" validate:"required"`
	Recipient string      `form:"recipient" validate:"required_if=Type individual"`
	Category  string      `form:"category"`
}

// SentMessage builds the history entry for the form.
func (c Compose) SentMessage() SentMessage {
	m := SentMessage{
		Title:    c.Subject,
		Content:  c.Message,
		Type:     c.Type,
		Category: Category(c.Category),
	}
	if c.Type == TypeIndividual {
		m.Recipient = c.Recipient
	}
	return m
}

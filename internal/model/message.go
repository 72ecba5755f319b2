// Package model defines data structure.
package model

import "time"

// MessageType tells broadcast messages apart from single-recipient ones.
type MessageType string

const (
	// TypeGeneral is a broadcast to every parent of the school.
	TypeGeneral MessageType = "general"

	// TypeIndividual is addressed to exactly one parent.
	TypeIndividual MessageType = "individual"
)

// Message holds information about a single message in a parent's inbox.
type Message struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Content       string      `json:"content"`
	Sender        string      `json:"sender"`
	Date          time.Time   `json:"date"`
	Read          bool        `json:"read"`
	Type          MessageType `json:"type"`
	Category      *string     `json:"category,omitempty"` // nil = uncategorized
	HasAttachment bool        `json:"has_attachment,omitempty"`
}

// CategoryName returns the category or "" when the message has none.
func (m Message) CategoryName() string {
	if m.Category == nil {
		return ""
	}
	return *m.Category
}

// SentMessage is the school-side record of a message, with delivery counts.
type SentMessage struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Content         string      `json:"content"`
	Date            time.Time   `json:"date"`
	Type            MessageType `json:"type"`
	Category        *string     `json:"category,omitempty"`
	Recipient       string      `json:"recipient,omitempty"` // individual only
	ReadCount       int         `json:"read_count"`
	TotalRecipients int         `json:"total_recipients"`
	HasAttachment   bool        `json:"has_attachment,omitempty"`
}

// CategoryName returns the category or "" when the message has none.
func (m SentMessage) CategoryName() string {
	if m.Category == nil {
		return ""
	}
	return *m.Category
}

// Category returns a pointer to c, or nil when c is empty.
func Category(c string) *string {
	if c == "" {
		return nil
	}
	return &c
}

// Package store defines where the portal keeps its messages.
package store

import (
	"context"
	"errors"

	"github.com/johndosdos/escola/internal/model"
)

// ErrNotFound is returned when a message or recipient does not exist.
var ErrNotFound = errors.New("store: not found")

// Repository is the message store used by the handlers. Owners are parent
// session emails.
type Repository interface {
	// Inbox returns the owner's messages, newest first.
	Inbox(ctx context.Context, owner string) ([]model.Message, error)
	// MarkRead flags a message of the owner's inbox as read.
	MarkRead(ctx context.Context, owner, id string) error
	// Sent returns the school's message history, newest first.
	Sent(ctx context.Context) ([]model.SentMessage, error)
	// Send records msg in the history and delivers it to its recipients.
	Send(ctx context.Context, msg model.SentMessage, sender string) (model.SentMessage, error)
	Recipients(ctx context.Context) ([]model.Recipient, error)
	Events(ctx context.Context) ([]model.Event, error)
	Activities(ctx context.Context) ([]model.Activity, error)
	Stats(ctx context.Context) (model.SchoolStats, error)
	Overview(ctx context.Context, owner string) (model.ParentOverview, error)
}

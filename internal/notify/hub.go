// Package notify pushes notices to the browsers of logged-in users over
// websockets.
package notify

import (
	"context"
	"log"

	"github.com/johndosdos/escola/internal/auth"
	"github.com/johndosdos/escola/internal/model"
)

type Registration struct {
	Client *Client
	Done   chan struct{}
}

// Envelope addresses a notice. Emails and Role are alternatives: a
// non-empty Emails list wins, otherwise every client of Role receives it.
type Envelope struct {
	Emails []string
	Role   auth.UserType
	Notice model.Notice
}

// Hub tracks the connected clients and fans notices out to them.
type Hub struct {
	clients    map[*Client]struct{}
	Register   chan Registration
	Unregister chan *Client
	Publish    chan Envelope
	done       chan struct{}
}

// NewHub returns a new instance of Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		Register:   make(chan Registration),
		Unregister: make(chan *Client),
		Publish:    make(chan Envelope, 256),
		done:       make(chan struct{}),
	}
}

// Run manages registrations and deliveries until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case reg := <-h.Register:
			h.clients[reg.Client] = struct{}{}
			reg.Client.hub = h
			close(reg.Done)

		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.NoticeCh)
			}

		case env := <-h.Publish:
			for client := range h.clients {
				if !env.addresses(client) {
					continue
				}
				select {
				case client.NoticeCh <- env.Notice:
				default:
					log.Printf("skipping notice for %s - channel full or client slow", client.Email)
				}
			}

		case <-ctx.Done():
			for client := range h.clients {
				delete(h.clients, client)
				close(client.NoticeCh)
			}
			return
		}
	}
}

func (e Envelope) addresses(c *Client) bool {
	if len(e.Emails) > 0 {
		for _, email := range e.Emails {
			if email == c.Email {
				return true
			}
		}
		return false
	}
	return e.Role == "" || e.Role == c.Role
}

// Join registers c and waits until the hub has taken it. It returns false
// when the hub has stopped or ctx ends first.
func (h *Hub) Join(ctx context.Context, c *Client) bool {
	reg := Registration{Client: c, Done: make(chan struct{})}
	select {
	case h.Register <- reg:
	case <-h.done:
		return false
	case <-ctx.Done():
		return false
	}
	<-reg.Done
	return true
}

// Notify queues env without blocking the caller for long: when the hub is
// backed up the notice is dropped. Notices are fire-and-forget.
func (h *Hub) Notify(ctx context.Context, env Envelope) {
	select {
	case h.Publish <- env:
	case <-ctx.Done():
	default:
		log.Printf("dropping notice %q - hub is busy", env.Notice.Title)
	}
}

package notify

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/coder/websocket"

	"github.com/johndosdos/escola/components/layout"
	"github.com/johndosdos/escola/internal/auth"
	"github.com/johndosdos/escola/internal/model"
)

type Client struct {
	Email    string
	Role     auth.UserType
	conn     *websocket.Conn
	hub      *Hub
	NoticeCh chan model.Notice
}

func NewClient(conn *websocket.Conn, session auth.Session) *Client {
	return &Client{
		conn:     conn,
		Email:    session.Email,
		Role:     session.Type,
		NoticeCh: make(chan model.Notice, 16),
	}
}

// WriteNotices renders queued notices to the websocket stream. The
// fragments carry hx-swap-oob so htmx appends them to #notices.
func (c *Client) WriteNotices(ctx context.Context) {
	for {
		select {
		case notice, ok := <-c.NoticeCh:
			if !ok {
				c.conn.Close(websocket.StatusNormalClosure, "channel closed")
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			w, err := c.conn.Writer(writeCtx, websocket.MessageText)
			if err != nil {
				slog.WarnContext(ctx, "failed to return a writer",
					"error", err)
				cancel()
				continue
			}

			if err := layout.Notice(notice, true).Render(writeCtx, w); err != nil {
				slog.ErrorContext(ctx, "failed to render notice",
					"error", err,
					"email", c.Email)
			}

			w.Close()
			cancel()

		case <-ctx.Done():
			c.conn.Close(websocket.StatusGoingAway, "context cancelled")
			return
		}
	}
}

// ReadMessages blocks until the peer goes away, then unregisters the
// client. The browser never sends anything we act on.
func (c *Client) ReadMessages(ctx context.Context) {
	defer func() {
		select {
		case c.hub.Unregister <- c:
		case <-c.hub.done:
		}
		c.conn.CloseNow()
	}()

	for {
		_, _, err := c.conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure &&
				status != websocket.StatusGoingAway &&
				status != -1 {
				log.Printf("%v", err)
			}
			return
		}
	}
}

package handler

import (
	"log"
	"net/http"

	"github.com/coder/websocket"

	"github.com/johndosdos/escola/internal/notify"
)

// ServeWs upgrades the connection and streams the user's notices.
func ServeWs(h *notify.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		s, ok := session(w, r)
		if !ok {
			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			log.Printf("failed to upgrade connection to websocket: %v", err)
			return
		}
		log.Printf("upgraded connection for %s", s.Email)

		c := notify.NewClient(conn, s)
		if !h.Join(ctx, c) {
			conn.Close(websocket.StatusGoingAway, "servidor encerrando")
			return
		}

		// The request context is canceled once we return, so the read
		// loop runs on this goroutine.
		go c.WriteNotices(ctx)
		c.ReadMessages(ctx)
	}
}

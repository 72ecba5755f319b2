package handler

import (
	"log"
	"net/http"

	"github.com/johndosdos/escola/internal/auth"
)

// RefreshSession reissues the session token with a fresh expiry. Open
// pages call it periodically so an active user is not logged out.
func RefreshSession(opts SessionOpts) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := session(w, r)
		if !ok {
			return
		}

		token, err := auth.MakeJWT(s.Email, s.Type, opts.Issuer, opts.Secret, opts.TTL)
		if err != nil {
			log.Printf("handler/refresh session: failed to create JWT: %v", err)
			http.Error(w, "Erro interno.", http.StatusInternalServerError)
			return
		}

		auth.SetSessionCookie(w, token, opts.TTL)
		w.WriteHeader(http.StatusNoContent)
	}
}

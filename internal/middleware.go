package internal

import (
	"log/slog"
	"net/http"

	"github.com/johndosdos/escola/internal/auth"
)

// SessionFromRequest reads and validates the session cookie. A missing,
// expired or corrupt cookie reports false.
func SessionFromRequest(r *http.Request, secret string) (auth.Session, bool) {
	cookie, err := r.Cookie(auth.CookieName)
	if err != nil {
		return auth.Session{}, false
	}

	session, err := auth.ValidateJWT(cookie.Value, secret)
	if err != nil {
		slog.DebugContext(r.Context(), "rejected session cookie", "error", err)
		return auth.Session{}, false
	}
	return session, true
}

// Redirect sends the client to path. htmx requests get an HX-Redirect so
// the whole page is replaced instead of the swap target.
func Redirect(w http.ResponseWriter, r *http.Request, path string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// Middleware validates the client's session and puts it in the request
// context. Without a session the client goes back to the login page; a
// session of another role goes to its own dashboard. An empty role admits
// any logged-in user.
func Middleware(next http.Handler, secret string, role auth.UserType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFromRequest(r, secret)
		if !ok {
			auth.ClearSessionCookie(w)
			Redirect(w, r, "/")
			return
		}

		if role != "" && session.Type != role {
			Redirect(w, r, session.Type.DashboardPath())
			return
		}

		r = r.WithContext(auth.WithSession(r.Context(), session))
		next.ServeHTTP(w, r)
	}
}

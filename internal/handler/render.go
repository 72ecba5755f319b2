// Package handler holds the HTTP handlers of the portal.
package handler

import (
	"log"
	"net/http"

	"github.com/a-h/templ"

	"github.com/johndosdos/escola/components/layout"
	"github.com/johndosdos/escola/internal/auth"
	"github.com/johndosdos/escola/internal/model"
)

func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		log.Printf("failed to render component: %v", err)
	}
}

// renderPage wraps body in the app shell of the session's role.
func renderPage(w http.ResponseWriter, r *http.Request, s auth.Session, title string, body templ.Component) {
	header := layout.AppHeader(string(s.Type), s.Email, r.URL.Path)
	render(w, r, layout.Page(title, layout.Container(header, body)))
}

// renderWithNotice renders c followed by an out-of-band notice.
func renderWithNotice(w http.ResponseWriter, r *http.Request, c templ.Component, n model.Notice) {
	render(w, r, templ.Join(c, layout.Notice(n, true)))
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// wantsFragment reports whether an htmx request targets the element id.
func wantsFragment(r *http.Request, id string) bool {
	return isHTMX(r) && r.Header.Get("HX-Target") == id
}

func serverError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	if isHTMX(r) {
		render(w, r, layout.Notice(model.Notice{
			Title:       "Erro",
			Description: "Não foi possível concluir a operação. Tente novamente mais tarde.",
			Severity:    model.SeverityDestructive,
		}, true))
		return
	}
	http.Error(w, "Erro interno.", http.StatusInternalServerError)
}

// session returns the session the middleware placed in the context.
func session(w http.ResponseWriter, r *http.Request) (auth.Session, bool) {
	s, err := auth.GetSessionFromContext(r.Context())
	if err != nil {
		log.Printf("%v", err)
		http.Error(w, "Sessão inválida.", http.StatusUnauthorized)
		return auth.Session{}, false
	}
	return s, true
}

// ServeNotFound renders the 404 page.
func ServeNotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("404: %s", r.URL.Path)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		if err := layout.Page("Página não encontrada", layout.NotFound()).Render(r.Context(), w); err != nil {
			log.Printf("failed to render component: %v", err)
		}
	}
}

// RedirectTo permanently points a legacy path at its current location.
func RedirectTo(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, path, http.StatusMovedPermanently)
	}
}

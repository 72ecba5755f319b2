package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/johndosdos/escola/internal"
	"github.com/johndosdos/escola/internal/auth"
	"github.com/johndosdos/escola/internal/notify"
	ratelimiter "github.com/johndosdos/escola/internal/rate_limiter"
	"github.com/johndosdos/escola/internal/store"
)

// Deps are what the routes need.
type Deps struct {
	Repo       store.Repository
	Hub        *notify.Hub
	Auth       *auth.Authenticator
	Session    SessionOpts
	LoginLimit *ratelimiter.IPRateLimiter
	SchoolName string
}

var legacyRedirects = map[string]string{
	"/login":            "/",
	"/school-dashboard": "/school/dashboard",
	"/school-messages":  "/school/messages",
	"/parent-dashboard": "/parent/dashboard",
	"/parent-messages":  "/parent/messages",
}

// Routes builds the portal router.
func Routes(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.NotFound(ServeNotFound())

	secret := d.Session.Secret
	gate := func(role auth.UserType, h http.Handler) http.Handler {
		return internal.Middleware(h, secret, role)
	}

	r.Get("/", ServeLoginPage(secret))
	r.Route("/account", func(r chi.Router) {
		login := http.Handler(SubmitLoginForm(d.Auth, d.Session))
		if d.LoginLimit != nil {
			login = d.LoginLimit.Middleware(login)
		}
		r.Method(http.MethodPost, "/login", login)
		r.Post("/logout", SubmitLogoutReq())
		r.Method(http.MethodPost, "/refresh", gate("", RefreshSession(d.Session)))
	})

	r.Route("/parent", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler { return gate(auth.TypeParent, next) })
		r.Get("/", RedirectTo("/parent/dashboard"))
		r.Get("/dashboard", ServeParentDashboard(d.Repo))
		r.Get("/messages", ServeParentMessages(d.Repo))
		r.Get("/messages/{id}", ServeMessageCard(d.Repo))
		r.Post("/messages/{id}/read", MarkMessageRead(d.Repo))
		r.Post("/messages/{id}/reply", SubmitReply(d.Repo, d.Hub))
	})

	r.Route("/school", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler { return gate(auth.TypeSchool, next) })
		r.Get("/", RedirectTo("/school/dashboard"))
		r.Get("/dashboard", ServeSchoolDashboard(d.Repo))
		r.Get("/messages", ServeSchoolMessages(d.Repo))
		r.Post("/messages", SubmitMessage(d.Repo, d.Hub, d.SchoolName))
		r.Get("/stats/charts", ServeCharts())
	})

	r.Handle("/ws/notifications", gate("", ServeWs(d.Hub)))

	for from, to := range legacyRedirects {
		r.Get(from, RedirectTo(to))
	}

	return r
}

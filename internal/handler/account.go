package handler

import (
	"errors"
	"log"
	"log/slog"
	"net/http"
	"time"

	viewAuth "github.com/johndosdos/escola/components/auth"
	"github.com/johndosdos/escola/internal"
	"github.com/johndosdos/escola/internal/auth"
	"github.com/johndosdos/escola/internal/validation"
)

// SessionOpts configures the tokens issued at login.
type SessionOpts struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// ServeLoginPage renders the login page, or sends a logged-in user to
// their dashboard.
func ServeLoginPage(secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s, ok := internal.SessionFromRequest(r, secret); ok {
			http.Redirect(w, r, s.Type.DashboardPath(), http.StatusSeeOther)
			return
		}
		render(w, r, viewAuth.Login())
	}
}

// SubmitLoginForm handles user login.
func SubmitLoginForm(authn *auth.Authenticator, opts SessionOpts) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		err := r.ParseForm()
		if err != nil {
			http.Error(w, "Dados de formulário inválidos.", http.StatusBadRequest)
			log.Printf("failed to parse form values: %v", err)
			return
		}

		creds := auth.Credentials{
			Email:    validation.Clean(r.PostFormValue("email"), true),
			Password: r.PostFormValue("password"),
			Type:     auth.UserType(r.PostFormValue("user_type")),
		}

		if err := validation.Struct(creds); err != nil {
			var verr *validation.Error
			if !errors.As(err, &verr) {
				serverError(w, r, err)
				return
			}
			render(w, r, viewAuth.ErrorMsgAuth(loginErrorText(verr)))
			return
		}

		session, err := authn.Authenticate(ctx, creds)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				render(w, r, viewAuth.ErrorMsgAuth("Email ou senha inválidos."))
				return
			}
			serverError(w, r, err)
			return
		}

		token, err := auth.MakeJWT(session.Email, session.Type, opts.Issuer, opts.Secret, opts.TTL)
		if err != nil {
			serverError(w, r, err)
			return
		}
		auth.SetSessionCookie(w, token, opts.TTL)

		w.Header().Set("HX-Redirect", session.Type.DashboardPath())
		w.WriteHeader(http.StatusOK)

		slog.InfoContext(ctx, "user logged in",
			slog.String("email", session.Email),
			slog.String("user_type", string(session.Type)))
	}
}

func loginErrorText(verr *validation.Error) string {
	switch {
	case verr.Field("email") != "":
		return "Informe um email válido."
	case verr.Field("password") != "":
		return "A senha deve ter pelo menos 6 caracteres."
	default:
		return "Selecione o tipo de acesso."
	}
}

// SubmitLogoutReq drops the session cookie and sends the user back to the
// login page.
func SubmitLogoutReq() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth.ClearSessionCookie(w)
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusOK)

		log.Printf("user logged out")
	}
}

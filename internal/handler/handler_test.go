package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johndosdos/escola/internal/auth"
	"github.com/johndosdos/escola/internal/notify"
	"github.com/johndosdos/escola/internal/store/memstore"
)

const testSecret = "handler-test-secret"

type testApp struct {
	handler http.Handler
	hub     *notify.Hub
}

func newApp(t *testing.T) testApp {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := notify.NewHub()
	go hub.Run(ctx)

	authn, err := auth.NewAuthenticator(true, "")
	require.NoError(t, err)

	return testApp{
		hub: hub,
		handler: Routes(Deps{
			Repo:       memstore.New(0),
			Hub:        hub,
			Auth:       authn,
			Session:    SessionOpts{Secret: testSecret, Issuer: "test", TTL: time.Hour},
			SchoolName: "Secretaria Escolar",
		}),
	}
}

func sessionCookie(t *testing.T, email string, userType auth.UserType) *http.Cookie {
	t.Helper()
	token, err := auth.MakeJWT(email, userType, "test", testSecret, time.Hour)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.CookieName, Value: token}
}

type reqOpts struct {
	cookie *http.Cookie
	form   url.Values
	target string
}

func (a testApp) do(t *testing.T, method, path string, o reqOpts) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if o.form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(o.form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("HX-Request", "true")
	if o.target != "" {
		req.Header.Set("HX-Target", o.target)
	}
	if o.cookie != nil {
		req.AddCookie(o.cookie)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func TestSubmitLoginForm(t *testing.T) {
	app := newApp(t)

	tests := []struct {
		name         string
		form         url.Values
		wantRedirect string
		wantBody     string
	}{
		{
			name:         "parent",
			form:         url.Values{"email": {"Ana@Exemplo.com"}, "password": {"secret1"}, "user_type": {"parent"}},
			wantRedirect: "/parent/dashboard",
		},
		{
			name:         "school",
			form:         url.Values{"email": {"sec@escola.com"}, "password": {"secret1"}, "user_type": {"school"}},
			wantRedirect: "/school/dashboard",
		},
		{
			name:     "email without at",
			form:     url.Values{"email": {"ana"}, "password": {"secret1"}, "user_type": {"parent"}},
			wantBody: "Informe um email válido.",
		},
		{
			name:     "short password",
			form:     url.Values{"email": {"ana@x.com"}, "password": {"123"}, "user_type": {"parent"}},
			wantBody: "A senha deve ter pelo menos 6 caracteres.",
		},
		{
			name:     "unknown type",
			form:     url.Values{"email": {"ana@x.com"}, "password": {"secret1"}, "user_type": {"admin"}},
			wantBody: "Selecione o tipo de acesso.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, http.MethodPost, "/account/login", reqOpts{form: tt.form})

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantRedirect, rec.Header().Get("HX-Redirect"))
			if tt.wantRedirect != "" {
				assert.Contains(t, rec.Header().Get("Set-Cookie"), auth.CookieName+"=")
				return
			}
			assert.Empty(t, rec.Header().Get("Set-Cookie"))
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestLogout(t *testing.T) {
	app := newApp(t)
	rec := app.do(t, http.MethodPost, "/account/logout", reqOpts{cookie: sessionCookie(t, "ana@x.com", auth.TypeParent)})

	assert.Equal(t, "/", rec.Header().Get("HX-Redirect"))
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestServeLoginPage(t *testing.T) {
	app := newApp(t)

	rec := app.do(t, http.MethodGet, "/", reqOpts{})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `hx-post="/account/login"`)

	rec = app.do(t, http.MethodGet, "/", reqOpts{cookie: sessionCookie(t, "sec@escola.com", auth.TypeSchool)})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/school/dashboard", rec.Header().Get("Location"))
}

func TestRouteGating(t *testing.T) {
	app := newApp(t)

	tests := []struct {
		name   string
		path   string
		cookie *http.Cookie
		want   string
	}{
		{"no session", "/parent/dashboard", nil, "/"},
		{"school on parent page", "/parent/messages", sessionCookie(t, "sec@escola.com", auth.TypeSchool), "/school/dashboard"},
		{"parent on school page", "/school/messages", sessionCookie(t, "ana@x.com", auth.TypeParent), "/parent/dashboard"},
		{"corrupt cookie", "/school/dashboard", &http.Cookie{Name: auth.CookieName, Value: "garbage"}, "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, http.MethodGet, tt.path, reqOpts{cookie: tt.cookie})
			assert.Equal(t, tt.want, rec.Header().Get("HX-Redirect"))
		})
	}
}

func TestParentDashboard(t *testing.T) {
	app := newApp(t)
	rec := app.do(t, http.MethodGet, "/parent/dashboard", reqOpts{cookie: sessionCookie(t, "joao.silva@exemplo.com", auth.TypeParent)})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Olá, Joao!")
	assert.Contains(t, body, "2 não lidas")
	assert.Contains(t, body, `ws-connect="/ws/notifications"`)
}

func TestParentMessagesFilter(t *testing.T) {
	app := newApp(t)
	cookie := sessionCookie(t, "ana@x.com", auth.TypeParent)

	tests := []struct {
		name    string
		query   url.Values
		want    []string
		notWant []string
	}{
		{
			name:    "case folded search",
			query:   url.Values{"q": {"CIÊNCIAS"}},
			want:    []string{`id="message-4"`},
			notWant: []string{`id="message-1"`, `id="message-3"`},
		},
		{
			name:    "category",
			query:   url.Values{"category": {"Avaliações"}},
			want:    []string{`id="message-3"`},
			notWant: []string{`id="message-1"`, `id="message-2"`, `id="message-4"`},
		},
		{
			name:    "individual tab",
			query:   url.Values{"tab": {"individual"}},
			want:    []string{`id="message-2"`, `id="message-5"`},
			notWant: []string{`id="message-1"`, `id="message-3"`},
		},
		{
			name:    "search keeps surrounding spaces",
			query:   url.Values{"q": {"   "}},
			want:    []string{"Nenhuma mensagem encontrada"},
			notWant: []string{`id="message-1"`},
		},
		{
			name:  "no match",
			query: url.Values{"q": {"inexistente"}, "tab": {"general"}},
			want:  []string{"Nenhuma mensagem geral encontrada"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, http.MethodGet, "/parent/messages?"+tt.query.Encode(), reqOpts{cookie: cookie, target: "message-list"})

			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			assert.NotContains(t, body, "<!doctype html>")
			for _, s := range tt.want {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, body, s)
			}
		})
	}

	t.Run("full page", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/parent/messages", reqOpts{cookie: cookie})

		body := rec.Body.String()
		assert.Contains(t, body, "<!doctype html>")
		assert.Contains(t, body, `name="category" value="Reunião de Pais"`)
		assert.Contains(t, body, `name="tab" value="all" checked`)
	})

	t.Run("search box echoes the raw query", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/parent/messages?q="+url.QueryEscape(" feira "), reqOpts{cookie: cookie})

		assert.Contains(t, rec.Body.String(), `name="q" placeholder="Buscar mensagens..." value=" feira "`)
	})
}

func TestMarkMessageRead(t *testing.T) {
	app := newApp(t)
	cookie := sessionCookie(t, "ana@x.com", auth.TypeParent)

	rec := app.do(t, http.MethodPost, "/parent/messages/1/read", reqOpts{cookie: cookie})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `class="message-card"`)
	assert.Contains(t, rec.Body.String(), "✓ Lida")

	rec = app.do(t, http.MethodGet, "/parent/messages/1", reqOpts{cookie: cookie})
	assert.NotContains(t, rec.Body.String(), "unread")
	assert.NotContains(t, rec.Body.String(), "card-content")

	rec = app.do(t, http.MethodPost, "/parent/messages/404/read", reqOpts{cookie: cookie})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	other := app.do(t, http.MethodGet, "/parent/messages/1", reqOpts{cookie: sessionCookie(t, "carlos@x.com", auth.TypeParent)})
	assert.Contains(t, other.Body.String(), "message-card unread")
}

func TestSubmitReply(t *testing.T) {
	app := newApp(t)
	cookie := sessionCookie(t, "ana@x.com", auth.TypeParent)

	rec := app.do(t, http.MethodPost, "/parent/messages/2/reply", reqOpts{cookie: cookie, form: url.Values{"reply": {"  <b></b> "}}})
	body := rec.Body.String()
	assert.Contains(t, body, "Mensagem vazia")
	assert.Contains(t, body, `name="reply"`)
	assert.Contains(t, body, "notice-destructive")

	rec = app.do(t, http.MethodPost, "/parent/messages/2/reply", reqOpts{cookie: cookie, form: url.Values{"reply": {"Obrigado!"}}})
	body = rec.Body.String()
	assert.Contains(t, body, "Resposta enviada")
	assert.NotContains(t, body, `name="reply"`)
}

func TestSchoolPages(t *testing.T) {
	app := newApp(t)
	cookie := sessionCookie(t, "sec@escola.com", auth.TypeSchool)

	t.Run("dashboard", func(t *testing.T) {
		body := app.do(t, http.MethodGet, "/school/dashboard", reqOpts{cookie: cookie}).Body.String()
		assert.Contains(t, body, "77% lidas pelos destinatários")
		assert.Contains(t, body, "Em 20 turmas")
		assert.Contains(t, body, `id="new-message"`)
	})

	t.Run("history", func(t *testing.T) {
		body := app.do(t, http.MethodGet, "/school/messages", reqOpts{cookie: cookie}).Body.String()
		assert.Contains(t, body, "145 de 420 leram")
		assert.Contains(t, body, ">35%<")
		assert.NotContains(t, body, `id="new-message"`)
	})

	t.Run("compose view", func(t *testing.T) {
		body := app.do(t, http.MethodGet, "/school/messages?view=new", reqOpts{cookie: cookie}).Body.String()
		assert.Contains(t, body, `id="new-message"`)
		assert.Contains(t, body, "ana.silva@exemplo.com")
	})

	t.Run("charts", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/school/stats/charts", reqOpts{cookie: cookie})
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var payload chartsPayload
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Len(t, payload.Activity.DataPoints, 7)
		assert.Equal(t, []string{"count"}, payload.Categories.SeriesKeys)
	})
}

func TestSubmitMessage(t *testing.T) {
	app := newApp(t)
	school := sessionCookie(t, "sec@escola.com", auth.TypeSchool)

	t.Run("missing fields", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/school/messages", reqOpts{cookie: school, form: url.Values{
			"type": {"individual"}, "message": {"Olá"},
		}})
		body := rec.Body.String()
		assert.Contains(t, body, "Erro ao enviar mensagem")
		assert.Contains(t, body, "o campo subject é obrigatório")
		assert.Contains(t, body, "o campo recipient é obrigatório")
		assert.Contains(t, body, "Olá")
	})

	t.Run("unknown recipient", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/school/messages", reqOpts{cookie: school, form: url.Values{
			"type": {"individual"}, "subject": {"Oi"}, "message": {"Olá"}, "recipient": {"ninguem@x.com"},
		}})
		assert.Contains(t, rec.Body.String(), "Destinatário não encontrado")
	})

	t.Run("individual", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/school/messages", reqOpts{cookie: school, form: url.Values{
			"type": {"individual"}, "subject": {"Conversa"}, "message": {"Podemos falar?"},
			"recipient": {"ana.silva@exemplo.com"},
		}})
		assert.Contains(t, rec.Body.String(), "Sua mensagem foi enviada para Ana Silva (Mãe de João Silva - 5º ano A).")

		ana := app.do(t, http.MethodGet, "/parent/messages", reqOpts{cookie: sessionCookie(t, "ana.silva@exemplo.com", auth.TypeParent)})
		assert.Contains(t, ana.Body.String(), "Conversa")

		carlos := app.do(t, http.MethodGet, "/parent/messages", reqOpts{cookie: sessionCookie(t, "carlos.oliveira@exemplo.com", auth.TypeParent)})
		assert.NotContains(t, carlos.Body.String(), "Conversa")
	})

	t.Run("general", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/school/messages", reqOpts{cookie: school, form: url.Values{
			"type": {"general"}, "subject": {"<i>Aviso</i> geral"}, "message": {"Amanhã não haverá aula."},
			"category": {"Comunicado Geral"},
		}})
		body := rec.Body.String()
		assert.Contains(t, body, "Mensagem enviada")
		assert.Contains(t, body, "todos os pais/responsáveis")

		history := app.do(t, http.MethodGet, "/school/messages?category=Comunicado+Geral", reqOpts{cookie: school, target: "message-list"})
		assert.Contains(t, history.Body.String(), "Aviso geral")
		assert.Contains(t, history.Body.String(), "0 de 420 leram")

		parent := app.do(t, http.MethodGet, "/parent/messages?q=aviso", reqOpts{cookie: sessionCookie(t, "carlos.oliveira@exemplo.com", auth.TypeParent), target: "message-list"})
		assert.Contains(t, parent.Body.String(), "De: Secretaria Escolar")
	})
}

func TestRedirectsAndNotFound(t *testing.T) {
	app := newApp(t)

	for from, to := range legacyRedirects {
		t.Run(from, func(t *testing.T) {
			rec := app.do(t, http.MethodGet, from, reqOpts{})
			assert.Equal(t, http.StatusMovedPermanently, rec.Code)
			assert.Equal(t, to, rec.Header().Get("Location"))
		})
	}

	t.Run("parent root", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/parent", reqOpts{cookie: sessionCookie(t, "ana@x.com", auth.TypeParent)})
		assert.Equal(t, "/parent/dashboard", rec.Header().Get("Location"))
	})

	t.Run("unknown path", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/nao/existe", reqOpts{})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Página não encontrada")
	})
}

func TestNotificationsWebsocket(t *testing.T) {
	app := newApp(t)
	srv := httptest.NewServer(app.handler)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	parent := sessionCookie(t, "ana.silva@exemplo.com", auth.TypeParent)
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/notifications", &websocket.DialOptions{
		HTTPHeader: http.Header{"Cookie": {parent.String()}},
	})
	require.NoError(t, err)
	defer conn.CloseNow()

	received := make(chan string, 1)
	go func() {
		_, p, err := conn.Read(ctx)
		if err == nil {
			received <- string(p)
		}
	}()

	school := sessionCookie(t, "sec@escola.com", auth.TypeSchool)
	var got string
	require.Eventually(t, func() bool {
		app.do(t, http.MethodPost, "/school/messages", reqOpts{cookie: school, form: url.Values{
			"type": {"general"}, "subject": {"Reunião extraordinária"}, "message": {"Sexta às 18h."},
		}})
		select {
		case got = <-received:
			return true
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 3*time.Second, 10*time.Millisecond)

	assert.Contains(t, got, `hx-swap-oob="beforeend"`)
	assert.Contains(t, got, "Nova mensagem")
	assert.Contains(t, got, "Reunião extraordinária")
}

func TestNotificationsWebsocketHubStopped(t *testing.T) {
	hubCtx, stop := context.WithCancel(context.Background())
	hub := notify.NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run(hubCtx)
		close(stopped)
	}()
	stop()
	<-stopped

	authn, err := auth.NewAuthenticator(true, "")
	require.NoError(t, err)
	srv := httptest.NewServer(Routes(Deps{
		Repo:    memstore.New(0),
		Hub:     hub,
		Auth:    authn,
		Session: SessionOpts{Secret: testSecret, Issuer: "test", TTL: time.Hour},
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	parent := sessionCookie(t, "ana.silva@exemplo.com", auth.TypeParent)
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/notifications", &websocket.DialOptions{
		HTTPHeader: http.Header{"Cookie": {parent.String()}},
	})
	require.NoError(t, err)
	defer conn.CloseNow()

	_, _, err = conn.Read(ctx)
	assert.Equal(t, websocket.StatusGoingAway, websocket.CloseStatus(err))
}

func TestRefreshSession(t *testing.T) {
	app := newApp(t)

	rec := app.do(t, http.MethodPost, "/account/refresh", reqOpts{cookie: sessionCookie(t, "ana@x.com", auth.TypeParent)})
	require.Equal(t, http.StatusNoContent, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	s, err := auth.ValidateJWT(cookies[0].Value, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", s.Email)
	assert.Equal(t, auth.TypeParent, s.Type)

	rec = app.do(t, http.MethodPost, "/account/refresh", reqOpts{})
	assert.Equal(t, "/", rec.Header().Get("HX-Redirect"))
}

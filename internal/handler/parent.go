package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"

	"github.com/johndosdos/escola/components/dashboard"
	"github.com/johndosdos/escola/components/messages"
	"github.com/johndosdos/escola/internal/auth"
	"github.com/johndosdos/escola/internal/inbox"
	"github.com/johndosdos/escola/internal/model"
	"github.com/johndosdos/escola/internal/notify"
	"github.com/johndosdos/escola/internal/store"
)

// recentMessages is how many messages the parent dashboard lists.
const recentMessages = 3

// ServeParentDashboard renders counts, events and the latest messages.
func ServeParentDashboard(repo store.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, ok := session(w, r)
		if !ok {
			return
		}

		msgs, err := repo.Inbox(ctx, s.Email)
		if err != nil {
			serverError(w, r, err)
			return
		}
		events, err := repo.Events(ctx)
		if err != nil {
			serverError(w, r, err)
			return
		}
		overview, err := repo.Overview(ctx, s.Email)
		if err != nil {
			serverError(w, r, err)
			return
		}

		renderPage(w, r, s, "Dashboard", dashboard.ParentPage(dashboard.Parent{
			Overview: overview,
			Messages: msgs,
			Recent:   recentMessages,
			Events:   events,
		}))
	}
}

// listState reads q, category and tab from the query string. q is used as
// typed; blank category values are dropped.
func listState(r *http.Request, action string) messages.ListState {
	q := r.URL.Query()
	var cats []string
	for _, c := range q["category"] {
		if c = strings.TrimSpace(c); c != "" {
			cats = append(cats, c)
		}
	}
	return messages.ListState{
		Action:     action,
		Query:      q.Get("q"),
		Categories: cats,
		Tab:        inbox.NormalizeTab(q.Get("tab")),
	}
}

// ServeParentMessages renders the message center. Requests from the filter
// bar only get the list back.
func ServeParentMessages(repo store.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := session(w, r)
		if !ok {
			return
		}

		msgs, err := repo.Inbox(r.Context(), s.Email)
		if err != nil {
			serverError(w, r, err)
			return
		}

		st := listState(r, "/parent/messages")
		filtered := inbox.Filter(msgs, inbox.Criteria{Query: st.Query, Categories: st.Categories})
		list := messages.MessageList(inbox.Partition(filtered).Tab(st.Tab), st.Tab)

		if wantsFragment(r, "message-list") {
			render(w, r, list)
			return
		}

		st.Options = inbox.Categories(msgs)
		renderPage(w, r, s, "Mensagens", messages.ParentMessagesPage(st, list))
	}
}

// findMessage returns the owner's message with id.
func findMessage(r *http.Request, repo store.Repository, owner, id string) (model.Message, error) {
	msgs, err := repo.Inbox(r.Context(), owner)
	if err != nil {
		return model.Message{}, err
	}
	for _, m := range msgs {
		if m.ID == id {
			return m, nil
		}
	}
	return model.Message{}, store.ErrNotFound
}

func cardError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Mensagem não encontrada.", http.StatusNotFound)
		return
	}
	serverError(w, r, err)
}

// ServeMessageCard renders one card in the state given by the expanded and
// replying query flags.
func ServeMessageCard(repo store.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := session(w, r)
		if !ok {
			return
		}

		m, err := findMessage(r, repo, s.Email, chi.URLParam(r, "id"))
		if err != nil {
			cardError(w, r, err)
			return
		}

		q := r.URL.Query()
		render(w, r, messages.MessageCard(m, messages.CardState{
			Expanded: q.Get("expanded") == "1",
			Replying: q.Get("replying") == "1",
		}))
	}
}

// MarkMessageRead marks the message read and returns it expanded.
func MarkMessageRead(repo store.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, ok := session(w, r)
		if !ok {
			return
		}

		id := chi.URLParam(r, "id")
		if err := repo.MarkRead(ctx, s.Email, id); err != nil {
			cardError(w, r, err)
			return
		}

		m, err := findMessage(r, repo, s.Email, id)
		if err != nil {
			cardError(w, r, err)
			return
		}

		render(w, r, messages.MessageCard(m, messages.CardState{Expanded: true}))
	}
}

// SubmitReply accepts a parent's reply to a message and tells the school.
func SubmitReply(repo store.Repository, hub *notify.Hub) http.HandlerFunc {
	policy := bluemonday.StrictPolicy()

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, ok := session(w, r)
		if !ok {
			return
		}

		m, err := findMessage(r, repo, s.Email, chi.URLParam(r, "id"))
		if err != nil {
			cardError(w, r, err)
			return
		}

		reply := strings.TrimSpace(policy.Sanitize(r.PostFormValue("reply")))
		if reply == "" {
			renderWithNotice(w, r,
				messages.MessageCard(m, messages.CardState{
					Expanded:   true,
					Replying:   true,
					ReplyError: "Por favor, escreva uma mensagem antes de enviar.",
				}),
				model.Notice{
					Title:       "Mensagem vazia",
					Description: "Por favor, escreva uma mensagem antes de enviar.",
					Severity:    model.SeverityDestructive,
				})
			return
		}

		slog.InfoContext(ctx, "reply received",
			slog.String("email", s.Email),
			slog.String("message_id", m.ID))

		hub.Notify(ctx, notify.Envelope{
			Role: auth.TypeSchool,
			Notice: model.Notice{
				Title:       "Resposta recebida",
				Description: s.Email + " respondeu: " + m.Title,
			},
		})

		renderWithNotice(w, r,
			messages.MessageCard(m, messages.CardState{Expanded: true}),
			model.Notice{
				Title:       "Resposta enviada",
				Description: "Sua resposta foi enviada com sucesso.",
			})
	}
}

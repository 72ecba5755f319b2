package handler

import (
	"encoding/json"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"slices"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"

	"github.com/johndosdos/escola/components/dashboard"
	"github.com/johndosdos/escola/components/messages"
	"github.com/johndosdos/escola/internal/auth"
	"github.com/johndosdos/escola/internal/inbox"
	"github.com/johndosdos/escola/internal/model"
	"github.com/johndosdos/escola/internal/notify"
	"github.com/johndosdos/escola/internal/store"
	"github.com/johndosdos/escola/internal/validation"
)

func composeOptions(r *http.Request, repo store.Repository) (messages.ComposeOptions, error) {
	recipients, err := repo.Recipients(r.Context())
	if err != nil {
		return messages.ComposeOptions{}, err
	}
	return messages.ComposeOptions{Recipients: recipients, Categories: store.CategoryOptions}, nil
}

// ServeSchoolDashboard renders the stat cards, the compose or analytics
// tab and the activity timeline.
func ServeSchoolDashboard(repo store.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, ok := session(w, r)
		if !ok {
			return
		}

		stats, err := repo.Stats(ctx)
		if err != nil {
			serverError(w, r, err)
			return
		}
		activities, err := repo.Activities(ctx)
		if err != nil {
			serverError(w, r, err)
			return
		}
		opts, err := composeOptions(r, repo)
		if err != nil {
			serverError(w, r, err)
			return
		}

		renderPage(w, r, s, "Painel Administrativo", dashboard.SchoolPage(dashboard.School{
			Stats:      stats,
			Activities: activities,
			Tab:        r.URL.Query().Get("tab"),
			Activity:   store.MessageActivity(),
			Categories: store.MessageCategories(),
		}, messages.NewMessageForm(model.Compose{}, opts, nil)))
	}
}

// ServeSchoolMessages renders the sent history or the compose pane.
func ServeSchoolMessages(repo store.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := session(w, r)
		if !ok {
			return
		}

		sent, err := repo.Sent(r.Context())
		if err != nil {
			serverError(w, r, err)
			return
		}

		st := listState(r, "/school/messages")
		filtered := inbox.FilterSent(sent, inbox.Criteria{Query: st.Query, Categories: st.Categories})
		list := messages.SentList(inbox.PartitionSent(filtered).Tab(st.Tab), st.Tab)

		if wantsFragment(r, "message-list") {
			render(w, r, list)
			return
		}

		view := "history"
		var compose templ.Component
		if r.URL.Query().Get("view") == "new" {
			view = "new"
			opts, err := composeOptions(r, repo)
			if err != nil {
				serverError(w, r, err)
				return
			}
			compose = messages.NewMessageForm(model.Compose{}, opts, nil)
		}

		st.Options = inbox.SentCategories(sent)
		renderPage(w, r, s, "Mensagens", messages.SchoolMessagesPage(view, st, list, compose))
	}
}

// SubmitMessage validates the compose form, stores the message and
// notifies its recipients. The response is the form again: blank after a
// send, filled in with field errors otherwise.
func SubmitMessage(repo store.Repository, hub *notify.Hub, schoolName string) http.HandlerFunc {
	policy := bluemonday.StrictPolicy()

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s, ok := session(w, r)
		if !ok {
			return
		}

		err := r.ParseForm()
		if err != nil {
			http.Error(w, "Dados de formulário inválidos.", http.StatusBadRequest)
			log.Printf("failed to parse form values: %v", err)
			return
		}

		opts, err := composeOptions(r, repo)
		if err != nil {
			serverError(w, r, err)
			return
		}

		form := model.Compose{
			Type:      model.MessageType(r.PostFormValue("type")),
			Subject:   validation.Clean(policy.Sanitize(r.PostFormValue("subject"))),
			Message:   validation.Clean(policy.Sanitize(r.PostFormValue("message"))),
			Recipient: validation.Clean(r.PostFormValue("recipient"), true),
			Category:  validation.Clean(r.PostFormValue("category")),
		}
		if form.Category != "" && !slices.Contains(opts.Categories, form.Category) {
			form.Category = ""
		}

		failed := func(verr *validation.Error) {
			renderWithNotice(w, r, messages.NewMessageForm(form, opts, verr), model.Notice{
				Title:       "Erro ao enviar mensagem",
				Description: "Preencha todos os campos obrigatórios.",
				Severity:    model.SeverityDestructive,
			})
		}

		if err := validation.Struct(form); err != nil {
			var verr *validation.Error
			if !errors.As(err, &verr) {
				serverError(w, r, err)
				return
			}
			failed(verr)
			return
		}

		sent, err := repo.Send(ctx, form.SentMessage(), schoolName)
		if errors.Is(err, store.ErrNotFound) {
			failed(&validation.Error{Fields: []validation.FieldError{
				{Field: "recipient", Message: "Destinatário não encontrado"},
			}})
			return
		}
		if err != nil {
			serverError(w, r, err)
			return
		}

		slog.InfoContext(ctx, "message sent",
			slog.String("id", sent.ID),
			slog.String("type", string(sent.Type)),
			slog.String("by", s.Email),
			slog.Int("recipients", sent.TotalRecipients))

		env := notify.Envelope{
			Role:   auth.TypeParent,
			Notice: model.Notice{Title: "Nova mensagem", Description: sent.Title},
		}
		description := "Sua mensagem foi enviada para todos os pais/responsáveis."
		if sent.Type == model.TypeIndividual {
			env.Emails = []string{sent.Recipient}
			description = "Sua mensagem foi enviada para " + recipientLabel(opts.Recipients, sent.Recipient) + "."
		}
		hub.Notify(ctx, env)

		renderWithNotice(w, r, messages.NewMessageForm(model.Compose{}, opts, nil), model.Notice{
			Title:       "Mensagem enviada",
			Description: description,
		})
	}
}

func recipientLabel(recipients []model.Recipient, email string) string {
	for _, r := range recipients {
		if r.Email == email {
			return r.Label
		}
	}
	return email
}

// chartsPayload is the JSON served to the dashboard charts.
type chartsPayload struct {
	Activity   model.ChartSeries `json:"activity"`
	Categories model.ChartSeries `json:"categories"`
}

// ServeCharts returns the chart series as JSON.
func ServeCharts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(chartsPayload{
			Activity:   store.MessageActivity(),
			Categories: store.MessageCategories(),
		})
		if err != nil {
			log.Printf("failed to encode charts: %v", err)
		}
	}
}

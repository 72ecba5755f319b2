package messages

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johndosdos/escola/internal/inbox"
	"github.com/johndosdos/escola/internal/model"
	"github.com/johndosdos/escola/internal/validation"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func sample() model.Message {
	return model.Message{
		ID:       "1",
		Title:    "Reunião de Pais",
		Content:  "Linha 1\nLinha <2>",
		Sender:   "Coordenação",
		Date:     time.Now().Add(-72 * time.Hour),
		Type:     model.TypeGeneral,
		Category: model.Category("Reunião de Pais"),
	}
}

func TestMessageCard(t *testing.T) {
	t.Run("collapsed unread", func(t *testing.T) {
		html := render(t, MessageCard(sample(), CardState{}))

		assert.Contains(t, html, `class="message-card unread"`)
		assert.Contains(t, html, `hx-post="/parent/messages/1/read"`)
		assert.Contains(t, html, "De: Coordenação • há 3 dias")
		assert.Contains(t, html, ">Geral<")
		assert.NotContains(t, html, "card-content")
	})

	t.Run("expanded read", func(t *testing.T) {
		m := sample()
		m.Read = true
		html := render(t, MessageCard(m, CardState{Expanded: true}))

		assert.Contains(t, html, `class="message-card"`)
		assert.Contains(t, html, `hx-get="/parent/messages/1"`)
		assert.Contains(t, html, "<p>Linha 1</p><p>Linha &lt;2&gt;</p>")
		assert.Contains(t, html, "✓ Lida")
		assert.Contains(t, html, "Responder")
		assert.NotContains(t, html, `name="reply"`)
	})

	t.Run("replying", func(t *testing.T) {
		html := render(t, MessageCard(sample(), CardState{Expanded: true, Replying: true, ReplyError: "Mensagem vazia"}))

		assert.Contains(t, html, `hx-post="/parent/messages/1/reply"`)
		assert.Contains(t, html, `name="reply"`)
		assert.Contains(t, html, "Mensagem vazia")
		assert.Contains(t, html, "Cancelar")
	})
}

func TestMessageListEmptyTexts(t *testing.T) {
	tests := []struct {
		tab  string
		want string
	}{
		{inbox.TabAll, "Nenhuma mensagem encontrada"},
		{inbox.TabGeneral, "Nenhuma mensagem geral encontrada"},
		{inbox.TabIndividual, "Nenhuma mensagem individual encontrada"},
	}

	for _, tt := range tests {
		t.Run(tt.tab, func(t *testing.T) {
			assert.Contains(t, render(t, MessageList(nil, tt.tab)), tt.want)
			assert.Contains(t, render(t, SentList(nil, tt.tab)), tt.want)
		})
	}
}

func TestFilterBar(t *testing.T) {
	html := render(t, FilterBar(ListState{
		Action:     "/parent/messages",
		Query:      "feira",
		Categories: []string{"Avaliações"},
		Tab:        inbox.TabIndividual,
		Options:    []string{"Avaliações", "Evento Escolar"},
	}))

	assert.Contains(t, html, `hx-get="/parent/messages"`)
	assert.Contains(t, html, `value="feira"`)
	assert.Contains(t, html, `value="Avaliações" checked`)
	assert.Contains(t, html, `value="Evento Escolar">`)
	assert.Contains(t, html, `value="individual" checked`)
}

func TestSentCard(t *testing.T) {
	t.Run("partial read", func(t *testing.T) {
		html := render(t, SentCard(model.SentMessage{
			ID: "1", Title: "Reunião", Date: time.Date(2023, time.August, 10, 0, 0, 0, 0, time.Local),
			Type: model.TypeGeneral, ReadCount: 145, TotalRecipients: 420,
		}))

		assert.Contains(t, html, "Enviada em 10/08/2023 • 145 de 420 leram")
		assert.Contains(t, html, `class="badge rate">35%<`)
	})

	t.Run("no recipients", func(t *testing.T) {
		html := render(t, SentCard(model.SentMessage{ID: "2", Type: model.TypeIndividual}))

		assert.Contains(t, html, inbox.NoRate)
		assert.NotContains(t, html, "NaN")
	})

	t.Run("fully read", func(t *testing.T) {
		html := render(t, SentCard(model.SentMessage{ID: "3", ReadCount: 1, TotalRecipients: 1}))
		assert.Contains(t, html, `class="badge rate complete">100%<`)
	})
}

func TestNewMessageForm(t *testing.T) {
	opts := ComposeOptions{
		Recipients: []model.Recipient{{Email: "ana@x.com", Label: "Ana Silva"}},
		Categories: []string{"Avaliações"},
	}

	t.Run("blank", func(t *testing.T) {
		html := render(t, NewMessageForm(model.Compose{}, opts, nil))

		assert.Contains(t, html, `hx-post="/school/messages"`)
		assert.Contains(t, html, `name="type" value="general" checked`)
		assert.Contains(t, html, `value="ana@x.com">Ana Silva<`)
		assert.NotContains(t, html, `class="error"`)
	})

	t.Run("with errors", func(t *testing.T) {
		form := model.Compose{Type: model.TypeIndividual, Subject: "Oi", Recipient: "ana@x.com", Category: "Avaliações"}
		errs := &validation.Error{Fields: []validation.FieldError{{Field: "message", Message: "o campo message é obrigatório"}}}
		html := render(t, NewMessageForm(form, opts, errs))

		assert.Contains(t, html, `name="type" value="individual" checked`)
		assert.Contains(t, html, `value="ana@x.com" selected`)
		assert.Contains(t, html, `value="Avaliações" selected`)
		assert.Contains(t, html, `value="Oi"`)
		assert.Contains(t, html, "o campo message é obrigatório")
	})
}

func TestRelativeDate(t *testing.T) {
	now := time.Date(2023, time.August, 20, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "agora mesmo"},
		{time.Minute, "há 1 minuto"},
		{5 * time.Hour, "há 5 horas"},
		{10 * 24 * time.Hour, "há 10 dias"},
		{65 * 24 * time.Hour, "há 2 meses"},
		{400 * 24 * time.Hour, "há 1 ano"},
		{-time.Hour, "agora mesmo"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDate(now.Add(-tt.ago), now))
		})
	}
}

func TestSentListSummary(t *testing.T) {
	html := render(t, SentList([]model.SentMessage{
		{ID: "1", Type: model.TypeGeneral, ReadCount: 145, TotalRecipients: 420},
		{ID: "2", Type: model.TypeIndividual, ReadCount: 1, TotalRecipients: 1},
		{ID: "3", Type: model.TypeGeneral, ReadCount: 420, TotalRecipients: 420},
	}, inbox.TabAll))

	assert.Contains(t, html, "3 mensagens (2 gerais, 1 individuais) • 2 lidas por todos")
	assert.Contains(t, html, `id="sent-3"`)
}

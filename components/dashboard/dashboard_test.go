package dashboard

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johndosdos/escola/internal/model"
	"github.com/johndosdos/escola/internal/store"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestParentPage(t *testing.T) {
	html := render(t, ParentPage(Parent{
		Overview: store.SeedOverview("joao.silva@exemplo.com"),
		Messages: store.SeedInbox(),
		Events:   store.SeedEvents(),
	}))

	assert.Contains(t, html, "Olá, Joao!")
	assert.Contains(t, html, "2 não lidas")
	assert.Contains(t, html, "85%")
	assert.Contains(t, html, "Feira de Ciências")
	assert.Contains(t, html, `id="message-list"`)
}

func TestSchoolPage(t *testing.T) {
	compose := templ.Raw(`<form id="new-message"></form>`)
	s := School{
		Stats:      store.SeedStats(),
		Activities: store.SeedActivities(),
		Activity:   store.MessageActivity(),
		Categories: store.MessageCategories(),
	}

	t.Run("compose tab", func(t *testing.T) {
		html := render(t, SchoolPage(s, compose))

		assert.Contains(t, html, "77% lidas pelos destinatários")
		assert.Contains(t, html, "Em 20 turmas")
		assert.Contains(t, html, "385 ativos nos últimos 30 dias")
		assert.Contains(t, html, `<form id="new-message">`)
		assert.Contains(t, html, "Mensagem geral enviada")
		assert.NotContains(t, html, `data-chart=`)
	})

	t.Run("analytics tab", func(t *testing.T) {
		s := s
		s.Tab = TabAnalytics
		html := render(t, SchoolPage(s, compose))

		assert.Contains(t, html, `data-chart="activity"`)
		assert.Contains(t, html, "<th>Jul</th><td>28</td>")
		assert.NotContains(t, html, `<form id="new-message">`)
	})
}

func TestReadDescription(t *testing.T) {
	assert.Equal(t, "35% lidas pelos destinatários", ReadDescription(model.MessageStats{Total: 420, Read: 145}))
	assert.Equal(t, "— lidas pelos destinatários", ReadDescription(model.MessageStats{}))
}

func TestParentPageRecent(t *testing.T) {
	html := render(t, ParentPage(Parent{
		Overview: store.SeedOverview("ana@exemplo.com"),
		Messages: store.SeedInbox(),
		Recent:   2,
	}))

	assert.Contains(t, html, `id="message-1"`)
	assert.Contains(t, html, `id="message-2"`)
	assert.NotContains(t, html, `id="message-3"`)
	assert.Contains(t, html, "2 não lidas")
}

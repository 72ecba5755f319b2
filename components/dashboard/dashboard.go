// Package dashboard renders the parent and school landing pages.
package dashboard

import (
	"strconv"

	"github.com/johndosdos/escola/internal/inbox"
	"github.com/johndosdos/escola/internal/model"
)

// Dashboard tabs.
const (
	TabNewMessage = "new-message"
	TabAnalytics  = "analytics"
)

// Parent holds what the parent dashboard shows.
type Parent struct {
	Overview model.ParentOverview
	Messages []model.Message
	Recent   int // listed messages; 0 lists all
	Events   []model.Event
}

// School holds what the school dashboard shows.
type School struct {
	Stats      model.SchoolStats
	Activities []model.Activity
	Tab        string
	Activity   model.ChartSeries
	Categories model.ChartSeries
}

type card struct {
	title, value, description, link, linkText string
}

type tab struct {
	name, label string
}

var schoolTabs = []tab{
	{TabNewMessage, "Nova Mensagem"},
	{TabAnalytics, "Estatísticas"},
}

// ReadDescription is the subtitle of the sent-messages card.
func ReadDescription(s model.MessageStats) string {
	return inbox.FormatReadRate(s.Read, s.Total) + " lidas pelos destinatários"
}

func (p Parent) cards() []card {
	return []card{
		{
			title:       "Mensagens",
			value:       strconv.Itoa(len(p.Messages)),
			description: strconv.Itoa(inbox.UnreadCount(p.Messages)) + " não lidas",
			link:        "/parent/messages",
			linkText:    "Ver todas",
		},
		{
			title:       "Eventos",
			value:       strconv.Itoa(len(p.Events)),
			description: "Próximos eventos",
			link:        "/parent/dashboard#events",
			linkText:    "Ver calendário",
		},
		{
			title:       "Frequência",
			value:       strconv.Itoa(p.Overview.Attendance) + "%",
			description: "Presença no último mês",
			link:        "/parent/dashboard#attendance",
			linkText:    "Ver detalhes",
		},
		{
			title:       "Notificações",
			value:       strconv.Itoa(p.Overview.Notifications),
			description: "Novas notificações",
			link:        "/parent/notifications",
			linkText:    "Ver todas",
		},
	}
}

// recent is the head of the inbox listed on the dashboard.
func (p Parent) recent() []model.Message {
	if p.Recent > 0 && len(p.Messages) > p.Recent {
		return p.Messages[:p.Recent]
	}
	return p.Messages
}

func (s School) cards() []card {
	return []card{
		{
			title:       "Mensagens Enviadas",
			value:       strconv.Itoa(s.Stats.Messages.Total),
			description: ReadDescription(s.Stats.Messages),
			link:        "/school/messages",
			linkText:    "Ver detalhes",
		},
		{
			title:       "Pais Registrados",
			value:       strconv.Itoa(s.Stats.Users.TotalParents),
			description: strconv.Itoa(s.Stats.Users.ActiveParents) + " ativos nos últimos 30 dias",
			link:        "/school/dashboard",
			linkText:    "Gerenciar usuários",
		},
		{
			title:       "Alunos Registrados",
			value:       strconv.Itoa(s.Stats.Users.TotalStudents),
			description: "Em " + strconv.Itoa(inbox.ClassCount(s.Stats.Users.TotalStudents)) + " turmas",
			link:        "/school/dashboard",
			linkText:    "Ver alunos",
		},
	}
}

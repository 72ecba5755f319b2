package store

import (
	"strings"
	"time"

	"github.com/johndosdos/escola/internal/model"
)

// Sample data the portal starts with. Dates use local midnight to match the
// school calendar.

const (
	contentMeeting = "Prezados Pais e Responsáveis,\n\nConvidamos para a reunião de encerramento do 2º trimestre que ocorrerá no dia 15 de agosto, quinta-feira, às 19h, no auditório da escola.\n\nA presença de todos é muito importante para o acompanhamento do desenvolvimento educacional de seu(sua) filho(a).\n\nAtenciosamente,\nEquipe Pedagógica"
	contentReport  = "Informamos que o boletim do 2º trimestre já está disponível para consulta no portal do aluno. Para qualquer dúvida sobre as notas, entre em contato com a secretaria."
	contentExams   = "Segue anexo o calendário de provas para o mês de agosto. Lembramos que é importante que os alunos se preparem com antecedência para as avaliações."
	contentFair    = "A Feira de Ciências acontecerá no dia 22/08, das 14h às 18h. Cada aluno deverá apresentar seu projeto conforme as orientações fornecidas pelo professor responsável."
	contentConduct = "Gostaríamos de conversar sobre algumas questões comportamentais observadas em sala de aula. Por favor, entre em contato para agendarmos uma reunião."
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// SeedInbox returns a fresh copy of the sample parent inbox.
func SeedInbox() []model.Message {
	return []model.Message{
		{
			ID:       "1",
			Title:    "Reunião de Pais - 2º Trimestre",
			Content:  contentMeeting,
			Sender:   "Coordenação Pedagógica",
			Date:     day(2023, time.August, 10),
			Type:     model.TypeGeneral,
			Category: model.Category("Reunião de Pais"),
		},
		{
			ID:            "2",
			Title:         "Boletim do 2º Trimestre disponível",
			Content:       contentReport,
			Sender:        "Secretaria Escolar",
			Date:          day(2023, time.August, 8),
			Read:          true,
			Type:          model.TypeIndividual,
			HasAttachment: true,
		},
		{
			ID:            "3",
			Title:         "Calendário de Provas - Agosto",
			Content:       contentExams,
			Sender:        "Coordenação Pedagógica",
			Date:          day(2023, time.August, 5),
			Read:          true,
			Type:          model.TypeGeneral,
			Category:      model.Category("Avaliações"),
			HasAttachment: true,
		},
		{
			ID:       "4",
			Title:    "Feira de Ciências - Informativo",
			Content:  contentFair,
			Sender:   "Coordenação de Eventos",
			Date:     day(2023, time.August, 3),
			Type:     model.TypeGeneral,
			Category: model.Category("Evento Escolar"),
		},
		{
			ID:      "5",
			Title:   "Sobre o comportamento de João",
			Content: contentConduct,
			Sender:  "Professora Ana Paula - Português",
			Date:    day(2023, time.July, 25),
			Read:    true,
			Type:    model.TypeIndividual,
		},
	}
}

// SeedSent returns a fresh copy of the sample school history.
func SeedSent() []model.SentMessage {
	return []model.SentMessage{
		{
			ID: "1", Title: "Reunião de Pais - 2º Trimestre", Content: contentMeeting,
			Date: day(2023, time.August, 10), Type: model.TypeGeneral,
			Category: model.Category("Reunião de Pais"), ReadCount: 145, TotalRecipients: 420,
		},
		{
			ID: "2", Title: "Boletim do 2º Trimestre disponível", Content: contentReport,
			Date: day(2023, time.August, 8), Type: model.TypeIndividual,
			ReadCount: 1, TotalRecipients: 1, HasAttachment: true,
		},
		{
			ID: "3", Title: "Calendário de Provas - Agosto", Content: contentExams,
			Date: day(2023, time.August, 5), Type: model.TypeGeneral, HasAttachment: true,
			Category: model.Category("Avaliações"), ReadCount: 389, TotalRecipients: 420,
		},
		{
			ID: "4", Title: "Feira de Ciências - Informativo", Content: contentFair,
			Date: day(2023, time.August, 3), Type: model.TypeGeneral,
			Category: model.Category("Evento Escolar"), ReadCount: 356, TotalRecipients: 420,
		},
		{
			ID: "5", Title: "Sobre o comportamento de João", Content: contentConduct,
			Date: day(2023, time.July, 25), Type: model.TypeIndividual,
			ReadCount: 1, TotalRecipients: 1,
		},
	}
}

// SeedRecipients are the parents an individual message can be sent to.
func SeedRecipients() []model.Recipient {
	return []model.Recipient{
		{Email: "ana.silva@exemplo.com", Label: "Ana Silva (Mãe de João Silva - 5º ano A)"},
		{Email: "carlos.oliveira@exemplo.com", Label: "Carlos Oliveira (Pai de Maria Oliveira - 3º ano B)"},
		{Email: "patricia.santos@exemplo.com", Label: "Patrícia Santos (Mãe de Pedro Santos - 7º ano C)"},
		{Email: "ricardo.souza@exemplo.com", Label: "Ricardo Souza (Pai de Beatriz Souza - 9º ano A)"},
		{Email: "fernanda.lima@exemplo.com", Label: "Fernanda Lima (Mãe de Gabriel Lima - 2º ano B)"},
	}
}

// CategoryOptions are the categories offered when composing a message.
var CategoryOptions = []string{
	"Comunicado Geral",
	"Evento Escolar",
	"Reunião de Pais",
	"Calendário Escolar",
	"Avaliações",
	"Disciplina",
	"Atividades Extracurriculares",
}

// SeedEvents are the upcoming events on the parent dashboard.
func SeedEvents() []model.Event {
	return []model.Event{
		{ID: "1", Title: "Reunião de Pais", Date: "15/08/2023", Time: "19:00"},
		{ID: "2", Title: "Feira de Ciências", Date: "22/08/2023", Time: "14:00 - 18:00"},
	}
}

// SeedActivities are the entries of the school activity timeline.
func SeedActivities() []model.Activity {
	return []model.Activity{
		{Time: "Hoje, 10:23", Action: "Mensagem geral enviada", Details: "Comunicado sobre Feira de Ciências enviado para todos os pais"},
		{Time: "Ontem, 15:45", Action: "Resposta recebida", Details: "Ana Silva respondeu ao comunicado sobre a reunião de pais"},
		{Time: "Ontem, 11:02", Action: "Usuário adicionado", Details: "Novo responsável cadastrado: Marcelo Alves (pai de Gustavo Alves - 8º ano B)"},
		{Time: "22/07/2023", Action: "Evento agendado", Details: "Reunião de Pais agendada para 15/08/2023"},
	}
}

// SeedStats are the school counters before anything is sent.
func SeedStats() model.SchoolStats {
	return model.SchoolStats{
		Messages: model.MessageStats{Total: 128, Read: 98, General: 45, Individual: 83},
		Users:    model.UserCount{TotalParents: 420, ActiveParents: 385, TotalStudents: 512},
	}
}

// ParentName derives a greeting name from a session email, e.g.
// "joao.silva@exemplo.com" gives "Joao".
func ParentName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	first, _, _ := strings.Cut(local, ".")
	if first == "" {
		return "Responsável"
	}
	return strings.ToUpper(first[:1]) + first[1:]
}

// SeedOverview returns the dashboard figures for a parent.
func SeedOverview(owner string) model.ParentOverview {
	return model.ParentOverview{
		Name:          ParentName(owner),
		Attendance:    85,
		Notifications: 3,
	}
}

// MessageActivity is the monthly sent-message chart.
func MessageActivity() model.ChartSeries {
	return model.ChartSeries{
		DataPoints: []model.DataPoint{
			{Name: "Jan", Count: 15}, {Name: "Fev", Count: 20}, {Name: "Mar", Count: 18},
			{Name: "Abr", Count: 25}, {Name: "Mai", Count: 22}, {Name: "Jun", Count: 30},
			{Name: "Jul", Count: 28},
		},
		SeriesKeys:   []string{"count"},
		ColorPalette: []string{"#3b82f6"},
	}
}

// MessageCategories is the sent-messages-by-category chart.
func MessageCategories() model.ChartSeries {
	return model.ChartSeries{
		DataPoints: []model.DataPoint{
			{Name: "Comunicados", Count: 45}, {Name: "Reuniões", Count: 23},
			{Name: "Eventos", Count: 18}, {Name: "Avaliações", Count: 12},
			{Name: "Outros", Count: 30},
		},
		SeriesKeys:   []string{"count"},
		ColorPalette: []string{"#3b82f6", "#22c55e", "#f59e0b", "#f97316", "#a855f7"},
	}
}

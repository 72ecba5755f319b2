package messages

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/johndosdos/escola/internal/inbox"
	"github.com/johndosdos/escola/internal/model"
	"github.com/johndosdos/escola/internal/validation"
)

// CardState is the per-card UI state.
type CardState struct {
	Expanded bool
	Replying bool
	// ReplyError is shown under the reply box.
	ReplyError string
}

// ListState is the filter and tab selection of a message list page.
type ListState struct {
	Action     string // list URL the filter form targets
	Query      string
	Categories []string
	Tab        string
	Options    []string // categories offered by the filter menu
}

// ComposeOptions are the choices offered by the compose form.
type ComposeOptions struct {
	Recipients []model.Recipient
	Categories []string
}

type choice struct {
	value string
	label string
}

var (
	listTabs = []choice{
		{inbox.TabAll, "Todas"},
		{inbox.TabGeneral, "Gerais"},
		{inbox.TabIndividual, "Individuais"},
	}
	schoolViews = []choice{
		{"history", "Histórico"},
		{"new", "Nova Mensagem"},
	}
	messageTypes = []choice{
		{string(model.TypeGeneral), "Mensagem Geral"},
		{string(model.TypeIndividual), "Mensagem Individual"},
	}
)

func cardURL(id string) string {
	return "/parent/messages/" + url.PathEscape(id)
}

func readCount(m model.SentMessage) string {
	return strconv.Itoa(m.ReadCount) + " de " + strconv.Itoa(m.TotalRecipients) + " leram"
}

func summary(msgs []model.SentMessage) string {
	s := inbox.Summarize(msgs)
	return fmt.Sprintf("%d mensagens (%d gerais, %d individuais) • %d lidas por todos",
		s.Total, s.General, s.Individual, s.Read)
}

func fieldMessage(errs *validation.Error, field string) string {
	if errs == nil {
		return ""
	}
	return errs.Field(field)
}

// Package messages renders the message cards, lists and compose form.
package messages

import (
	"fmt"
	"time"

	"github.com/johndosdos/escola/internal/inbox"
	"github.com/johndosdos/escola/internal/model"
)

// RelativeDate renders t relative to now in Portuguese, e.g. "há 3 dias".
func RelativeDate(t, now time.Time) string {
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return "agora mesmo"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minuto", "minutos")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hora", "horas")
	case d < 30*24*time.Hour:
		return plural(int(d/(24*time.Hour)), "dia", "dias")
	case d < 365*24*time.Hour:
		return plural(int(d/(30*24*time.Hour)), "mês", "meses")
	default:
		return plural(int(d/(365*24*time.Hour)), "ano", "anos")
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "há 1 " + one
	}
	return fmt.Sprintf("há %d %s", n, many)
}

// ShortDate renders t as dd/mm/yyyy.
func ShortDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// TypeLabel is the badge text for a message type.
func TypeLabel(t model.MessageType) string {
	if t == model.TypeIndividual {
		return "Individual"
	}
	return "Geral"
}

// EmptyText is shown when a tab has no messages.
func EmptyText(tab string) string {
	switch tab {
	case inbox.TabGeneral:
		return "Nenhuma mensagem geral encontrada"
	case inbox.TabIndividual:
		return "Nenhuma mensagem individual encontrada"
	default:
		return "Nenhuma mensagem encontrada"
	}
}

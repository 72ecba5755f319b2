package inbox

import (
	"math"
	"strconv"

	"github.com/johndosdos/escola/internal/model"
)

// NoRate is rendered in place of a percentage that cannot be computed.
const NoRate = "—"

// studentsPerClass is used to estimate the number of classes.
const studentsPerClass = 25

// ReadRate returns round(read/total*100). ok is false when total is not
// positive, in which case the rate must not be displayed.
func ReadRate(read, total int) (rate int, ok bool) {
	if total <= 0 {
		return 0, false
	}
	return int(math.Round(float64(read) / float64(total) * 100)), true
}

// FormatReadRate renders ReadRate as "35%", or NoRate when it is undefined.
func FormatReadRate(read, total int) string {
	rate, ok := ReadRate(read, total)
	if !ok {
		return NoRate
	}
	return strconv.Itoa(rate) + "%"
}

// FullyRead reports whether every recipient has read the message.
func FullyRead(m model.SentMessage) bool {
	return m.TotalRecipients > 0 && m.ReadCount == m.TotalRecipients
}

// Summarize counts the sent messages by type. Read is the number of
// messages every recipient has read.
func Summarize(msgs []model.SentMessage) model.MessageStats {
	s := model.MessageStats{Total: len(msgs)}
	for _, m := range msgs {
		switch m.Type {
		case model.TypeGeneral:
			s.General++
		case model.TypeIndividual:
			s.Individual++
		}
		if FullyRead(m) {
			s.Read++
		}
	}
	return s
}

// ClassCount estimates the number of classes for the student total.
func ClassCount(students int) int {
	return int(math.Round(float64(students) / studentsPerClass))
}

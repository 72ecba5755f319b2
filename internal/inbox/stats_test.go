package inbox

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/johndosdos/escola/internal/model"
)

func TestReadRate(t *testing.T) {
	tests := []struct {
		name   string
		read   int
		total  int
		want   int
		wantOk bool
		text   string
	}{
		{"rounded down", 145, 420, 35, true, "35%"},
		{"rounded up", 389, 420, 93, true, "93%"},
		{"all read", 1, 1, 100, true, "100%"},
		{"none read", 0, 420, 0, true, "0%"},
		{"no recipients", 0, 0, 0, false, NoRate},
		{"negative total", 3, -1, 0, false, NoRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ReadRate(tt.read, tt.total)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.text, FormatReadRate(tt.read, tt.total))
			assert.NotContains(t, FormatReadRate(tt.read, tt.total), "NaN")
		})
	}
}

func TestSummarize(t *testing.T) {
	msgs := []model.SentMessage{
		{Type: model.TypeGeneral, ReadCount: 145, TotalRecipients: 420},
		{Type: model.TypeIndividual, ReadCount: 1, TotalRecipients: 1},
		{Type: model.TypeIndividual, ReadCount: 0, TotalRecipients: 0},
	}

	got := Summarize(msgs)
	assert.Equal(t, model.MessageStats{Total: 3, Read: 1, General: 1, Individual: 2}, got)
}

func TestClassCount(t *testing.T) {
	assert.Equal(t, 20, ClassCount(512))
	assert.Equal(t, 0, ClassCount(0))
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeSentMessage(t *testing.T) {
	t.Run("general drops recipient", func(t *testing.T) {
		m := Compose{Type: TypeGeneral, Subject: "Aviso", Message: "Texto", Recipient: "ana@x.com"}.SentMessage()

		assert.Equal(t, "Aviso", m.Title)
		assert.Equal(t, "Texto", m.Content)
		assert.Empty(t, m.Recipient)
		assert.Nil(t, m.Category)
	})

	t.Run("individual keeps recipient and category", func(t *testing.T) {
		m := Compose{Type: TypeIndividual, Subject: "Oi", Recipient: "ana@x.com", Category: "Disciplina"}.SentMessage()

		assert.Equal(t, "ana@x.com", m.Recipient)
		require.NotNil(t, m.Category)
		assert.Equal(t, "Disciplina", m.CategoryName())
	})
}

package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type form struct {
	Name  string `form:"name" validate:"required"`
	Code  string `form:"code" validate:"omitempty,min=6"`
	Kind  string `form:"kind" validate:"oneof=a b"`
	Other string `form:"other" validate:"required_if=Kind b"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, Struct(form{Name: "x", Kind: "a"}))
	})

	t.Run("field messages", func(t *testing.T) {
		err := Struct(form{Code: "abc", Kind: "b"})

		var verr *Error
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "o campo name é obrigatório", verr.Field("name"))
		assert.Equal(t, "o campo code deve ter pelo menos 6 caracteres", verr.Field("code"))
		assert.Equal(t, "o campo other é obrigatório", verr.Field("other"))
		assert.Empty(t, verr.Field("kind"))
		assert.Contains(t, verr.Error(), "name")
	})

	t.Run("not a struct", func(t *testing.T) {
		err := Struct(42)
		require.Error(t, err)

		var verr *Error
		assert.False(t, errors.As(err, &verr))
	})
}

func TestClean(t *testing.T) {
	assert.Equal(t, "Ana", Clean("  Ana "))
	assert.Equal(t, "ana@x.com", Clean(" Ana@X.com ", true))
}

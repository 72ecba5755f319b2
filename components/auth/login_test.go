package auth

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginComponent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Login().Render(context.Background(), &buf))
	html := buf.String()

	assert.Contains(t, html, "<!doctype html>")
	assert.Contains(t, html, "Escola Conectada")
	assert.Contains(t, html, "<form")
	assert.Contains(t, html, `hx-post="/account/login"`)
	assert.Contains(t, html, `name="email"`)
	assert.Contains(t, html, `name="password"`)
	assert.Contains(t, html, `name="user_type" value="parent" checked`)
	assert.Contains(t, html, `value="school"`)
	assert.Contains(t, html, `type="submit"`)
}

func TestLoginFormKeepsEmail(t *testing.T) {
	var buf bytes.Buffer
	err := LoginForm("school", `x"@y.com`).Render(context.Background(), &buf)
	assert.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, `value="x&#34;@y.com"`)
	assert.Contains(t, html, `name="user_type" value="school" checked`)
}

func TestErrorMsgAuth(t *testing.T) {
	var buf bytes.Buffer
	err := ErrorMsgAuth("<b>Credenciais inválidas</b>").Render(context.Background(), &buf)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "&lt;b&gt;Credenciais inválidas&lt;/b&gt;")
}

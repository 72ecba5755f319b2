package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	first, err := HashPassword("senha-forte")
	require.NoError(t, err)
	second, err := HashPassword("senha-forte")
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "salted hashes must differ")

	_, err = HashPassword("")
	assert.NoError(t, err)
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("segredo123")
	require.NoError(t, err)

	tests := []struct {
		name      string
		attempt   string
		hash      string
		wantMatch bool
		wantErr   bool
	}{
		{"matching password", "segredo123", hash, true, false},
		{"other password", "segredo321", hash, false, false},
		{"malformed hash", "segredo123", "not-a-hash", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := CheckPasswordHash(tt.attempt, tt.hash)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMatch, ok)
		})
	}
}

func TestValidateJWT(t *testing.T) {
	const (
		email  = "joao.silva@exemplo.com"
		secret = "segredo-do-portal"
	)

	sign := func(t *testing.T, userType UserType, ttl time.Duration) string {
		t.Helper()
		token, err := MakeJWT(email, userType, "escola", secret, ttl)
		require.NoError(t, err)
		return token
	}

	t.Run("round trip", func(t *testing.T) {
		s, err := ValidateJWT(sign(t, TypeParent, time.Minute), secret)
		require.NoError(t, err)
		assert.Equal(t, email, s.Email)
		assert.Equal(t, TypeParent, s.Type)
		assert.WithinDuration(t, time.Now().Add(time.Minute), s.ExpiresAt, 2*time.Second)
	})

	rejected := []struct {
		name   string
		token  func(t *testing.T) string
		secret string
	}{
		{"other secret", func(t *testing.T) string { return sign(t, TypeSchool, time.Minute) }, "outro"},
		{"expired", func(t *testing.T) string { return sign(t, TypeParent, -time.Second) }, secret},
		{"unknown user type", func(t *testing.T) string { return sign(t, UserType("admin"), time.Minute) }, secret},
		{"garbage", func(*testing.T) string { return "nao-e-um-token" }, secret},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateJWT(tt.token(t), tt.secret)
			assert.Error(t, err)
		})
	}
}

func TestGetSessionFromContext(t *testing.T) {
	t.Run("valid_session", func(t *testing.T) {
		want := Session{Email: "a@b.com", Type: TypeSchool}
		got, err := GetSessionFromContext(WithSession(context.Background(), want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("wrong_value_type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), SessionKey, "a@b.com")
		_, err := GetSessionFromContext(ctx)
		assert.Error(t, err)
	})

	t.Run("empty_session", func(t *testing.T) {
		_, err := GetSessionFromContext(WithSession(context.Background(), Session{}))
		assert.Error(t, err)
	})

	t.Run("no_context", func(t *testing.T) {
		_, err := GetSessionFromContext(context.Background())
		assert.Error(t, err)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("demo accepts anyone", func(t *testing.T) {
		a, err := NewAuthenticator(true, "")
		require.NoError(t, err)

		s, err := a.Authenticate(ctx, Credentials{Email: " Pai@Exemplo.com ", Password: "123456", Type: TypeParent})
		require.NoError(t, err)
		assert.Equal(t, Session{Email: "pai@exemplo.com", Type: TypeParent}, s)
	})

	t.Run("seeded accounts", func(t *testing.T) {
		a, err := NewAuthenticator(false, "segredo123")
		require.NoError(t, err)

		s, err := a.Authenticate(ctx, Credentials{Email: "secretaria@escolaconectada.com", Password: "segredo123", Type: TypeSchool})
		require.NoError(t, err)
		assert.Equal(t, TypeSchool, s.Type)

		_, err = a.Authenticate(ctx, Credentials{Email: "secretaria@escolaconectada.com", Password: "errada123", Type: TypeSchool})
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = a.Authenticate(ctx, Credentials{Email: "secretaria@escolaconectada.com", Password: "segredo123", Type: TypeParent})
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = a.Authenticate(ctx, Credentials{Email: "stranger@exemplo.com", Password: "segredo123", Type: TypeParent})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestSessionCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "tok", time.Hour)
	ClearSessionCookie(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, 3600, cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.Equal(t, -1, cookies[1].MaxAge)
}

func TestDashboardPath(t *testing.T) {
	assert.Equal(t, "/parent/dashboard", TypeParent.DashboardPath())
	assert.Equal(t, "/school/dashboard", TypeSchool.DashboardPath())
}

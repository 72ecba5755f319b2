package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johndosdos/escola/internal/auth"
)

const secret = "test-secret"

func request(t *testing.T, userType auth.UserType, exp time.Duration, tokenSecret string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/parent/messages", nil)
	if userType == "" {
		return req
	}

	token, err := auth.MakeJWT("ana@exemplo.com", userType, "escola", tokenSecret, exp)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	return req
}

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name         string
		userType     auth.UserType
		exp          time.Duration
		tokenSecret  string
		role         auth.UserType
		wantStatus   int
		wantLocation string
	}{
		{
			name:       "valid parent",
			userType:   auth.TypeParent,
			exp:        time.Hour,
			role:       auth.TypeParent,
			wantStatus: http.StatusOK,
		},
		{
			name:         "no cookie",
			role:         auth.TypeParent,
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/",
		},
		{
			name:         "expired token",
			userType:     auth.TypeParent,
			exp:          -time.Minute,
			role:         auth.TypeParent,
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/",
		},
		{
			name:         "wrong signature",
			userType:     auth.TypeParent,
			exp:          time.Hour,
			tokenSecret:  "other-secret",
			role:         auth.TypeParent,
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/",
		},
		{
			name:         "school on parent route",
			userType:     auth.TypeSchool,
			exp:          time.Hour,
			role:         auth.TypeParent,
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/school/dashboard",
		},
		{
			name:       "any role",
			userType:   auth.TypeSchool,
			exp:        time.Hour,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenSecret := tt.tokenSecret
			if tokenSecret == "" {
				tokenSecret = secret
			}

			var got auth.Session
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				s, err := auth.GetSessionFromContext(r.Context())
				require.NoError(t, err)
				got = s
			})

			rec := httptest.NewRecorder()
			Middleware(next, secret, tt.role)(rec, request(t, tt.userType, tt.exp, tokenSecret))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "ana@exemplo.com", got.Email)
				assert.Equal(t, tt.userType, got.Type)
			}
		})
	}
}

func TestMiddlewareCorruptCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/school/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "not-a-jwt"})
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	Middleware(http.NotFoundHandler(), secret, auth.TypeSchool)(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("HX-Redirect"))
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "session=;")
}

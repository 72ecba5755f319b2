package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/golang-jwt/jwt/v5"
)

type ContextKey string

const SessionKey ContextKey = "session"

// UserType is who is logged in.
type UserType string

const (
	TypeParent UserType = "parent"
	TypeSchool UserType = "school"
)

// DashboardPath returns the landing page for the user type.
func (t UserType) DashboardPath() string {
	if t == TypeSchool {
		return "/school/dashboard"
	}
	return "/parent/dashboard"
}

// Session is the logged-in user. It is passed to handlers through the
// request context.
type Session struct {
	Email     string
	Type      UserType
	ExpiresAt time.Time
}

type sessionClaims struct {
	UserType UserType `json:"user_type"`
	jwt.RegisteredClaims
}

func HashPassword(password string) (string, error) {
	hashedPw, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return "", fmt.Errorf("internal/auth: pw hash failed: %w", err)
	}

	return hashedPw, nil
}

func CheckPasswordHash(password, hash string) (bool, error) {
	isMatch, err := argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		return false, fmt.Errorf("internal/auth: pw and hash comparison failed: %w", err)
	}

	return isMatch, nil
}

// MakeJWT signs a session token for email.
func MakeJWT(email string, userType UserType, issuer, tokenSecret string, expiresIn time.Duration) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		UserType: userType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
	})

	return token.SignedString([]byte(tokenSecret))
}

// ValidateJWT parses a session token and returns the session it carries.
func ValidateJWT(tokenString, tokenSecret string) (Session, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (any, error) { return []byte(tokenSecret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Session{}, fmt.Errorf("internal/auth: failed to parse token: %w", err)
	}

	if !token.Valid {
		return Session{}, errors.New("internal/auth: token is invalid")
	}

	if claims.Subject == "" {
		return Session{}, errors.New("internal/auth: subject claim is missing")
	}

	if claims.UserType != TypeParent && claims.UserType != TypeSchool {
		return Session{}, fmt.Errorf("internal/auth: unknown user type %q", claims.UserType)
	}

	return Session{
		Email:     claims.Subject,
		Type:      claims.UserType,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, SessionKey, s)
}

// GetSessionFromContext returns the session set by the middleware.
func GetSessionFromContext(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(SessionKey).(Session)
	if !ok {
		return Session{}, errors.New("internal/auth: no session in context")
	}
	if s.Email == "" {
		return Session{}, errors.New("internal/auth: session has no email")
	}
	return s, nil
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var ErrInvalidCredentials = errors.New("internal/auth: invalid email or password")

// Credentials is the submitted login form.
type Credentials struct {
	Email    string   `form:"email" validate:"required,contains=@"`
	Password string   `form:"password" validate:"required,min=6"`
	Type     UserType `form:"user_type" validate:"oneof=parent school"`
}

type account struct {
	userType UserType
	hash     string
}

// Authenticator checks login credentials. In demo mode every well-formed
// credential is accepted; otherwise only the seeded accounts can log in.
type Authenticator struct {
	demo     bool
	accounts map[string]account
}

// SeedAccounts are created when a seed password is configured.
var SeedAccounts = map[string]UserType{
	"joao.silva@exemplo.com":         TypeParent,
	"ana.silva@exemplo.com":          TypeParent,
	"carlos.oliveira@exemplo.com":    TypeParent,
	"secretaria@escolaconectada.com": TypeSchool,
}

// NewAuthenticator builds an Authenticator. When seedPassword is not empty
// every SeedAccounts entry gets it as password.
func NewAuthenticator(demo bool, seedPassword string) (*Authenticator, error) {
	a := &Authenticator{
		demo:     demo,
		accounts: make(map[string]account),
	}
	if seedPassword == "" {
		return a, nil
	}

	for email, userType := range SeedAccounts {
		hash, err := HashPassword(seedPassword)
		if err != nil {
			return nil, fmt.Errorf("internal/auth: seed account %s: %w", email, err)
		}
		a.accounts[email] = account{userType: userType, hash: hash}
	}
	return a, nil
}

// Authenticate returns the session for valid credentials. Credentials are
// expected to be validated already.
func (a *Authenticator) Authenticate(ctx context.Context, c Credentials) (Session, error) {
	email := strings.ToLower(strings.TrimSpace(c.Email))

	acc, ok := a.accounts[email]
	if !ok {
		if a.demo {
			slog.DebugContext(ctx, "demo login", slog.String("email", email))
			return Session{Email: email, Type: c.Type}, nil
		}
		return Session{}, ErrInvalidCredentials
	}

	match, err := CheckPasswordHash(c.Password, acc.hash)
	if err != nil {
		return Session{}, err
	}
	if !match || acc.userType != c.Type {
		return Session{}, ErrInvalidCredentials
	}

	return Session{Email: email, Type: acc.userType}, nil
}

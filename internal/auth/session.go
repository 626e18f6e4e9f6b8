// Package auth holds the session value, the access predicate and token
// issuing. A Session is never mutated: every operation returns a new one.
package auth

import (
	"context"
	"errors"

	"fleetops/internal/domain"
)

// Principal is the authenticated identity a session carries.
type Principal struct {
	UserID   int64       `json:"id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

type Session struct {
	token string
	user  *Principal
}

// Verifier turns a bearer token into a principal.
type Verifier interface {
	Verify(token string) (*Principal, error)
}

var ErrNoToken = errors.New("no token")

func NewSession() Session { return Session{} }

// Initialize restores a session from a stored token. An invalid or expired
// token yields an anonymous session together with the verification error.
func (s Session) Initialize(token string, v Verifier) (Session, error) {
	if token == "" {
		return Session{}, ErrNoToken
	}
	p, err := v.Verify(token)
	if err != nil {
		return Session{}, err
	}
	return Session{token: token, user: p}, nil
}

func (s Session) Login(token string, user Principal) Session {
	u := user
	return Session{token: token, user: &u}
}

func (s Session) Logout() Session { return Session{} }

func (s Session) Token() string { return s.token }

// User returns a copy of the principal, or nil when anonymous.
func (s Session) User() *Principal {
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s Session) Authenticated() bool { return s.user != nil }

func (s Session) CanAccess(resource domain.Resource) bool {
	return CanAccess(s.user, resource)
}

type sessionKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the session stored in ctx, or an anonymous one.
func FromContext(ctx context.Context) Session {
	if s, ok := ctx.Value(sessionKey{}).(Session); ok {
		return s
	}
	return Session{}
}

// Package auth provides the authentication provider capability interface and a
// JWT-backed implementation storing credentials in the document store.
package auth

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors returned by Provider implementations.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Provider is the capability interface over the authentication service.
type Provider interface {
	// CreateUser registers a new auth subject and returns its uid.
	CreateUser(ctx context.Context, email, password string) (string, error)

	// DeleteUser removes an auth subject.
	DeleteUser(ctx context.Context, uid string) error

	// SignIn verifies credentials and issues a short-lived ID token.
	SignIn(ctx context.Context, email, password string) (string, error)

	// CreateSessionCookie exchanges a valid ID token for a session cookie
	// value with the given TTL.
	CreateSessionCookie(ctx context.Context, idToken string, ttl time.Duration) (string, error)

	// VerifySessionCookie validates a session cookie and returns the uid.
	VerifySessionCookie(ctx context.Context, cookie string) (string, error)

	// VerifyIDToken validates an ID token and returns the uid.
	VerifyIDToken(ctx context.Context, token string) (string, error)
}

package testutil

import (
	"context"
	"time"

	"stuntcare/internal/auth"
)

// AuthStub is a Provider stub with overridable behavior per method. The zero
// value accepts everything and hands back fixed values.
type AuthStub struct {
	CreateUserFn  func(ctx context.Context, email, password string) (string, error)
	DeleteUserFn  func(ctx context.Context, uid string) error
	SignInFn      func(ctx context.Context, email, password string) (string, error)
	SessionFn     func(ctx context.Context, idToken string, ttl time.Duration) (string, error)
	VerifyFn      func(ctx context.Context, cookie string) (string, error)
	VerifyIDFn    func(ctx context.Context, token string) (string, error)
	DeletedUIDs   []string
	CreatedEmails []string
}

var _ auth.Provider = (*AuthStub)(nil)

func (s *AuthStub) CreateUser(ctx context.Context, email, password string) (string, error) {
	s.CreatedEmails = append(s.CreatedEmails, email)
	if s.CreateUserFn != nil {
		return s.CreateUserFn(ctx, email, password)
	}
	return "uid-" + email, nil
}

func (s *AuthStub) DeleteUser(ctx context.Context, uid string) error {
	s.DeletedUIDs = append(s.DeletedUIDs, uid)
	if s.DeleteUserFn != nil {
		return s.DeleteUserFn(ctx, uid)
	}
	return nil
}

func (s *AuthStub) SignIn(ctx context.Context, email, password string) (string, error) {
	if s.SignInFn != nil {
		return s.SignInFn(ctx, email, password)
	}
	return "id-token", nil
}

func (s *AuthStub) CreateSessionCookie(ctx context.Context, idToken string, ttl time.Duration) (string, error) {
	if s.SessionFn != nil {
		return s.SessionFn(ctx, idToken, ttl)
	}
	return "session-cookie", nil
}

func (s *AuthStub) VerifySessionCookie(ctx context.Context, cookie string) (string, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, cookie)
	}
	return "uid-test", nil
}

func (s *AuthStub) VerifyIDToken(ctx context.Context, token string) (string, error) {
	if s.VerifyIDFn != nil {
		return s.VerifyIDFn(ctx, token)
	}
	return "uid-test", nil
}

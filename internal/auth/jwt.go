package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"stuntcare/internal/storage"
)

const idTokenTTL = time.Hour

// Credential is the stored auth subject record.
type Credential struct {
	ID           string    `dynamodbav:"id"`
	Email        string    `dynamodbav:"email"`
	PasswordHash string    `dynamodbav:"password_hash"`
	CreatedAt    time.Time `dynamodbav:"created_at"`
}

// JWTProvider implements Provider with HMAC-signed JWTs and bcrypt credential
// records kept in the document store.
type JWTProvider struct {
	store  storage.EntityStore
	secret []byte
}

// NewJWTProvider creates a JWTProvider signing with the given secret.
func NewJWTProvider(store storage.EntityStore, secret string) *JWTProvider {
	return &JWTProvider{store: store, secret: []byte(secret)}
}

func (p *JWTProvider) CreateUser(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing []Credential
	if err := p.store.Query(ctx, storage.KindCredential, "email", email, &existing); err != nil {
		return "", fmt.Errorf("lookup credentials: %w", err)
	}
	if len(existing) > 0 {
		return "", ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	uid := uuid.NewString()
	cred := Credential{
		ID:           uid,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := p.store.Put(ctx, storage.KindCredential, uid, cred); err != nil {
		return "", fmt.Errorf("store credentials: %w", err)
	}
	return uid, nil
}

func (p *JWTProvider) DeleteUser(ctx context.Context, uid string) error {
	return p.store.Delete(ctx, storage.KindCredential, uid)
}

func (p *JWTProvider) SignIn(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var matches []Credential
	if err := p.store.Query(ctx, storage.KindCredential, "email", email, &matches); err != nil {
		return "", fmt.Errorf("lookup credentials: %w", err)
	}
	if len(matches) == 0 {
		return "", ErrInvalidCredentials
	}

	cred := matches[0]
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return p.sign(cred.ID, "id", idTokenTTL)
}

func (p *JWTProvider) CreateSessionCookie(ctx context.Context, idToken string, ttl time.Duration) (string, error) {
	uid, err := p.verify(ctx, idToken, "id")
	if err != nil {
		return "", err
	}
	return p.sign(uid, "session", ttl)
}

func (p *JWTProvider) VerifySessionCookie(ctx context.Context, cookie string) (string, error) {
	return p.verify(ctx, cookie, "session")
}

func (p *JWTProvider) VerifyIDToken(ctx context.Context, token string) (string, error) {
	return p.verify(ctx, token, "id")
}

func (p *JWTProvider) sign(uid, use string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":       uid,
		"token_use": use,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	})
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// verify checks the signature, expiry and token_use claim, and confirms the
// subject still exists (a deleted user's outstanding tokens are rejected).
func (p *JWTProvider) verify(ctx context.Context, raw, use string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	if u, _ := claims["token_use"].(string); u != use {
		return "", ErrInvalidToken
	}
	uid, _ := claims["sub"].(string)
	if uid == "" {
		return "", ErrInvalidToken
	}

	var cred Credential
	if err := p.store.Get(ctx, storage.KindCredential, uid, &cred); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}
	return uid, nil
}

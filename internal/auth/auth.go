// Package auth issues and checks admin tokens. There is a single admin
// identity guarded by one bcrypt password hash.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/jpcodeman/partygame/internal/common/clock"
)

// AuthError is a custom error type for authentication errors
type AuthError string

// Error implements the error interface
func (e AuthError) Error() string {
	return string(e)
}

const (
	ErrUnauthorized     AuthError = "unauthorized"
	ErrInvalidPassword  AuthError = "invalid password"
	ErrNilConfig        AuthError = "config cannot be nil"
	ErrSecretRequired   AuthError = "jwt secret is required"
	ErrPasswordRequired AuthError = "admin password hash is required"
	ErrNilClock         AuthError = "clock cannot be nil"
)

// DefaultTokenTTL is how long an admin token stays valid
const DefaultTokenTTL = 24 * time.Hour

const issuer = "partygame"

// Config holds configuration for the authenticator
type Config struct {
	// Secret signs tokens with HS256
	Secret []byte

	// PasswordHash is the bcrypt hash of the admin password
	PasswordHash string

	// TokenTTL defaults to DefaultTokenTTL
	TokenTTL time.Duration

	Clock clock.Clock
}

// Claims are the JWT claims carried by an admin token
type Claims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// Token is a signed admin token
type Token struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Authenticator checks the admin password and verifies tokens
type Authenticator struct {
	secret       []byte
	passwordHash []byte
	ttl          time.Duration
	clock        clock.Clock
}

// New creates an authenticator
func New(cfg *Config) (*Authenticator, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if len(cfg.Secret) == 0 {
		return nil, ErrSecretRequired
	}
	if cfg.PasswordHash == "" {
		return nil, ErrPasswordRequired
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	return &Authenticator{
		secret:       cfg.Secret,
		passwordHash: []byte(cfg.PasswordHash),
		ttl:          ttl,
		clock:        cfg.Clock,
	}, nil
}

// HashPassword hashes a plain password for use as Config.PasswordHash
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}

// Login exchanges the admin password for a signed token
func (a *Authenticator) Login(password string) (*Token, error) {
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	now := a.clock.Now()
	exp := now.Add(a.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := t.SignedString(a.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &Token{Token: signed, ExpiresAt: exp}, nil
}

// Verify accepts only unexpired HS256 tokens carrying the admin claim
func (a *Authenticator) Verify(token string) error {
	if token == "" {
		return ErrUnauthorized
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(a.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fmt.Errorf("%w: token expired", ErrUnauthorized)
		}
		return ErrUnauthorized
	}
	if !parsed.Valid || !claims.Admin {
		return ErrUnauthorized
	}
	return nil
}

package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoToken is returned when no session token is configured.
	ErrNoToken = errors.New("no session token")
	// ErrExpired is returned when the session token has expired.
	ErrExpired = errors.New("session token expired")
)

// Session is the authentication context injected into everything that
// talks to the journal API. It replaces any implicit global token
// storage so callers can be tested with fakes.
type Session struct {
	raw       string
	Username  string
	ExpiresAt time.Time
}

// FromToken builds a session from a raw token. The wayfare API issues
// both opaque tokens and JWTs; claims are extracted when the token
// parses as a JWT, but verification stays server-side.
func FromToken(raw string) (*Session, error) {
	if raw == "" {
		return nil, ErrNoToken
	}

	s := &Session{raw: raw}

	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(raw, jwt.MapClaims{})
	if err == nil {
		claims := token.Claims.(jwt.MapClaims)
		if subject, err := claims.GetSubject(); err == nil {
			s.Username = subject
		}
		if expiresAt, err := claims.GetExpirationTime(); err == nil && expiresAt != nil {
			s.ExpiresAt = expiresAt.Time
		}
	}

	return s, nil
}

// Token returns the raw session token.
func (s *Session) Token() string {
	return s.raw
}

// Authorization returns the value for the Authorization header.
func (s *Session) Authorization() string {
	return "Token " + s.raw
}

// Expired reports whether the session is past its expiry. Opaque tokens
// carry no expiry and never expire client-side.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Valid returns an error when the session cannot be used for requests.
func (s *Session) Valid(now time.Time) error {
	if s == nil || s.raw == "" {
		return ErrNoToken
	}
	if s.Expired(now) {
		return ErrExpired
	}
	return nil
}

// Package auth holds the signed-in session of the admin user.
package auth

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/light-bringer/procat-admin/internal/pkg/clock"
)

// Claims are the fields read from the API token.
type Claims struct {
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// TokenSession is a session backed by an API bearer token.
//
// The token is issued and verified by the product service; the client only
// reads its expiry and subject. Opaque (non-JWT) tokens are accepted and
// never expire on the client side.
type TokenSession struct {
	clock  clock.Clock
	logger *slog.Logger

	mu       sync.RWMutex
	token    string
	username string
	claims   *Claims
}

// NewTokenSession creates a session for token. username overrides the
// name carried in the token, if any.
func NewTokenSession(token, username string, clk clock.Clock, logger *slog.Logger) *TokenSession {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &TokenSession{
		clock:    clk,
		logger:   logger.With("component", "session"),
		token:    token,
		username: username,
	}
	if token != "" {
		claims, err := parseClaims(token)
		if err != nil {
			s.logger.Debug("token is not a JWT, treating it as opaque", "error", err)
		}
		s.claims = claims
	}
	return s
}

func parseClaims(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// IsAuthenticated reports whether a token is held and has not expired.
func (s *TokenSession) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.validLocked()
}

func (s *TokenSession) validLocked() bool {
	if s.token == "" {
		return false
	}
	if s.claims == nil || s.claims.ExpiresAt == nil {
		return true
	}
	return s.clock.Now().Before(s.claims.ExpiresAt.Time)
}

// Logout forgets the token.
func (s *TokenSession) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" {
		s.logger.Info("signed out", "username", s.usernameLocked())
	}
	s.token = ""
	s.claims = nil
}

// Token returns the bearer token, or "" once the session is over.
func (s *TokenSession) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.validLocked() {
		return ""
	}
	return s.token
}

// Username returns the display name of the signed-in user.
func (s *TokenSession) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usernameLocked()
}

func (s *TokenSession) usernameLocked() string {
	switch {
	case s.username != "":
		return s.username
	case s.claims != nil && s.claims.Username != "":
		return s.claims.Username
	case s.claims != nil:
		return s.claims.Subject
	default:
		return ""
	}
}

// ExpiresAt returns the token expiry, if the token carries one.
func (s *TokenSession) ExpiresAt() (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.claims == nil || s.claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}
	return s.claims.ExpiresAt.Time, nil
}

// ErrNoExpiry is returned by ExpiresAt for tokens without an exp claim.
var ErrNoExpiry = errors.New("token has no expiry")

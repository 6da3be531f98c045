package apiclient

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Cookie lifetimes the upstream session uses. They only matter as fallbacks:
// when a token carries an exp claim, the claim wins.
const (
	AccessTokenTTL  = time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Session is the authenticated state the upstream keeps in cookies: the
// bearer access token, the refresh token, and the user id.
type Session struct {
	Access        string
	Refresh       string
	UserID        string
	AccessExpiry  time.Time
	RefreshExpiry time.Time
}

// Expired reports whether the access token is past its expiry.
func (s Session) Expired(now time.Time) bool {
	return !s.AccessExpiry.IsZero() && now.After(s.AccessExpiry)
}

// TokenStore persists the session between requests. A forced logout clears
// it entirely.
type TokenStore interface {
	Session() (Session, bool)
	Save(session Session)
	Clear()
}

// MemoryTokenStore keeps the session in memory. Embedding processes that
// need cookie or disk persistence supply their own implementation.
type MemoryTokenStore struct {
	mu      sync.RWMutex
	session Session
	ok      bool
}

// NewMemoryTokenStore builds an empty store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Session returns the stored session, if any.
func (s *MemoryTokenStore) Session() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session, s.ok
}

// Save replaces the stored session.
func (s *MemoryTokenStore) Save(session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	s.ok = true
}

// Clear drops the session.
func (s *MemoryTokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = Session{}
	s.ok = false
}

// tokenExpiry reads the exp claim from a JWT without verifying its
// signature; verification is the server's job. Tokens without a readable
// claim fall back to the cookie lifetime.
func tokenExpiry(token string, fallback time.Duration, now time.Time) time.Time {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time
		}
	}
	return now.Add(fallback)
}

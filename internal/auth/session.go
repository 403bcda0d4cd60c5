// Package auth holds the client-side login session: the current user,
// the bearer token, and its expiry.
package auth

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/bytetechedu/bytetech/internal/api"
	"github.com/bytetechedu/bytetech/internal/store"
)

// Session is the current login state. It implements api.TokenSource so
// the API client picks up the token automatically. Safe for use from
// tea commands running off the UI goroutine.
type Session struct {
	mu     sync.RWMutex
	user   *api.User
	token  string
	expiry time.Time
	store  *store.Store
}

// New returns an empty, logged-out session. st may be nil for a
// session that is not persisted.
func New(st *store.Store) *Session {
	return &Session{store: st}
}

// Restore loads a previously persisted session, if any.
func Restore(st *store.Store) (*Session, error) {
	s := New(st)
	if st == nil {
		return s, nil
	}
	rec, err := st.LoadSession()
	if err != nil || rec == nil {
		return s, err
	}
	s.set(&api.User{
		ID:       rec.UserID,
		Name:     rec.Name,
		Email:    rec.Email,
		IsSensei: rec.IsSensei,
	}, rec.AccessToken)
	return s, nil
}

// Token implements api.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Username returns the logged-in user's display name, or "".
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Name
}

// User returns the logged-in user, or nil.
func (s *Session) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// LoggedIn reports whether a user and token are present.
func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

// IsSensei reports whether the logged-in user has the teacher role.
func (s *Session) IsSensei() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.IsSensei
}

// NeedsRefresh reports whether the access token is within margin of
// its expiry (or already expired). Tokens without a readable expiry
// never report true.
func (s *Session) NeedsRefresh(margin time.Duration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" || s.expiry.IsZero() {
		return false
	}
	return time.Now().Add(margin).After(s.expiry)
}

// Login stores the user and token and persists them.
func (s *Session) Login(user *api.User, token string) error {
	s.set(user, token)
	if s.store == nil {
		return nil
	}
	return s.store.SaveSession(&store.SessionRecord{
		AccessToken: token,
		UserID:      user.ID,
		Name:        user.Name,
		Email:       user.Email,
		IsSensei:    user.IsSensei,
	})
}

// SetToken replaces the token after a refresh, keeping the user.
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	s.token = token
	s.expiry = tokenExpiry(token)
	user := s.user
	s.mu.Unlock()

	if s.store == nil || user == nil {
		return nil
	}
	return s.store.SaveSession(&store.SessionRecord{
		AccessToken: token,
		UserID:      user.ID,
		Name:        user.Name,
		Email:       user.Email,
		IsSensei:    user.IsSensei,
	})
}

// Logout clears the session and its persisted copy.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.expiry = time.Time{}
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	return s.store.ClearSession()
}

func (s *Session) set(user *api.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.token = token
	s.expiry = tokenExpiry(token)
}

// tokenExpiry reads the exp claim without verifying the signature.
// Verification is the server's job; the client only schedules
// refreshes. An unparseable token yields a zero time.
func tokenExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

package auth

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrUnauthenticated is returned when a token does not resolve to a live
// session.
var ErrUnauthenticated = errors.New("invalid or expired session")

// Session is a live authenticated binding between a token and an account.
// The role is a snapshot taken at login; role changes apply at next login.
type Session struct {
	Token      string
	Username   string
	Role       Role
	LastActive time.Time
}

// Registry tracks live sessions by opaque token. Sessions are created at
// login and destroyed only by explicit logout or an administrative kick;
// there is no idle expiry.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	now func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create mints a fresh token bound to the given account and role. The
// username is stored lowercased so session lookups agree with the gateway's
// case-insensitive account keys, whatever casing the player typed at login.
func (r *Registry) Create(username string, role Role) (string, error) {
	username = strings.ToLower(username)
	token := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[token] = &Session{
		Token:      token,
		Username:   username,
		Role:       role,
		LastActive: r.now(),
	}
	return token, nil
}

// Resolve looks up a token and, on success, bumps the session's last-active
// time. Unknown tokens fail with ErrUnauthenticated.
func (r *Registry) Resolve(token string) (string, Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[token]
	if !ok {
		return "", RolePlayer, ErrUnauthenticated
	}

	s.LastActive = r.now()
	return s.Username, s.Role, nil
}

// LastActive returns the session's last-active time without bumping it.
func (r *Registry) LastActive(token string) (time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[token]
	if !ok {
		return time.Time{}, false
	}
	return s.LastActive, true
}

// Destroy removes a token. Removing an absent token is a no-op.
func (r *Registry) Destroy(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, token)
}

// DestroyUser removes every session belonging to the given account and
// reports how many were dropped. Used by logout-by-name and kicks. The
// account name is matched case-insensitively.
func (r *Registry) DestroyUser(username string) int {
	username = strings.ToLower(username)

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for token, s := range r.sessions {
		if s.Username == username {
			delete(r.sessions, token)
			n++
		}
	}
	return n
}

// IsOnline reports whether the account has at least one live session. The
// account name is matched case-insensitively.
func (r *Registry) IsOnline(username string) bool {
	username = strings.ToLower(username)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.sessions {
		if s.Username == username {
			return true
		}
	}
	return false
}

// Active returns the distinct usernames with a live session, sorted.
func (r *Registry) Active() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool, len(r.sessions))
	var out []string
	for _, s := range r.sessions {
		if !seen[s.Username] {
			seen[s.Username] = true
			out = append(out, s.Username)
		}
	}
	sort.Strings(out)
	return out
}

// Package session holds the in-memory bearer-token registries for the
// store-admin and master panels. Entries expire by TTL and are swept lazily
// on authenticate calls, so memory is bounded by traffic rather than by a
// background timer.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// Session binds a token to an identity and, for store-admin logins, to the
// tenant whose files the session may touch.
type Session struct {
	Token     string
	Subject   string
	StoreSlug string
	ExpiresAt time.Time
}

// Registry is safe for concurrent use. The zero value is not usable; call New.
type Registry struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]Session
	now      func() time.Time
}

func New(ttl time.Duration) *Registry {
	return &Registry{
		ttl:      ttl,
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// WithClock overrides the registry clock. Test hook.
func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
	return r
}

func newToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("session: crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// Issue mints a fresh token for the subject. storeSlug is empty for the
// legacy admin and for master sessions.
func (r *Registry) Issue(subject, storeSlug string) Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := Session{
		Token:     newToken(),
		Subject:   subject,
		StoreSlug: storeSlug,
		ExpiresAt: r.now().Add(r.ttl),
	}
	r.sessions[s.Token] = s
	return s
}

// Authenticate sweeps expired entries, then resolves the token. Expired and
// unknown tokens both report false.
func (r *Registry) Authenticate(token string) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for t, s := range r.sessions {
		if !s.ExpiresAt.After(now) {
			delete(r.sessions, t)
		}
	}
	s, ok := r.sessions[token]
	return s, ok
}

// Revoke removes the token unconditionally.
func (r *Registry) Revoke(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
}

// RevokeStore removes every session bound to the slug except the caller's
// own. Used after a store admin changes its password.
func (r *Registry) RevokeStore(slug, exceptToken string) {
	if slug == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for t, s := range r.sessions {
		if s.StoreSlug == slug && t != exceptToken {
			delete(r.sessions, t)
		}
	}
}

// Len reports the live entry count, expired entries included until the next
// sweep.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

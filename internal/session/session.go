// Package session tracks the authentication state of the running client.
//
// A Session is the signal the reconcilers subscribe to: it reports whether
// the user is authenticated and who they are. The token and identity are
// persisted to the data directory so a restart resumes the logged-in
// session, and a browser-style anonymous client ID is generated once and
// kept for the lifetime of the installation.
package session

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/mholtz/tote/internal/localstore"
	"github.com/mholtz/tote/internal/shopapi"
)

const snapshotName = "session.json"

type snapshot struct {
	ClientID string            `json:"clientId"`
	Token    string            `json:"token"`
	Identity *shopapi.Identity `json:"identity,omitempty"`
}

// Session holds the current authentication state. Use New to construct one.
type Session struct {
	dir localstore.Dir

	mu          sync.RWMutex
	clientID    string
	token       string
	identity    *shopapi.Identity
	subscribers []func()
}

// New restores the session snapshot from dir, minting and persisting a fresh
// client ID when none exists yet.
func New(dir localstore.Dir) *Session {
	s := &Session{dir: dir}

	var snap snapshot
	if dir.Read(snapshotName, &snap) {
		s.clientID = snap.ClientID
		s.token = snap.Token
		s.identity = snap.Identity
	}
	if s.clientID == "" {
		s.clientID = uuid.NewString()
		s.persist()
	}
	return s
}

// ClientID returns the stable anonymous identifier for this installation.
func (s *Session) ClientID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clientID
}

// Token returns the current session token, empty when anonymous.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Identity returns the authenticated user, if known.
func (s *Session) Identity() (shopapi.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return shopapi.Identity{}, false
	}
	return *s.identity, true
}

// IsAuthenticated reports whether a session token is present.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Login records a successful authentication and notifies subscribers.
func (s *Session) Login(token string, identity shopapi.Identity) {
	s.mu.Lock()
	s.token = token
	s.identity = &identity
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// Logout clears the token and identity, keeping the client ID, and notifies
// subscribers.
func (s *Session) Logout() {
	s.mu.Lock()
	s.token = ""
	s.identity = nil
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// Subscribe registers fn to run after every authentication transition.
// Subscribers are invoked synchronously in registration order.
func (s *Session) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Session) notify() {
	s.mu.RLock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}

func (s *Session) persist() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.persistLocked()
}

func (s *Session) persistLocked() {
	snap := snapshot{ClientID: s.clientID, Token: s.token, Identity: s.identity}
	if err := s.dir.Write(snapshotName, snap); err != nil {
		log.Printf("session persist failed: %v", err)
	}
}

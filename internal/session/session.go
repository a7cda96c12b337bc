// Package session owns the per-document working state of one fill
// workflow and an in-memory TTL store keyed by session ID.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"docfill/internal/convo"
	"docfill/internal/docfile"
)

// Session binds an uploaded template to its conversation. A new upload
// under the same ID replaces the session wholesale; there is no shared
// state between documents.
type Session struct {
	ID       string
	Filename string
	Template docfile.Template
	Conv     *convo.Conversation

	CreatedAt  time.Time
	lastActive time.Time
}

// New builds a session with a fresh ID.
func New(filename string, tmpl docfile.Template, conv *convo.Conversation) *Session {
	now := time.Now()
	return &Session{
		ID:         uuid.NewString(),
		Filename:   filename,
		Template:   tmpl,
		Conv:       conv,
		CreatedAt:  now,
		lastActive: now,
	}
}

// Store is a thread-safe in-memory session registry with TTL eviction.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

func (s *Store) Put(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
}

// Get returns a live session and refreshes its activity timestamp.
func (s *Store) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessions[id]
	if sess != nil {
		sess.lastActive = time.Now()
	}
	return sess
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Cleanup removes sessions idle past the TTL.
func (s *Store) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, sess := range s.sessions {
		if now.Sub(sess.lastActive) > s.ttl {
			delete(s.sessions, id)
		}
	}
}

// Len reports how many sessions are live.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Package store is the in-memory registry of game sessions and their
// connected participants. Sessions live for the process lifetime; there is no
// persistence layer.
package store

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// Store holds every session plus a reverse index from connection identifier
// to the single session it is attached to. A connection belongs to at most
// one session: attaching to a new session detaches it from the previous one.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	order    []string // insertion order for stable listing
	byConn   map[string]string
}

func New() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		byConn:   make(map[string]string),
	}
}

// Create allocates a fresh session at the starting position. It never fails.
func (s *Store) Create(aiGame bool) *Session {
	sess := newSession(newGameID(), aiGame)

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.order = append(s.order, sess.ID)
	s.mu.Unlock()

	return sess
}

// Get looks up a session by id. Pure lookup, no side effect.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// List returns a snapshot of all sessions in insertion order.
func (s *Store) List() []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Session, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.sessions[id])
	}
	return out
}

// Attach adds a connection to a session's participant set and records the
// reverse mapping. No-op when the session is absent. A connection already
// attached elsewhere is detached from its previous session first.
func (s *Store) Attach(sessionID, connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return
	}
	if prev, ok := s.byConn[connID]; ok && prev != sessionID {
		if p, ok := s.sessions[prev]; ok {
			p.removeParticipant(connID)
		}
	}
	sess.addParticipant(connID)
	s.byConn[connID] = sessionID
}

// Detach removes a connection from whichever session it is attached to and
// clears the reverse index entry. No-op when the connection has no mapping.
func (s *Store) Detach(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byConn[connID]
	if !ok {
		return
	}
	if sess, ok := s.sessions[id]; ok {
		sess.removeParticipant(connID)
	}
	delete(s.byConn, connID)
}

// SessionFor returns the session a connection is attached to, if any.
func (s *Store) SessionFor(connID string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byConn[connID]
	if !ok {
		return nil, false
	}
	sess, ok := s.sessions[id]
	return sess, ok
}

// newGameID builds a practically unique identifier from the creation time
// and a random suffix. Session ids are not an auth boundary.
func newGameID() string {
	b := make([]byte, 5)
	_, _ = rand.Read(b)
	return fmt.Sprintf("game_%d_%s", time.Now().UnixMilli(), hex.EncodeToString(b))
}

// Package advisor is the conversation core: it plans each question with an
// LLM, grounds graph intents in Neo4j facts, and synthesizes the reply.
// This file contains per-conversation session state.
package advisor

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Turn is one message in a conversation, either from the student or from
// the advisor.
type Turn struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

const (
	// RoleStudent marks turns submitted by the user.
	RoleStudent = "student"
	// RoleAdvisor marks turns produced by the advisor.
	RoleAdvisor = "advisor"
)

// Session holds the state of one conversation. State is keyed per session,
// never process-wide, so concurrent conversations stay isolated. A Session
// is safe for concurrent use.
type Session struct {
	id string

	mu             sync.Mutex
	turns          []Turn
	lastCourseCode string
}

// NewSession creates a session with a fresh random ID.
func NewSession() *Session {
	return NewSessionWithID(uuid.NewString())
}

// NewSessionWithID creates a session with a caller-chosen ID.
func NewSessionWithID(id string) *Session {
	if id == "" {
		id = uuid.NewString()
	}
	return &Session{id: id}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Append records a turn in the conversation log.
func (s *Session) Append(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, Turn{Role: role, Content: content, At: time.Now()})
}

// Turns returns a copy of the conversation log.
func (s *Session) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// RememberCode stores the most recently mentioned course code, letting
// follow-up questions like "what about its prerequisites?" resolve.
func (s *Session) RememberCode(code string) {
	if code == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastCourseCode = code
}

// LastCode returns the most recently mentioned course code, or "".
func (s *Session) LastCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCourseCode
}

// SessionStore hands out sessions by ID, creating them on first use.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// GetOrCreate returns the session for id, creating it if needed. An empty
// id gets a brand-new session with a generated ID.
func (st *SessionStore) GetOrCreate(id string) *Session {
	if id == "" {
		s := NewSession()
		st.mu.Lock()
		st.sessions[s.ID()] = s
		st.mu.Unlock()
		return s
	}

	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[id]; ok {
		return s
	}
	s = NewSessionWithID(id)
	st.sessions[id] = s
	return s
}

// Len reports how many sessions the store holds.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

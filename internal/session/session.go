// Package session tracks authenticated sessions. Each session owns the
// working-set stores for its user; ending the session clears them, so no
// board state survives a logout.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/issue-board/internal/domain"
	"github.com/spec-kit/issue-board/internal/store"
)

// Session is the unit of per-login state.
type Session struct {
	ID        string
	User      domain.User
	Issues    *store.IssueStore
	Projects  *store.ProjectStore
	CreatedAt time.Time
}

// Manager is the process-wide session registry.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty registry.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Create opens a session for the user and returns it.
func (m *Manager) Create(user domain.User) *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		User:      user,
		Issues:    store.NewIssueStore(),
		Projects:  store.NewProjectStore(),
		CreatedAt: time.Now(),
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return sess
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	return sess, ok
}

// GetOrCreate returns the session with the given id, reviving it for the
// user when the registry no longer holds it (for instance after a restart
// while the token is still valid). A revived session starts with empty
// stores; the next refresh repopulates them.
func (m *Manager) GetOrCreate(id string, user domain.User) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[id]; ok {
		return sess
	}
	sess := &Session{
		ID:        id,
		User:      user,
		Issues:    store.NewIssueStore(),
		Projects:  store.NewProjectStore(),
		CreatedAt: time.Now(),
	}
	m.sessions[id] = sess
	return sess
}

// End clears the session's stores and removes it from the registry. Unknown
// ids are a no-op: an in-flight mutation completing after logout must not
// fail, it simply lands in a store nobody reads again.
func (m *Manager) End(id string) {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		sess.Issues.Clear()
		sess.Projects.Clear()
	}
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

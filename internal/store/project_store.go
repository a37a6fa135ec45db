package store

import (
	"sync"

	"github.com/spec-kit/issue-board/internal/domain"
)

// ProjectStore is the simpler sibling of IssueStore: projects are replaced
// wholesale on mutation results rather than field-merged.
type ProjectStore struct {
	mu       sync.RWMutex
	projects []domain.Project
}

// NewProjectStore returns an empty store.
func NewProjectStore() *ProjectStore {
	return &ProjectStore{}
}

// Load replaces the collection, preserving the order received.
func (s *ProjectStore) Load(projects []domain.Project) {
	copied := make([]domain.Project, len(projects))
	copy(copied, projects)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = copied
}

// Insert prepends the project, newest-first.
func (s *ProjectStore) Insert(project domain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = append([]domain.Project{project}, s.projects...)
}

// Replace swaps the stored record for the canonical one, matched by id.
// Unknown ids are ignored.
func (s *ProjectStore) Replace(project domain.Project) {
	if project.ID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.projects {
		if s.projects[i].ID == project.ID {
			s.projects[i] = project
			return
		}
	}
}

// Remove deletes the project with the given id; no-op when absent.
func (s *ProjectStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			return
		}
	}
}

// All returns a snapshot copy.
func (s *ProjectStore) All() []domain.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]domain.Project, len(s.projects))
	copy(snapshot, s.projects)
	return snapshot
}

// Get returns the project with the given id.
func (s *ProjectStore) Get(id string) (domain.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.projects {
		if s.projects[i].ID == id {
			return s.projects[i], true
		}
	}
	return domain.Project{}, false
}

// Clear empties the store.
func (s *ProjectStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = nil
}

// Package store holds the session-scoped in-memory working sets. A store is
// only ever written with completed mutation results, so a failed remote call
// can never leave it partially updated.
package store

import (
	"sync"

	"github.com/spec-kit/issue-board/internal/domain"
)

// IssueStore is an insertion-ordered issue collection. All operations are
// total: unknown ids on Merge and Remove are ignored, which tolerates
// duplicate or late mutation results.
type IssueStore struct {
	mu     sync.RWMutex
	issues []domain.Issue
}

// NewIssueStore returns an empty store.
func NewIssueStore() *IssueStore {
	return &IssueStore{}
}

// Load replaces the entire collection, preserving the order received.
func (s *IssueStore) Load(issues []domain.Issue) {
	copied := make([]domain.Issue, len(issues))
	copy(copied, issues)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.issues = copied
}

// Insert prepends the issue, keeping the collection newest-first.
func (s *IssueStore) Insert(issue domain.Issue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issues = append([]domain.Issue{issue}, s.issues...)
}

// Merge folds a canonical mutation result into the matching record. The patch
// wins field by field; scalar fields left zero in the patch keep their prior
// value, while the assignee is adopted verbatim so a nil patch assignee
// unassigns. Patches for ids the store does not know are dropped: a merge is
// only ever a response to a mutation on a known issue.
func (s *IssueStore) Merge(patch domain.Issue) {
	if patch.ID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.issues {
		if s.issues[i].ID == patch.ID {
			s.issues[i] = mergeIssue(s.issues[i], patch)
			return
		}
	}
}

// Remove deletes the issue with the given id; no-op when absent.
func (s *IssueStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.issues {
		if s.issues[i].ID == id {
			s.issues = append(s.issues[:i], s.issues[i+1:]...)
			return
		}
	}
}

// All returns a snapshot copy; callers cannot mutate internal storage
// through it.
func (s *IssueStore) All() []domain.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]domain.Issue, len(s.issues))
	copy(snapshot, s.issues)
	return snapshot
}

// Get returns the issue with the given id.
func (s *IssueStore) Get(id string) (domain.Issue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.issues {
		if s.issues[i].ID == id {
			return s.issues[i], true
		}
	}
	return domain.Issue{}, false
}

// Len returns the number of issues held.
func (s *IssueStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.issues)
}

// Clear empties the store. Called when the owning session ends.
func (s *IssueStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issues = nil
}

func mergeIssue(old, patch domain.Issue) domain.Issue {
	merged := old
	if patch.Title != "" {
		merged.Title = patch.Title
	}
	if patch.Description != "" {
		merged.Description = patch.Description
	}
	if patch.Severity != "" {
		merged.Severity = patch.Severity
	}
	if patch.Status != "" {
		merged.Status = patch.Status
	}
	if !patch.Project.IsZero() {
		merged.Project = patch.Project
	}
	// Canonical records always carry the assignee; nil means unassigned.
	merged.AssignedTo = patch.AssignedTo
	if patch.CreatedBy.ID != "" {
		merged.CreatedBy = patch.CreatedBy
	}
	// CreatedAt is immutable once known.
	if merged.CreatedAt.IsZero() {
		merged.CreatedAt = patch.CreatedAt
	}
	if !patch.UpdatedAt.IsZero() {
		merged.UpdatedAt = patch.UpdatedAt
	}
	return merged
}

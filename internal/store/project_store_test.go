package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-board/internal/domain"
)

func projectFixture(id string) domain.Project {
	return domain.Project{
		ID:    id,
		Name:  "project-" + id,
		Owner: domain.UserRef{ID: "owner-1"},
	}
}

func TestProjectStoreLoadAndInsert(t *testing.T) {
	s := NewProjectStore()
	s.Load([]domain.Project{projectFixture("a")})
	s.Insert(projectFixture("b"))

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ID)
	assert.Equal(t, "a", all[1].ID)
}

func TestProjectStoreReplace(t *testing.T) {
	s := NewProjectStore()
	s.Load([]domain.Project{projectFixture("a")})

	updated := projectFixture("a")
	updated.Members = []domain.UserRef{{ID: "dev-1"}}
	s.Replace(updated)

	got, ok := s.Get("a")
	require.True(t, ok)
	require.Len(t, got.Members, 1)
	assert.Equal(t, "dev-1", got.Members[0].ID)

	// Unknown ids are dropped silently.
	s.Replace(projectFixture("ghost"))
	assert.Len(t, s.All(), 1)
}

func TestProjectStoreRemoveAndClear(t *testing.T) {
	s := NewProjectStore()
	s.Load([]domain.Project{projectFixture("a"), projectFixture("b")})

	s.Remove("a")
	s.Remove("a")
	assert.Len(t, s.All(), 1)

	s.Clear()
	assert.Empty(t, s.All())
}

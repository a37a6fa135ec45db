package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-board/internal/domain"
)

func TestAllowedStatuses(t *testing.T) {
	p := New(Options{})

	tests := []struct {
		role domain.Role
		want []domain.IssueStatus
	}{
		{domain.RoleAdmin, []domain.IssueStatus{domain.IssueStatusOpen, domain.IssueStatusInProgress, domain.IssueStatusResolved, domain.IssueStatusClosed}},
		{domain.RoleManager, []domain.IssueStatus{domain.IssueStatusOpen, domain.IssueStatusInProgress, domain.IssueStatusResolved, domain.IssueStatusClosed}},
		{domain.RoleDeveloper, []domain.IssueStatus{domain.IssueStatusInProgress, domain.IssueStatusResolved}},
		{domain.RoleTester, []domain.IssueStatus{domain.IssueStatusClosed}},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.want, p.AllowedStatuses(tt.role))
		})
	}
}

func TestAllowedStatusesUnknownRole(t *testing.T) {
	p := New(Options{})
	assert.Empty(t, p.AllowedStatuses(domain.Role("intern")))
	assert.Empty(t, p.AllowedStatuses(domain.Role("")))
}

func TestCanAssign(t *testing.T) {
	p := New(Options{})

	assert.True(t, p.CanAssign(domain.RoleAdmin))
	assert.True(t, p.CanAssign(domain.RoleManager))
	assert.False(t, p.CanAssign(domain.RoleDeveloper))
	assert.False(t, p.CanAssign(domain.RoleTester))
	assert.False(t, p.CanAssign(domain.Role("intern")))
}

func TestCanDelete(t *testing.T) {
	p := New(Options{})
	owned := domain.Issue{ID: "i1", Project: domain.ProjectRef{ID: "p1", OwnerID: "u1"}}
	owner := domain.User{ID: "u1", Role: domain.RoleDeveloper}
	stranger := domain.User{ID: "u2", Role: domain.RoleDeveloper}

	assert.True(t, p.CanDelete(domain.RoleAdmin, owned, stranger))
	assert.True(t, p.CanDelete(domain.RoleManager, owned, stranger))
	assert.True(t, p.CanDelete(domain.RoleDeveloper, owned, owner))
	assert.False(t, p.CanDelete(domain.RoleDeveloper, owned, stranger))
	assert.False(t, p.CanDelete(domain.RoleTester, owned, stranger))
}

func TestCanDeleteBareProjectRef(t *testing.T) {
	p := New(Options{})
	// A bare reference carries no owner, so ownership can never match.
	bare := domain.Issue{ID: "i1", Project: domain.ProjectRef{ID: "p1"}}
	actor := domain.User{ID: "u1", Role: domain.RoleTester}

	assert.False(t, p.CanDelete(domain.RoleTester, bare, actor))
}

func TestCanChangeStatusAssigned(t *testing.T) {
	p := New(Options{})
	assigned := domain.Issue{ID: "i1", AssignedTo: &domain.UserRef{ID: "dev-1"}}

	assert.True(t, p.CanChangeStatus(domain.User{ID: "u1", Role: domain.RoleAdmin}, assigned))
	assert.True(t, p.CanChangeStatus(domain.User{ID: "dev-1", Role: domain.RoleDeveloper}, assigned))
	assert.True(t, p.CanChangeStatus(domain.User{ID: "u3", Role: domain.RoleTester}, assigned))
	assert.False(t, p.CanChangeStatus(domain.User{ID: "u4", Role: domain.Role("intern")}, assigned))
}

func TestCanChangeStatusUnassigned(t *testing.T) {
	p := New(Options{})
	unassigned := domain.Issue{ID: "i1", CreatedBy: domain.UserRef{ID: "qa-1"}}

	assert.False(t, p.CanChangeStatus(domain.User{ID: "u1", Role: domain.RoleAdmin}, unassigned))
	assert.False(t, p.CanChangeStatus(domain.User{ID: "qa-1", Role: domain.RoleTester}, unassigned))
}

func TestCanChangeStatusTesterException(t *testing.T) {
	p := New(Options{TesterClosesOwnUnassigned: true})
	unassigned := domain.Issue{ID: "i1", CreatedBy: domain.UserRef{ID: "qa-1"}}

	assert.True(t, p.CanChangeStatus(domain.User{ID: "qa-1", Role: domain.RoleTester}, unassigned))
	// The exception never extends to other testers or other roles.
	assert.False(t, p.CanChangeStatus(domain.User{ID: "qa-2", Role: domain.RoleTester}, unassigned))
	assert.False(t, p.CanChangeStatus(domain.User{ID: "qa-1", Role: domain.RoleAdmin}, unassigned))
}

func TestAllows(t *testing.T) {
	p := New(Options{})

	require.True(t, p.Allows(domain.RoleDeveloper, domain.IssueStatusInProgress))
	require.True(t, p.Allows(domain.RoleDeveloper, domain.IssueStatusResolved))
	assert.False(t, p.Allows(domain.RoleDeveloper, domain.IssueStatusClosed))
	assert.False(t, p.Allows(domain.RoleTester, domain.IssueStatusOpen))
	assert.True(t, p.Allows(domain.RoleTester, domain.IssueStatusClosed))
	assert.True(t, p.Allows(domain.RoleManager, domain.IssueStatusOpen))
}

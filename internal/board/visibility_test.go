package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-board/internal/domain"
)

func visIssue(id, projectID string, severity domain.IssueSeverity, assignee string) domain.Issue {
	issue := domain.Issue{
		ID:       id,
		Severity: severity,
		Status:   domain.IssueStatusOpen,
		Project:  domain.ProjectRef{ID: projectID},
	}
	if assignee != "" {
		issue.AssignedTo = &domain.UserRef{ID: assignee}
	}
	return issue
}

func TestVisibleDeveloperScope(t *testing.T) {
	issues := []domain.Issue{
		visIssue("mine", "p1", domain.SeverityHigh, "dev-1"),
		visIssue("other", "p1", domain.SeverityHigh, "dev-2"),
		visIssue("unassigned", "p1", domain.SeverityHigh, ""),
	}
	dev := domain.User{ID: "dev-1", Role: domain.RoleDeveloper}

	visible := Visible(issues, dev, Filter{})

	require.Len(t, visible, 1)
	assert.Equal(t, "mine", visible[0].ID)
}

func TestVisibleNonDeveloperSeesAll(t *testing.T) {
	issues := []domain.Issue{
		visIssue("a", "p1", domain.SeverityHigh, "dev-1"),
		visIssue("b", "p2", domain.SeverityLow, ""),
	}

	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleTester} {
		visible := Visible(issues, domain.User{ID: "u1", Role: role}, Filter{})
		assert.Len(t, visible, 2, "role %s", role)
	}
}

func TestVisibleConjunctiveFilters(t *testing.T) {
	issues := []domain.Issue{
		visIssue("a", "p1", domain.SeverityHigh, ""),
		visIssue("b", "p1", domain.SeverityLow, ""),
		visIssue("c", "p2", domain.SeverityHigh, ""),
	}
	admin := domain.User{ID: "u1", Role: domain.RoleAdmin}

	visible := Visible(issues, admin, Filter{Project: "p1", Severity: domain.SeverityHigh})

	require.Len(t, visible, 1)
	assert.Equal(t, "a", visible[0].ID)
}

func TestVisiblePreservesOrder(t *testing.T) {
	issues := []domain.Issue{
		visIssue("first", "p1", domain.SeverityHigh, ""),
		visIssue("skip", "p2", domain.SeverityHigh, ""),
		visIssue("second", "p1", domain.SeverityHigh, ""),
	}
	admin := domain.User{ID: "u1", Role: domain.RoleAdmin}

	visible := Visible(issues, admin, Filter{Project: "p1"})

	require.Len(t, visible, 2)
	assert.Equal(t, "first", visible[0].ID)
	assert.Equal(t, "second", visible[1].ID)
}

func TestVisibleEmptyInput(t *testing.T) {
	admin := domain.User{ID: "u1", Role: domain.RoleAdmin}
	assert.Empty(t, Visible(nil, admin, Filter{}))
}

package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-board/internal/domain"
)

func partIssue(id string, status domain.IssueStatus, assignee string) domain.Issue {
	issue := domain.Issue{ID: id, Status: status}
	if assignee != "" {
		issue.AssignedTo = &domain.UserRef{ID: assignee}
	}
	return issue
}

func TestPartitionColumnsInFixedOrder(t *testing.T) {
	b := Partition(nil, Options{})

	require.Len(t, b.Columns, 5)
	keys := make([]ColumnKey, 0, len(b.Columns))
	for _, col := range b.Columns {
		keys = append(keys, col.Key)
		assert.NotNil(t, col.Issues)
		assert.Empty(t, col.Issues)
	}
	assert.Equal(t, ColumnKeys(), keys)
	assert.Empty(t, b.Violations)
}

func TestPartitionEveryIssueLandsExactlyOnce(t *testing.T) {
	issues := []domain.Issue{
		partIssue("a", domain.IssueStatusOpen, "dev-1"),
		partIssue("b", domain.IssueStatusInProgress, "dev-1"),
		partIssue("c", domain.IssueStatusResolved, "dev-2"),
		partIssue("d", domain.IssueStatusClosed, "dev-2"),
		partIssue("e", domain.IssueStatusOpen, ""),
		partIssue("f", domain.IssueStatus("archived"), "dev-1"),
	}

	b := Partition(issues, Options{})

	seen := map[string]int{}
	total := 0
	for _, col := range b.Columns {
		for _, issue := range col.Issues {
			seen[issue.ID]++
			total++
		}
	}
	assert.Equal(t, len(issues), total)
	for _, issue := range issues {
		assert.Equal(t, 1, seen[issue.ID], "issue %s", issue.ID)
	}
}

func TestPartitionUnassignedWinsOverStatus(t *testing.T) {
	issues := []domain.Issue{
		partIssue("a", domain.IssueStatusResolved, ""),
		partIssue("b", domain.IssueStatusResolved, "dev-1"),
	}

	b := Partition(issues, Options{})

	unassigned := b.Column(ColumnUnassigned)
	require.Len(t, unassigned, 1)
	assert.Equal(t, "a", unassigned[0].ID)

	resolved := b.Column(ColumnResolved)
	require.Len(t, resolved, 1)
	assert.Equal(t, "b", resolved[0].ID)
}

func TestPartitionUnknownStatusReported(t *testing.T) {
	issues := []domain.Issue{
		partIssue("a", domain.IssueStatus("archived"), "dev-1"),
		partIssue("b", domain.IssueStatusOpen, "dev-1"),
	}

	b := Partition(issues, Options{})

	unknown := b.Column(ColumnUnknown)
	require.Len(t, unknown, 1)
	assert.Equal(t, "a", unknown[0].ID)

	require.Len(t, b.Violations, 1)
	assert.Equal(t, "a", b.Violations[0].IssueID)
	assert.Equal(t, domain.IssueStatus("archived"), b.Violations[0].Status)

	// The trailing column only appears when occupied.
	clean := Partition([]domain.Issue{partIssue("b", domain.IssueStatusOpen, "dev-1")}, Options{})
	assert.Nil(t, clean.Column(ColumnUnknown))
}

func TestPartitionOmitUnassigned(t *testing.T) {
	issues := []domain.Issue{
		partIssue("a", domain.IssueStatusInProgress, "dev-1"),
	}

	b := Partition(issues, Options{OmitUnassigned: true})

	require.Len(t, b.Columns, 4)
	for _, col := range b.Columns {
		assert.NotEqual(t, ColumnUnassigned, col.Key)
	}
	assert.Len(t, b.Column(ColumnInProgress), 1)
}

func TestPartitionPreservesInputOrderWithinColumn(t *testing.T) {
	issues := []domain.Issue{
		partIssue("first", domain.IssueStatusOpen, "dev-1"),
		partIssue("second", domain.IssueStatusOpen, "dev-2"),
	}

	b := Partition(issues, Options{})

	open := b.Column(ColumnOpen)
	require.Len(t, open, 2)
	assert.Equal(t, "first", open[0].ID)
	assert.Equal(t, "second", open[1].ID)
}

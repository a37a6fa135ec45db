package board

import "github.com/spec-kit/issue-board/internal/domain"

// ColumnKey identifies a board column.
type ColumnKey string

const (
	ColumnUnassigned ColumnKey = "unassigned"
	ColumnOpen       ColumnKey = "open"
	ColumnInProgress ColumnKey = "in-progress"
	ColumnResolved   ColumnKey = "resolved"
	ColumnClosed     ColumnKey = "closed"

	// ColumnUnknown is appended only when partitioning hits issues whose
	// status is outside the four lifecycle states. Malformed data stays
	// visible instead of vanishing from the board.
	ColumnUnknown ColumnKey = "unknown"
)

// ColumnKeys returns the fixed column order. The unassigned column is
// virtual: membership comes from the absence of an assignee, not from status.
func ColumnKeys() []ColumnKey {
	return []ColumnKey{ColumnUnassigned, ColumnOpen, ColumnInProgress, ColumnResolved, ColumnClosed}
}

// Column is one ordered bucket of the board.
type Column struct {
	Key    ColumnKey      `json:"key"`
	Issues []domain.Issue `json:"issues"`
}

// Violation records an issue whose status is not a known lifecycle state.
// It is a read-side data-integrity fault of the upstream system, reported
// distinctly from mutation failures.
type Violation struct {
	IssueID string             `json:"issueId"`
	Status  domain.IssueStatus `json:"status"`
}

// Options tune partitioning per caller.
type Options struct {
	// OmitUnassigned drops the virtual column entirely. Developer boards
	// never show an aggregate unassigned view; their visible issues are by
	// definition assigned, so nothing is lost.
	OmitUnassigned bool
}

// Board is the partitioned view: every input issue lands in exactly one
// column, and the union of all columns equals the input.
type Board struct {
	Columns    []Column    `json:"columns"`
	Violations []Violation `json:"violations,omitempty"`
}

// Column returns the issues of the given column.
func (b Board) Column(key ColumnKey) []domain.Issue {
	for _, col := range b.Columns {
		if col.Key == key {
			return col.Issues
		}
	}
	return nil
}

// Partition assigns each issue to exactly one column, first match wins: no
// assignee puts it in unassigned regardless of status, otherwise the column
// equals the status. Unknown statuses land in a trailing unknown column and
// are reported as violations; nothing is ever silently dropped.
func Partition(issues []domain.Issue, opts Options) Board {
	buckets := make(map[ColumnKey][]domain.Issue, len(ColumnKeys())+1)
	var violations []Violation

	for _, issue := range issues {
		switch {
		case !issue.Assigned():
			buckets[ColumnUnassigned] = append(buckets[ColumnUnassigned], issue)
		case issue.Status.Known():
			buckets[ColumnKey(issue.Status)] = append(buckets[ColumnKey(issue.Status)], issue)
		default:
			buckets[ColumnUnknown] = append(buckets[ColumnUnknown], issue)
			violations = append(violations, Violation{IssueID: issue.ID, Status: issue.Status})
		}
	}

	var columns []Column
	for _, key := range ColumnKeys() {
		if key == ColumnUnassigned && opts.OmitUnassigned {
			continue
		}
		columns = append(columns, Column{Key: key, Issues: emptyNotNil(buckets[key])})
	}
	if len(buckets[ColumnUnknown]) > 0 {
		columns = append(columns, Column{Key: ColumnUnknown, Issues: buckets[ColumnUnknown]})
	}

	return Board{Columns: columns, Violations: violations}
}

func emptyNotNil(issues []domain.Issue) []domain.Issue {
	if issues == nil {
		return []domain.Issue{}
	}
	return issues
}

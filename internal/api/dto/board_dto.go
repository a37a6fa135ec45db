package dto

import (
	"github.com/spec-kit/issue-board/internal/board"
	"github.com/spec-kit/issue-board/internal/domain"
)

// BoardResponse carries the partitioned columns plus any issues that
// landed in the unknown bucket.
type BoardResponse struct {
	Columns    []board.Column    `json:"columns"`
	Violations []board.Violation `json:"violations"`
}

// NewBoardResponse maps a partitioned board.
func NewBoardResponse(b board.Board) BoardResponse {
	violations := b.Violations
	if violations == nil {
		violations = []board.Violation{}
	}
	return BoardResponse{Columns: b.Columns, Violations: violations}
}

// SummaryResponse aggregates the visible issue set for the dashboard.
type SummaryResponse struct {
	Total      int                          `json:"total"`
	Unassigned int                          `json:"unassigned"`
	ByStatus   map[domain.IssueStatus]int   `json:"byStatus"`
	BySeverity map[domain.IssueSeverity]int `json:"bySeverity"`
}

// NewSummaryResponse tallies issues by status and severity.
func NewSummaryResponse(issues []domain.Issue) SummaryResponse {
	summary := SummaryResponse{
		Total:      len(issues),
		ByStatus:   make(map[domain.IssueStatus]int),
		BySeverity: make(map[domain.IssueSeverity]int),
	}
	for _, issue := range issues {
		summary.ByStatus[issue.Status]++
		summary.BySeverity[issue.Severity]++
		if !issue.Assigned() {
			summary.Unassigned++
		}
	}
	return summary
}

package dto

import (
	"strings"

	"github.com/spec-kit/issue-board/internal/domain"
)

// CreateIssueRequest payload. Project accepts either a bare project id
// string or an embedded project object. New issues always start unassigned;
// assignment is its own operation.
type CreateIssueRequest struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Severity    domain.IssueSeverity `json:"severity"`
	Project     domain.ProjectRef    `json:"project"`
}

// Draft normalizes the request into a domain draft. Severity defaults
// to medium when the client leaves it blank.
func (r CreateIssueRequest) Draft() domain.IssueDraft {
	severity := r.Severity
	if severity == "" {
		severity = domain.SeverityMedium
	}
	return domain.IssueDraft{
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		Severity:    severity,
		Project:     r.Project,
	}
}

// AssignIssueRequest payload. An empty developer id unassigns.
type AssignIssueRequest struct {
	DeveloperID string `json:"developerId"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.IssueStatus `json:"status"`
}

// IssueListResponse wraps a visible slice of issues.
type IssueListResponse struct {
	Issues []domain.Issue `json:"issues"`
	Total  int            `json:"total"`
}

// DeleteIssueResponse echoes the removed identifier.
type DeleteIssueResponse struct {
	ID string `json:"id"`
}

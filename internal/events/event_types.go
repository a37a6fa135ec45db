package events

import (
	"time"

	"github.com/spec-kit/issue-board/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventIssueCreated       EventType = "issue_created"
	EventIssueAssigned      EventType = "issue_assigned"
	EventIssueStatusChanged EventType = "issue_status_changed"
	EventIssueDeleted       EventType = "issue_deleted"
	EventProjectCreated     EventType = "project_created"
	EventProjectDeleted     EventType = "project_deleted"
)

// Actor encapsulates the user behind an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// IssueCreatedPayload payload.
type IssueCreatedPayload struct {
	ProjectID string               `json:"project_id"`
	Severity  domain.IssueSeverity `json:"severity"`
	Title     string               `json:"title"`
}

// IssueAssignedPayload payload. A nil assignee means the issue was
// unassigned.
type IssueAssignedPayload struct {
	AssigneeID *string `json:"assignee_id,omitempty"`
}

// IssueStatusChangedPayload payload.
type IssueStatusChangedPayload struct {
	OldStatus domain.IssueStatus `json:"old_status"`
	NewStatus domain.IssueStatus `json:"new_status"`
}

// IssueDeletedPayload payload.
type IssueDeletedPayload struct {
	ProjectID string `json:"project_id"`
}

// ProjectCreatedPayload payload.
type ProjectCreatedPayload struct {
	Name    string `json:"name"`
	OwnerID string `json:"owner_id"`
}

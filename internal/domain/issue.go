package domain

import "time"

// IssueStatus enumerates lifecycle states for issues.
type IssueStatus string

const (
	IssueStatusOpen       IssueStatus = "open"
	IssueStatusInProgress IssueStatus = "in-progress"
	IssueStatusResolved   IssueStatus = "resolved"
	IssueStatusClosed     IssueStatus = "closed"
)

// IssueStatuses returns the lifecycle states in board order.
func IssueStatuses() []IssueStatus {
	return []IssueStatus{IssueStatusOpen, IssueStatusInProgress, IssueStatusResolved, IssueStatusClosed}
}

// Known reports whether the status is one of the four lifecycle states.
func (s IssueStatus) Known() bool {
	switch s {
	case IssueStatusOpen, IssueStatusInProgress, IssueStatusResolved, IssueStatusClosed:
		return true
	}
	return false
}

// IssueSeverity enumerates urgency, independent of status.
type IssueSeverity string

const (
	SeverityLow      IssueSeverity = "low"
	SeverityMedium   IssueSeverity = "medium"
	SeverityHigh     IssueSeverity = "high"
	SeverityCritical IssueSeverity = "critical"
)

// IssueSeverities returns severities ordered by urgency.
func IssueSeverities() []IssueSeverity {
	return []IssueSeverity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

// Known reports whether the severity is a recognized value.
func (s IssueSeverity) Known() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Issue is the aggregate for trackable units of work.
type Issue struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Severity    IssueSeverity `json:"severity"`
	Status      IssueStatus   `json:"status"`
	Project     ProjectRef    `json:"project"`
	AssignedTo  *UserRef      `json:"assignedTo"`
	CreatedBy   UserRef       `json:"createdBy"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// Assigned reports whether the issue has an assignee.
func (i Issue) Assigned() bool {
	return i.AssignedTo != nil && i.AssignedTo.ID != ""
}

// IssueDraft describes a new issue prior to creation.
type IssueDraft struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Severity    IssueSeverity `json:"severity"`
	Project     ProjectRef    `json:"project"`
	CreatedBy   string        `json:"-"`
}

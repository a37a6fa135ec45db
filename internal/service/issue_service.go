package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/issue-board/internal/domain"
	"github.com/spec-kit/issue-board/internal/events"
	"github.com/spec-kit/issue-board/internal/repository"
	"github.com/spec-kit/issue-board/internal/session"
	apperrors "github.com/spec-kit/issue-board/pkg/util/errorutil"
)

// Fallback messages surfaced when the collaborator rejects a call without a
// message of its own.
const (
	msgFetchIssuesFailed  = "Failed to fetch issues"
	msgCreateIssueFailed  = "Failed to create issue"
	msgAssignIssueFailed  = "Failed to assign issue"
	msgUpdateStatusFailed = "Failed to update status"
	msgDeleteIssueFailed  = "Failed to delete issue"
)

// IssueService coordinates issue mutations: every call goes out to the
// collaborator first and only a completed result is folded into the session's
// store, so a failure leaves the working set in its last known good state and
// the same mutation can simply be retried. Role authorization is the
// caller's concern; the collaborator remains the final authority and its
// rejections propagate as failures.
type IssueService struct {
	issues     repository.IssueRepository
	dispatcher events.Dispatcher
}

// IssueDependencies bundles collaborators for the issue service.
type IssueDependencies struct {
	IssueRepo  repository.IssueRepository
	Dispatcher events.Dispatcher
}

// NewIssueService constructs the service.
func NewIssueService(deps IssueDependencies) *IssueService {
	return &IssueService{
		issues:     deps.IssueRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Refresh fetches the issue set and replaces the session's working set.
func (s *IssueService) Refresh(ctx context.Context, sess *session.Session, filter repository.IssueFilter) ([]domain.Issue, error) {
	issues, err := s.issues.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewRemoteError(msgFetchIssuesFailed, err)
	}
	sess.Issues.Load(issues)
	return issues, nil
}

// Get returns the issue from the session's working set, falling back to the
// collaborator for ids the set does not hold.
func (s *IssueService) Get(ctx context.Context, sess *session.Session, id string) (*domain.Issue, error) {
	if issue, ok := sess.Issues.Get(id); ok {
		return &issue, nil
	}
	issue, err := s.issues.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewRemoteError(msgFetchIssuesFailed, err)
	}
	return issue, nil
}

// Create reports a new issue. A draft without a project fails locally before
// any collaborator call. On success the canonical record is prepended to the
// working set, newest-first.
func (s *IssueService) Create(ctx context.Context, sess *session.Session, draft domain.IssueDraft) (*domain.Issue, error) {
	if draft.Project.IsZero() {
		return nil, apperrors.NewValidationError("missing project", nil)
	}
	draft.CreatedBy = sess.User.ID

	issue, err := s.issues.Create(ctx, draft)
	if err != nil {
		return nil, apperrors.NewRemoteError(msgCreateIssueFailed, err)
	}

	sess.Issues.Insert(*issue)
	s.publish(ctx, events.Event{
		Type:      events.EventIssueCreated,
		SubjectID: issue.ID,
		Actor:     actor(sess.User),
		Payload: events.IssueCreatedPayload{
			ProjectID: issue.Project.ID,
			Severity:  issue.Severity,
			Title:     issue.Title,
		},
	})
	return issue, nil
}

// Assign sets or clears the issue's assignee; an empty developer id
// unassigns. The returned canonical record is merged into the working set.
func (s *IssueService) Assign(ctx context.Context, sess *session.Session, issueID, developerID string) (*domain.Issue, error) {
	issue, err := s.issues.Assign(ctx, issueID, developerID)
	if err != nil {
		return nil, apperrors.NewRemoteError(msgAssignIssueFailed, err)
	}

	sess.Issues.Merge(*issue)
	payload := events.IssueAssignedPayload{}
	if developerID != "" {
		payload.AssigneeID = &developerID
	}
	s.publish(ctx, events.Event{
		Type:      events.EventIssueAssigned,
		SubjectID: issue.ID,
		Actor:     actor(sess.User),
		Payload:   payload,
	})
	return issue, nil
}

// ChangeStatus moves the issue to a new lifecycle state. Callers are expected
// to have consulted the role policy already; no re-check happens here.
func (s *IssueService) ChangeStatus(ctx context.Context, sess *session.Session, issueID string, status domain.IssueStatus) (*domain.Issue, error) {
	oldStatus := domain.IssueStatus("")
	if prior, ok := sess.Issues.Get(issueID); ok {
		oldStatus = prior.Status
	}

	issue, err := s.issues.UpdateStatus(ctx, issueID, status)
	if err != nil {
		return nil, apperrors.NewRemoteError(msgUpdateStatusFailed, err)
	}

	sess.Issues.Merge(*issue)
	s.publish(ctx, events.Event{
		Type:      events.EventIssueStatusChanged,
		SubjectID: issue.ID,
		Actor:     actor(sess.User),
		Payload: events.IssueStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: issue.Status,
		},
	})
	return issue, nil
}

// Delete removes the issue and returns its id so callers can reconcile any
// other state keyed on it. Removing an id the working set no longer holds is
// a no-op on the store side.
func (s *IssueService) Delete(ctx context.Context, sess *session.Session, issueID string) (string, error) {
	projectID := ""
	if prior, ok := sess.Issues.Get(issueID); ok {
		projectID = prior.Project.ID
	}

	if err := s.issues.Delete(ctx, issueID); err != nil {
		return "", apperrors.NewRemoteError(msgDeleteIssueFailed, err)
	}

	sess.Issues.Remove(issueID)
	s.publish(ctx, events.Event{
		Type:      events.EventIssueDeleted,
		SubjectID: issueID,
		Actor:     actor(sess.User),
		Payload:   events.IssueDeletedPayload{ProjectID: projectID},
	})
	return issueID, nil
}

func (s *IssueService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actor(user domain.User) events.Actor {
	return events.Actor{UserID: user.ID, Role: user.Role}
}

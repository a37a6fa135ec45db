package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-board/internal/domain"
	"github.com/spec-kit/issue-board/internal/events"
	"github.com/spec-kit/issue-board/internal/repository"
	"github.com/spec-kit/issue-board/internal/session"
	apperrors "github.com/spec-kit/issue-board/pkg/util/errorutil"
)

// fakeIssueRepo implements repository.IssueRepository in memory and records
// which calls reached it.
type fakeIssueRepo struct {
	issues     map[string]domain.Issue
	listResult []domain.Issue
	failWith   error
	calls      []string
}

func newFakeIssueRepo() *fakeIssueRepo {
	return &fakeIssueRepo{issues: make(map[string]domain.Issue)}
}

func (f *fakeIssueRepo) List(_ context.Context, _ repository.IssueFilter) ([]domain.Issue, error) {
	f.calls = append(f.calls, "list")
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.listResult, nil
}

func (f *fakeIssueRepo) GetByID(_ context.Context, id string) (*domain.Issue, error) {
	f.calls = append(f.calls, "get")
	if f.failWith != nil {
		return nil, f.failWith
	}
	issue, ok := f.issues[id]
	if !ok {
		return nil, apperrors.NewNotFound("issue", nil)
	}
	return &issue, nil
}

func (f *fakeIssueRepo) Create(_ context.Context, draft domain.IssueDraft) (*domain.Issue, error) {
	f.calls = append(f.calls, "create")
	if f.failWith != nil {
		return nil, f.failWith
	}
	issue := domain.Issue{
		ID:          "created-1",
		Title:       draft.Title,
		Description: draft.Description,
		Severity:    draft.Severity,
		Status:      domain.IssueStatusOpen,
		Project:     draft.Project,
		CreatedBy:   domain.UserRef{ID: draft.CreatedBy},
		CreatedAt:   time.Now(),
	}
	f.issues[issue.ID] = issue
	return &issue, nil
}

func (f *fakeIssueRepo) Assign(_ context.Context, id, developerID string) (*domain.Issue, error) {
	f.calls = append(f.calls, "assign")
	if f.failWith != nil {
		return nil, f.failWith
	}
	issue := f.issues[id]
	issue.ID = id
	if developerID == "" {
		issue.AssignedTo = nil
	} else {
		issue.AssignedTo = &domain.UserRef{ID: developerID}
	}
	f.issues[id] = issue
	return &issue, nil
}

func (f *fakeIssueRepo) UpdateStatus(_ context.Context, id string, status domain.IssueStatus) (*domain.Issue, error) {
	f.calls = append(f.calls, "status")
	if f.failWith != nil {
		return nil, f.failWith
	}
	issue := f.issues[id]
	issue.ID = id
	issue.Status = status
	f.issues[id] = issue
	return &issue, nil
}

func (f *fakeIssueRepo) Delete(_ context.Context, id string) error {
	f.calls = append(f.calls, "delete")
	if f.failWith != nil {
		return f.failWith
	}
	delete(f.issues, id)
	return nil
}

func newTestSession(role domain.Role) *session.Session {
	return session.NewManager().Create(domain.User{ID: "u1", Name: "Actor", Role: role})
}

func TestRefreshReplacesWorkingSet(t *testing.T) {
	repo := newFakeIssueRepo()
	repo.listResult = []domain.Issue{{ID: "a"}, {ID: "b"}}
	svc := NewIssueService(IssueDependencies{IssueRepo: repo})
	sess := newTestSession(domain.RoleAdmin)
	sess.Issues.Insert(domain.Issue{ID: "stale"})

	issues, err := svc.Refresh(context.Background(), sess, repository.IssueFilter{})

	require.NoError(t, err)
	assert.Len(t, issues, 2)
	assert.Equal(t, 2, sess.Issues.Len())
	_, ok := sess.Issues.Get("stale")
	assert.False(t, ok)
}

func TestRefreshFailureKeepsWorkingSet(t *testing.T) {
	repo := newFakeIssueRepo()
	repo.failWith = errors.New("connection refused")
	svc := NewIssueService(IssueDependencies{IssueRepo: repo})
	sess := newTestSession(domain.RoleAdmin)
	sess.Issues.Insert(domain.Issue{ID: "keep"})

	_, err := svc.Refresh(context.Background(), sess, repository.IssueFilter{})

	require.Error(t, err)
	assert.Equal(t, "Failed to fetch issues", apperrors.ToDomainError(err).Message)
	assert.Equal(t, 1, sess.Issues.Len())
}

func TestCreateMissingProjectFailsLocally(t *testing.T) {
	repo := newFakeIssueRepo()
	svc := NewIssueService(IssueDependencies{IssueRepo: repo})
	sess := newTestSession(domain.RoleTester)

	_, err := svc.Create(context.Background(), sess, domain.IssueDraft{Title: "no project"})

	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Equal(t, "missing project", domainErr.Message)
	// The collaborator is never consulted and the working set stays empty.
	assert.Empty(t, repo.calls)
	assert.Equal(t, 0, sess.Issues.Len())
}

func TestCreatePrependsCanonicalRecord(t *testing.T) {
	repo := newFakeIssueRepo()
	svc := NewIssueService(IssueDependencies{IssueRepo: repo})
	sess := newTestSession(domain.RoleTester)
	sess.Issues.Insert(domain.Issue{ID: "existing"})

	issue, err := svc.Create(context.Background(), sess, domain.IssueDraft{
		Title:    "login broken",
		Severity: domain.SeverityHigh,
		Project:  domain.ProjectRef{ID: "p1"},
	})

	require.NoError(t, err)
	assert.Equal(t, "created-1", issue.ID)
	assert.True(t, issue.CreatedBy.Is("u1"))

	all := sess.Issues.All()
	require.Len(t, all, 2)
	assert.Equal(t, "created-1", all[0].ID)
}

func TestCreateFallbackMessage(t *testing.T) {
	repo := newFakeIssueRepo()
	repo.failWith = errors.New("boom")
	svc := NewIssueService(IssueDependencies{IssueRepo: repo})
	sess := newTestSession(domain.RoleTester)

	_, err := svc.Create(context.Background(), sess, domain.IssueDraft{
		Title:   "x",
		Project: domain.ProjectRef{ID: "p1"},
	})

	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "REMOTE_FAILED", domainErr.Code)
	assert.Equal(t, "Failed to create issue", domainErr.Message)
	assert.Equal(t, 0, sess.Issues.Len())
}

func TestCreateKeepsCollaboratorMessage(t *testing.T) {
	repo := newFakeIssueRepo()
	repo.failWith = apperrors.NewConflict("duplicate issue title", nil)
	svc := NewIssueService(IssueDependencies{IssueRepo: repo})
	sess := newTestSession(domain.RoleTester)

	_, err := svc.Create(context.Background(), sess, domain.IssueDraft{
		Title:   "x",
		Project: domain.ProjectRef{ID: "p1"},
	})

	require.Error(t, err)
	assert.Equal(t, "duplicate issue title", apperrors.ToDomainError(err).Message)
}

func TestAssignMergesResult(t *testing.T) {
	repo := newFakeIssueRepo()
	repo.issues["i1"] = domain.Issue{ID: "i1", Title: "keep me", Status: domain.IssueStatusOpen}
	svc := NewIssueService(IssueDependencies{IssueRepo: repo})
	sess := newTestSession(domain.RoleManager)
	sess.Issues.Load([]domain.Issue{{ID: "i1", Title: "keep me", Status: domain.IssueStatusOpen}})

	issue, err := svc.Assign(context.Background(), sess, "i1", "dev-1")

	require.NoError(t, err)
	require.NotNil(t, issue.AssignedTo)

	stored, ok := sess.Issues.Get("i1")
	require.True(t, ok)
	require.NotNil(t, stored.AssignedTo)
	assert.Equal(t, "dev-1", stored.AssignedTo.ID)
	assert.Equal(t, "keep me", stored.Title)
}

func TestAssignEmptyIDUnassigns(t *testing.T) {
	repo := newFakeIssueRepo()
	repo.issues["i1"] = domain.Issue{ID: "i1", AssignedTo: &domain.UserRef{ID: "dev-1"}}
	svc := NewIssueService(IssueDependencies{IssueRepo: repo})
	sess := newTestSession(domain.RoleManager)
	sess.Issues.Load([]domain.Issue{{ID: "i1", AssignedTo: &domain.UserRef{ID: "dev-1"}}})

	issue, err := svc.Assign(context.Background(), sess, "i1", "")

	require.NoError(t, err)
	assert.Nil(t, issue.AssignedTo)

	stored, _ := sess.Issues.Get("i1")
	assert.Nil(t, stored.AssignedTo)
}

func TestAssignFailureLeavesStoreUntouched(t *testing.T) {
	repo := newFakeIssueRepo()
	repo.failWith = errors.New("boom")
	svc := NewIssueService(IssueDependencies{IssueRepo: repo})
	sess := newTestSession(domain.RoleManager)
	sess.Issues.Load([]domain.Issue{{ID: "i1", Status: domain.IssueStatusOpen}})

	_, err := svc.Assign(context.Background(), sess, "i1", "dev-1")

	require.Error(t, err)
	assert.Equal(t, "Failed to assign issue", apperrors.ToDomainError(err).Message)
	stored, _ := sess.Issues.Get("i1")
	assert.Nil(t, stored.AssignedTo)
}

func TestChangeStatusEmitsOldAndNew(t *testing.T) {
	repo := newFakeIssueRepo()
	repo.issues["i1"] = domain.Issue{ID: "i1", Status: domain.IssueStatusOpen}
	dispatcher := events.NewInMemoryDispatcher()

	var captured events.Event
	dispatcher.Subscribe(events.EventIssueStatusChanged, func(_ context.Context, e events.Event) error {
		captured = e
		return nil
	})

	svc := NewIssueService(IssueDependencies{IssueRepo: repo, Dispatcher: dispatcher})
	sess := newTestSession(domain.RoleDeveloper)
	sess.Issues.Load([]domain.Issue{{ID: "i1", Status: domain.IssueStatusOpen}})

	issue, err := svc.ChangeStatus(context.Background(), sess, "i1", domain.IssueStatusInProgress)

	require.NoError(t, err)
	assert.Equal(t, domain.IssueStatusInProgress, issue.Status)

	stored, _ := sess.Issues.Get("i1")
	assert.Equal(t, domain.IssueStatusInProgress, stored.Status)

	payload, ok := captured.Payload.(events.IssueStatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.IssueStatusOpen, payload.OldStatus)
	assert.Equal(t, domain.IssueStatusInProgress, payload.NewStatus)
}

func TestChangeStatusFallbackMessage(t *testing.T) {
	repo := newFakeIssueRepo()
	repo.failWith = errors.New("boom")
	svc := NewIssueService(IssueDependencies{IssueRepo: repo})
	sess := newTestSession(domain.RoleDeveloper)
	sess.Issues.Load([]domain.Issue{{ID: "i1", Status: domain.IssueStatusOpen}})

	_, err := svc.ChangeStatus(context.Background(), sess, "i1", domain.IssueStatusResolved)

	require.Error(t, err)
	assert.Equal(t, "Failed to update status", apperrors.ToDomainError(err).Message)
	stored, _ := sess.Issues.Get("i1")
	assert.Equal(t, domain.IssueStatusOpen, stored.Status)
}

func TestDeleteReturnsIDAndRemoves(t *testing.T) {
	repo := newFakeIssueRepo()
	repo.issues["i1"] = domain.Issue{ID: "i1"}
	svc := NewIssueService(IssueDependencies{IssueRepo: repo})
	sess := newTestSession(domain.RoleManager)
	sess.Issues.Load([]domain.Issue{{ID: "i1"}, {ID: "i2"}})

	id, err := svc.Delete(context.Background(), sess, "i1")

	require.NoError(t, err)
	assert.Equal(t, "i1", id)
	assert.Equal(t, 1, sess.Issues.Len())
}

func TestDeleteStaleIDStillSucceeds(t *testing.T) {
	// The collaborator accepted the delete; the working set no longer
	// holding the id must not turn that into a failure.
	repo := newFakeIssueRepo()
	svc := NewIssueService(IssueDependencies{IssueRepo: repo})
	sess := newTestSession(domain.RoleManager)

	id, err := svc.Delete(context.Background(), sess, "gone")

	require.NoError(t, err)
	assert.Equal(t, "gone", id)
}

func TestDeleteFallbackMessage(t *testing.T) {
	repo := newFakeIssueRepo()
	repo.failWith = errors.New("boom")
	svc := NewIssueService(IssueDependencies{IssueRepo: repo})
	sess := newTestSession(domain.RoleManager)
	sess.Issues.Load([]domain.Issue{{ID: "i1"}})

	_, err := svc.Delete(context.Background(), sess, "i1")

	require.Error(t, err)
	assert.Equal(t, "Failed to delete issue", apperrors.ToDomainError(err).Message)
	assert.Equal(t, 1, sess.Issues.Len())
}

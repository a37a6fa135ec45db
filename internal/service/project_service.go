package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/issue-board/internal/domain"
	"github.com/spec-kit/issue-board/internal/events"
	"github.com/spec-kit/issue-board/internal/repository"
	"github.com/spec-kit/issue-board/internal/session"
	apperrors "github.com/spec-kit/issue-board/pkg/util/errorutil"
)

const (
	msgFetchProjectsFailed = "Failed to fetch projects"
	msgCreateProjectFailed = "Failed to create project"
	msgAddMemberFailed     = "Failed to add member"
	msgDeleteProjectFailed = "Failed to delete project"
)

// ProjectService coordinates project mutations against the collaborator and
// the session's project store. It mirrors IssueService with simpler merge
// semantics: projects are replaced wholesale.
type ProjectService struct {
	projects   repository.ProjectRepository
	dispatcher events.Dispatcher
}

// NewProjectService constructs the service.
func NewProjectService(projects repository.ProjectRepository, dispatcher events.Dispatcher) *ProjectService {
	return &ProjectService{projects: projects, dispatcher: dispatcher}
}

// Refresh fetches all projects and replaces the session's store.
func (s *ProjectService) Refresh(ctx context.Context, sess *session.Session) ([]domain.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, apperrors.NewRemoteError(msgFetchProjectsFailed, err)
	}
	sess.Projects.Load(projects)
	return projects, nil
}

// Get returns the project from the session's store, falling back to the
// collaborator.
func (s *ProjectService) Get(ctx context.Context, sess *session.Session, id string) (*domain.Project, error) {
	if project, ok := sess.Projects.Get(id); ok {
		return &project, nil
	}
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewRemoteError(msgFetchProjectsFailed, err)
	}
	return project, nil
}

// Create opens a new project owned by the acting user.
func (s *ProjectService) Create(ctx context.Context, sess *session.Session, name, description string) (*domain.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("project name required", nil)
	}

	project := &domain.Project{
		Name:        name,
		Description: strings.TrimSpace(description),
		Owner:       sess.User.Ref(),
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, apperrors.NewRemoteError(msgCreateProjectFailed, err)
	}

	sess.Projects.Insert(*project)
	s.publish(ctx, events.Event{
		Type:      events.EventProjectCreated,
		SubjectID: project.ID,
		Actor:     actor(sess.User),
		Payload: events.ProjectCreatedPayload{
			Name:    project.Name,
			OwnerID: project.Owner.ID,
		},
	})
	return project, nil
}

// AddMember puts the user on the project roster; the roster is unique by
// user id, so re-adding is harmless.
func (s *ProjectService) AddMember(ctx context.Context, sess *session.Session, projectID, userID string) (*domain.Project, error) {
	project, err := s.projects.AddMember(ctx, projectID, userID)
	if err != nil {
		return nil, apperrors.NewRemoteError(msgAddMemberFailed, err)
	}
	sess.Projects.Replace(*project)
	return project, nil
}

// Delete removes the project. Permission is the caller's concern, matching
// the issue coordinator.
func (s *ProjectService) Delete(ctx context.Context, sess *session.Session, projectID string) (string, error) {
	if err := s.projects.Delete(ctx, projectID); err != nil {
		return "", apperrors.NewRemoteError(msgDeleteProjectFailed, err)
	}

	sess.Projects.Remove(projectID)
	s.publish(ctx, events.Event{
		Type:      events.EventProjectDeleted,
		SubjectID: projectID,
		Actor:     actor(sess.User),
	})
	return projectID, nil
}

func (s *ProjectService) publish(ctx context.Context, event events.Event) {
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

package dto

import (
	"time"

	"github.com/spec-kit/issue-board/internal/domain"
)

// CreateProjectRequest payload.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AddMemberRequest payload.
type AddMemberRequest struct {
	UserID string `json:"userId"`
}

// ProjectResponse is the wire shape of a project.
type ProjectResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Owner       domain.UserRef   `json:"owner"`
	Members     []domain.UserRef `json:"members"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// DeleteProjectResponse echoes the removed identifier.
type DeleteProjectResponse struct {
	ID string `json:"id"`
}

// NewProjectResponse maps a domain project.
func NewProjectResponse(project domain.Project) ProjectResponse {
	members := project.Members
	if members == nil {
		members = []domain.UserRef{}
	}
	return ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Owner:       project.Owner,
		Members:     members,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// NewProjectResponses maps a slice of projects.
func NewProjectResponses(projects []domain.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, NewProjectResponse(p))
	}
	return out
}

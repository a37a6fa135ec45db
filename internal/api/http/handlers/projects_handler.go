package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-board/internal/api/dto"
	"github.com/spec-kit/issue-board/internal/auth"
	"github.com/spec-kit/issue-board/internal/domain"
	"github.com/spec-kit/issue-board/internal/service"
	apperrors "github.com/spec-kit/issue-board/pkg/util/errorutil"
)

// ProjectsHandler manages project endpoints.
type ProjectsHandler struct {
	service *service.ProjectService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projectService *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{service: projectService}
}

// List GET /projects.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	projects, err := h.service.Refresh(c.UserContext(), principal.Session)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectResponses(projects)})
}

// Get GET /projects/:id.
func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	project, err := h.service.Get(c.UserContext(), principal.Session, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectResponse(*project)})
}

// Create POST /projects.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	project, err := h.service.Create(c.UserContext(), principal.Session, req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewProjectResponse(*project)})
}

// AddMember PATCH /projects/:id/members.
func (h *ProjectsHandler) AddMember(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == "" {
		return apperrors.NewValidationError("userId required", nil)
	}

	project, err := h.service.Get(c.UserContext(), principal.Session, c.Params("id"))
	if err != nil {
		return err
	}
	if !canManageProject(principal.Session.User, *project) {
		return apperrors.NewForbidden("role may not manage this project")
	}

	updated, err := h.service.AddMember(c.UserContext(), principal.Session, project.ID, req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectResponse(*updated)})
}

// Delete DELETE /projects/:id.
func (h *ProjectsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	project, err := h.service.Get(c.UserContext(), principal.Session, c.Params("id"))
	if err != nil {
		return err
	}
	if !canManageProject(principal.Session.User, *project) {
		return apperrors.NewForbidden("role may not delete this project")
	}

	id, err := h.service.Delete(c.UserContext(), principal.Session, project.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DeleteProjectResponse{ID: id}})
}

// canManageProject allows admins, managers and the owning user.
func canManageProject(user domain.User, project domain.Project) bool {
	if user.Role == domain.RoleAdmin || user.Role == domain.RoleManager {
		return true
	}
	return project.Owner.Is(user.ID)
}

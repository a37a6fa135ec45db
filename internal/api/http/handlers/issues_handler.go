package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-board/internal/api/dto"
	"github.com/spec-kit/issue-board/internal/auth"
	"github.com/spec-kit/issue-board/internal/board"
	"github.com/spec-kit/issue-board/internal/domain"
	"github.com/spec-kit/issue-board/internal/policy"
	"github.com/spec-kit/issue-board/internal/repository"
	"github.com/spec-kit/issue-board/internal/service"
	apperrors "github.com/spec-kit/issue-board/pkg/util/errorutil"
)

// IssuesHandler manages issue lifecycle endpoints. Authorization happens
// here, against the role policy, before the coordinator is ever invoked; a
// denied action therefore leaves the working set untouched.
type IssuesHandler struct {
	service *service.IssueService
	policy  policy.Policy
}

// NewIssuesHandler constructs handler.
func NewIssuesHandler(issueService *service.IssueService, rolePolicy policy.Policy) *IssuesHandler {
	return &IssuesHandler{service: issueService, policy: rolePolicy}
}

// List GET /issues.
func (h *IssuesHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	issues, err := h.service.Refresh(c.UserContext(), principal.Session, parseIssueQuery(c))
	if err != nil {
		return err
	}
	visible := board.Visible(issues, principal.Session.User, board.Filter{})
	return c.JSON(fiber.Map{"data": dto.IssueListResponse{Issues: visible, Total: len(visible)}})
}

// Get GET /issues/:id.
func (h *IssuesHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	issue, err := h.service.Get(c.UserContext(), principal.Session, c.Params("id"))
	if err != nil {
		return err
	}
	user := principal.Session.User
	if user.Role == domain.RoleDeveloper && (issue.AssignedTo == nil || !issue.AssignedTo.Is(user.ID)) {
		return apperrors.NewNotFound("issue", nil)
	}
	return c.JSON(fiber.Map{"data": issue})
}

// Create POST /issues.
func (h *IssuesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Title) == "" {
		return apperrors.NewValidationError("title required", nil)
	}
	issue, err := h.service.Create(c.UserContext(), principal.Session, req.Draft())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": issue})
}

// Assign PATCH /issues/:id/assign.
func (h *IssuesHandler) Assign(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	if !h.policy.CanAssign(principal.Session.User.Role) {
		return apperrors.NewForbidden("role may not assign issues")
	}
	var req dto.AssignIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	issue, err := h.service.Assign(c.UserContext(), principal.Session, c.Params("id"), req.DeveloperID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": issue})
}

// UpdateStatus PATCH /issues/:id/status.
func (h *IssuesHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if !req.Status.Known() {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": req.Status})
	}

	user := principal.Session.User
	issue, err := h.service.Get(c.UserContext(), principal.Session, c.Params("id"))
	if err != nil {
		return err
	}
	if !h.policy.CanChangeStatus(user, *issue) || !h.policy.Allows(user.Role, req.Status) {
		return apperrors.NewForbidden("role may not set this status")
	}

	updated, err := h.service.ChangeStatus(c.UserContext(), principal.Session, issue.ID, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": updated})
}

// Delete DELETE /issues/:id.
func (h *IssuesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	user := principal.Session.User
	issue, err := h.service.Get(c.UserContext(), principal.Session, c.Params("id"))
	if err != nil {
		return err
	}
	if !h.policy.CanDelete(user.Role, *issue, user) {
		return apperrors.NewForbidden("role may not delete this issue")
	}

	id, err := h.service.Delete(c.UserContext(), principal.Session, issue.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DeleteIssueResponse{ID: id}})
}

func parseIssueQuery(c *fiber.Ctx) repository.IssueFilter {
	filter := repository.IssueFilter{}
	if project := c.Query("project"); project != "" {
		filter.ProjectID = &project
	}
	if severityStr := c.Query("severity"); severityStr != "" {
		severity := domain.IssueSeverity(severityStr)
		filter.Severity = &severity
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.IssueStatus(statusStr)
		filter.Status = &status
	}
	if assignee := c.Query("assignee"); assignee != "" {
		filter.AssigneeID = &assignee
	}
	return filter
}

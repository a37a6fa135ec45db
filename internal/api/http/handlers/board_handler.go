package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-board/internal/api/dto"
	"github.com/spec-kit/issue-board/internal/auth"
	"github.com/spec-kit/issue-board/internal/board"
	"github.com/spec-kit/issue-board/internal/domain"
	"github.com/spec-kit/issue-board/internal/repository"
	"github.com/spec-kit/issue-board/internal/service"
	apperrors "github.com/spec-kit/issue-board/pkg/util/errorutil"
)

// BoardHandler serves the partitioned column view and the dashboard summary.
// Both derive from the session's working set: visibility filtering first,
// then partitioning, so a developer's board never contains an unassigned
// column and never leaks another developer's assignments.
type BoardHandler struct {
	service *service.IssueService
}

// NewBoardHandler constructs handler.
func NewBoardHandler(issueService *service.IssueService) *BoardHandler {
	return &BoardHandler{service: issueService}
}

// Board GET /board.
func (h *BoardHandler) Board(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	visible, err := h.visibleSet(c, principal)
	if err != nil {
		return err
	}

	user := principal.Session.User
	partitioned := board.Partition(visible, board.Options{
		OmitUnassigned: user.Role == domain.RoleDeveloper,
	})
	return c.JSON(fiber.Map{"data": dto.NewBoardResponse(partitioned)})
}

// Summary GET /dashboard/summary.
func (h *BoardHandler) Summary(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	visible, err := h.visibleSet(c, principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSummaryResponse(visible)})
}

// visibleSet reads the working set, refreshing it on first access, and
// applies the role scope plus any query filters.
func (h *BoardHandler) visibleSet(c *fiber.Ctx, principal *auth.Principal) ([]domain.Issue, error) {
	sess := principal.Session
	issues := sess.Issues.All()
	if len(issues) == 0 {
		refreshed, err := h.service.Refresh(c.UserContext(), sess, repository.IssueFilter{})
		if err != nil {
			return nil, err
		}
		issues = refreshed
	}

	filter := board.Filter{
		Project:  c.Query("project"),
		Severity: domain.IssueSeverity(c.Query("severity")),
	}
	return board.Visible(issues, sess.User, filter), nil
}

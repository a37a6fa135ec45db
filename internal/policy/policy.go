// Package policy maps workspace roles to the actions they may perform on
// issues. All checks are pure; malformed roles get the empty result, never an
// error.
package policy

import "github.com/spec-kit/issue-board/internal/domain"

// Options tune edge-case behavior.
type Options struct {
	// TesterClosesOwnUnassigned lets a tester close an unassigned issue they
	// reported themselves. Off by default: normally a status change requires
	// an assignee to exist.
	TesterClosesOwnUnassigned bool
}

// Policy answers capability questions for a role.
type Policy struct {
	opts Options
}

// New builds a policy with the given options.
func New(opts Options) Policy {
	return Policy{opts: opts}
}

// AllowedStatuses returns the statuses the role may move an issue into, in
// board order. Admins and managers get all four, developers the two working
// states, testers only closed.
func (Policy) AllowedStatuses(role domain.Role) []domain.IssueStatus {
	switch role {
	case domain.RoleAdmin, domain.RoleManager:
		return domain.IssueStatuses()
	case domain.RoleDeveloper:
		return []domain.IssueStatus{domain.IssueStatusInProgress, domain.IssueStatusResolved}
	case domain.RoleTester:
		return []domain.IssueStatus{domain.IssueStatusClosed}
	}
	return nil
}

// CanAssign reports whether the role may assign or unassign issues.
func (Policy) CanAssign(role domain.Role) bool {
	return role == domain.RoleAdmin || role == domain.RoleManager
}

// CanDelete reports whether the actor may delete the issue: admins and
// managers always, otherwise only the owner of the issue's project.
func (Policy) CanDelete(role domain.Role, issue domain.Issue, actor domain.User) bool {
	if role == domain.RoleAdmin || role == domain.RoleManager {
		return true
	}
	// Ownership rides on the populated project reference; a bare reference
	// can never match.
	return actor.ID != "" && issue.Project.OwnerID == actor.ID
}

// CanChangeStatus reports whether the actor may move the issue to another
// status. False when the role has no allowed statuses, and false for
// unassigned issues unless the tester exception is enabled and the actor is a
// tester who reported the issue.
func (p Policy) CanChangeStatus(actor domain.User, issue domain.Issue) bool {
	if len(p.AllowedStatuses(actor.Role)) == 0 {
		return false
	}
	if issue.Assigned() {
		return true
	}
	if p.opts.TesterClosesOwnUnassigned && actor.Role == domain.RoleTester && issue.CreatedBy.Is(actor.ID) {
		return true
	}
	return false
}

// Allows reports whether the role may move an issue into the given status.
func (p Policy) Allows(role domain.Role, status domain.IssueStatus) bool {
	for _, s := range p.AllowedStatuses(role) {
		if s == status {
			return true
		}
	}
	return false
}

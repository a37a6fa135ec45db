// Package board derives the column view from a flat issue collection: first
// the role-scoped visible set, then the partition into fixed columns.
package board

import "github.com/spec-kit/issue-board/internal/domain"

// Filter narrows the visible set. Both criteria are optional and conjunctive;
// the project is matched by identifier so bare and populated references
// behave identically.
type Filter struct {
	Project  string
	Severity domain.IssueSeverity
}

// Visible returns the subset of issues the user may see. Developers only see
// their own assignments; every other role sees everything. Input order is
// preserved.
func Visible(issues []domain.Issue, user domain.User, f Filter) []domain.Issue {
	out := make([]domain.Issue, 0, len(issues))
	for _, issue := range issues {
		if user.Role == domain.RoleDeveloper {
			if issue.AssignedTo == nil || !issue.AssignedTo.Is(user.ID) {
				continue
			}
		}
		if f.Project != "" && !issue.Project.Is(f.Project) {
			continue
		}
		if f.Severity != "" && issue.Severity != f.Severity {
			continue
		}
		out = append(out, issue)
	}
	return out
}

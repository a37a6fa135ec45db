package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/issue-board/internal/domain"
	apperrors "github.com/spec-kit/issue-board/pkg/util/errorutil"
)

// IssueFilter captures issue listing parameters.
type IssueFilter struct {
	ProjectID  *string
	Severity   *domain.IssueSeverity
	Status     *domain.IssueStatus
	AssigneeID *string
	CreatedBy  *string
	Limit      int
	Offset     int
}

// IssueRepository is the issue side of the external collaborator contract.
// Every successful mutation returns the canonical record, which callers merge
// into their working set.
type IssueRepository interface {
	List(ctx context.Context, filter IssueFilter) ([]domain.Issue, error)
	GetByID(ctx context.Context, id string) (*domain.Issue, error)
	Create(ctx context.Context, draft domain.IssueDraft) (*domain.Issue, error)
	Assign(ctx context.Context, id, developerID string) (*domain.Issue, error)
	UpdateStatus(ctx context.Context, id string, status domain.IssueStatus) (*domain.Issue, error)
	Delete(ctx context.Context, id string) error
}

type issueRepository struct {
	pool *pgxpool.Pool
}

// NewIssueRepository returns a Postgres-backed implementation.
func NewIssueRepository(pool *pgxpool.Pool) IssueRepository {
	return &issueRepository{pool: pool}
}

const issueColumns = `
        i.id, i.title, i.description, i.severity, i.status,
        p.id, p.name, p.owner_id,
        a.id, a.name, a.role,
        c.id, c.name, c.role,
        i.created_at, i.updated_at`

const issueFrom = `
        FROM issues i
        JOIN projects p ON p.id = i.project_id
        LEFT JOIN users a ON a.id = i.assigned_to
        JOIN users c ON c.id = i.created_by`

func (r *issueRepository) List(ctx context.Context, filter IssueFilter) ([]domain.Issue, error) {
	query := `SELECT` + issueColumns + issueFrom + ` WHERE 1=1`
	args := []any{}

	appendClause := func(clause string, value any) {
		args = append(args, value)
		query += clause + fmt.Sprintf("$%d", len(args))
	}

	if filter.ProjectID != nil {
		appendClause(" AND i.project_id=", *filter.ProjectID)
	}
	if filter.Severity != nil {
		appendClause(" AND i.severity=", *filter.Severity)
	}
	if filter.Status != nil {
		appendClause(" AND i.status=", *filter.Status)
	}
	if filter.AssigneeID != nil {
		appendClause(" AND i.assigned_to=", *filter.AssigneeID)
	}
	if filter.CreatedBy != nil {
		appendClause(" AND i.created_by=", *filter.CreatedBy)
	}

	query += ` ORDER BY i.created_at DESC`
	if filter.Limit > 0 {
		appendClause(` LIMIT `, filter.Limit)
	}
	if filter.Offset > 0 {
		appendClause(` OFFSET `, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIssues(rows)
}

func (r *issueRepository) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	query := `SELECT` + issueColumns + issueFrom + ` WHERE i.id=$1`
	row := r.pool.QueryRow(ctx, query, id)
	issue, err := scanIssue(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("issue", map[string]any{"issue_id": id})
		}
		return nil, err
	}
	return issue, nil
}

func (r *issueRepository) Create(ctx context.Context, draft domain.IssueDraft) (*domain.Issue, error) {
	const query = `
        INSERT INTO issues (title, description, severity, status, project_id, created_by)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`

	severity := draft.Severity
	if severity == "" {
		severity = domain.SeverityMedium
	}

	var id string
	if err := r.pool.QueryRow(ctx, query,
		draft.Title,
		draft.Description,
		severity,
		domain.IssueStatusOpen,
		draft.Project.ID,
		draft.CreatedBy,
	).Scan(&id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *issueRepository) Assign(ctx context.Context, id, developerID string) (*domain.Issue, error) {
	var assignee *string
	if developerID != "" {
		var role domain.Role
		err := r.pool.QueryRow(ctx, `SELECT role FROM users WHERE id=$1`, developerID).Scan(&role)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("developer", map[string]any{"user_id": developerID})
			}
			return nil, err
		}
		if role != domain.RoleDeveloper {
			return nil, apperrors.NewConflict("assignee must have the developer role", map[string]any{"user_id": developerID})
		}
		assignee = &developerID
	}

	cmd, err := r.pool.Exec(ctx, `UPDATE issues SET assigned_to=$1, updated_at=NOW() WHERE id=$2`, assignee, id)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, apperrors.NewNotFound("issue", map[string]any{"issue_id": id})
	}
	return r.GetByID(ctx, id)
}

func (r *issueRepository) UpdateStatus(ctx context.Context, id string, status domain.IssueStatus) (*domain.Issue, error) {
	if !status.Known() {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": status})
	}
	cmd, err := r.pool.Exec(ctx, `UPDATE issues SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, apperrors.NewNotFound("issue", map[string]any{"issue_id": id})
	}
	return r.GetByID(ctx, id)
}

func (r *issueRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM issues WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewNotFound("issue", map[string]any{"issue_id": id})
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIssue(row rowScanner) (*domain.Issue, error) {
	var (
		issue        domain.Issue
		assigneeID   *string
		assigneeName *string
		assigneeRole *domain.Role
	)
	if err := row.Scan(
		&issue.ID,
		&issue.Title,
		&issue.Description,
		&issue.Severity,
		&issue.Status,
		&issue.Project.ID,
		&issue.Project.Name,
		&issue.Project.OwnerID,
		&assigneeID,
		&assigneeName,
		&assigneeRole,
		&issue.CreatedBy.ID,
		&issue.CreatedBy.Name,
		&issue.CreatedBy.Role,
		&issue.CreatedAt,
		&issue.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if assigneeID != nil {
		ref := domain.UserRef{ID: *assigneeID}
		if assigneeName != nil {
			ref.Name = *assigneeName
		}
		if assigneeRole != nil {
			ref.Role = *assigneeRole
		}
		issue.AssignedTo = &ref
	}
	return &issue, nil
}

func scanIssues(rows pgx.Rows) ([]domain.Issue, error) {
	var result []domain.Issue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *issue)
	}
	return result, rows.Err()
}

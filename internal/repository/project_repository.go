package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/issue-board/internal/domain"
	apperrors "github.com/spec-kit/issue-board/pkg/util/errorutil"
)

// ProjectRepository is the project side of the collaborator contract.
type ProjectRepository interface {
	List(ctx context.Context) ([]domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, project *domain.Project) error
	AddMember(ctx context.Context, projectID, userID string) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository returns a Postgres-backed implementation.
func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &projectRepository{pool: pool}
}

func (r *projectRepository) List(ctx context.Context) ([]domain.Project, error) {
	const query = `
        SELECT p.id, p.name, p.description, o.id, o.name, o.role, p.created_at, p.updated_at
        FROM projects p
        JOIN users o ON o.id = p.owner_id
        ORDER BY p.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var project domain.Project
		if err := rows.Scan(
			&project.ID,
			&project.Name,
			&project.Description,
			&project.Owner.ID,
			&project.Owner.Name,
			&project.Owner.Role,
			&project.CreatedAt,
			&project.UpdatedAt,
		); err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range projects {
		members, err := r.listMembers(ctx, projects[i].ID)
		if err != nil {
			return nil, err
		}
		projects[i].Members = members
	}
	return projects, nil
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	const query = `
        SELECT p.id, p.name, p.description, o.id, o.name, o.role, p.created_at, p.updated_at
        FROM projects p
        JOIN users o ON o.id = p.owner_id
        WHERE p.id=$1`

	var project domain.Project
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.Owner.ID,
		&project.Owner.Name,
		&project.Owner.Role,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("project", map[string]any{"project_id": id})
		}
		return nil, err
	}

	members, err := r.listMembers(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	project.Members = members
	return &project, nil
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (name, description, owner_id)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`

	if err := r.pool.QueryRow(ctx, query,
		project.Name,
		project.Description,
		project.Owner.ID,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt); err != nil {
		return err
	}

	// The owner starts on the roster.
	_, err := r.pool.Exec(ctx,
		`INSERT INTO project_members (project_id, user_id) VALUES ($1,$2) ON CONFLICT DO NOTHING`,
		project.ID, project.Owner.ID)
	if err != nil {
		return err
	}
	project.Members = []domain.UserRef{project.Owner}
	return nil
}

func (r *projectRepository) AddMember(ctx context.Context, projectID, userID string) (*domain.Project, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id=$1)`, userID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
	}

	// Membership is unique by user id; re-adding is a no-op.
	if _, err := r.pool.Exec(ctx,
		`INSERT INTO project_members (project_id, user_id) VALUES ($1,$2) ON CONFLICT DO NOTHING`,
		projectID, userID); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, projectID)
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewNotFound("project", map[string]any{"project_id": id})
	}
	return nil
}

func (r *projectRepository) listMembers(ctx context.Context, projectID string) ([]domain.UserRef, error) {
	const query = `
        SELECT u.id, u.name, u.role
        FROM project_members m
        JOIN users u ON u.id = m.user_id
        WHERE m.project_id=$1
        ORDER BY u.name`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.UserRef
	for rows.Next() {
		var member domain.UserRef
		if err := rows.Scan(&member.ID, &member.Name, &member.Role); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

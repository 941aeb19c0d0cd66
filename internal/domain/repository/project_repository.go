package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/garydamm/hackathon-manager/internal/common"
	"github.com/garydamm/hackathon-manager/internal/domain/model"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	Update(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id string) (*model.Project, error)
	ListByEvent(ctx context.Context, eventID string) ([]model.Project, error)
	// ListSubmitted returns the submitted, non-archived projects of an event,
	// with team names resolved. This is the set eligible for judging.
	ListSubmitted(ctx context.Context, eventID string) ([]model.Project, error)
	SetStatus(ctx context.Context, id string, status model.ProjectStatus, submittedAt *time.Time) error
}

type pgProjectRepository struct {
	db *sql.DB
}

func NewPgProjectRepository(db *sql.DB) ProjectRepository {
	return &pgProjectRepository{db: db}
}

const projectColumns = `p.id, p.event_id, p.team_id, p.name, p.description, p.repo_url, p.demo_url,
               p.status, p.submitted_at, p.created_at, p.updated_at, t.name AS team_name`

func (r *pgProjectRepository) Create(ctx context.Context, p *model.Project) error {
	query := `INSERT INTO projects (id, event_id, team_id, name, description, repo_url, demo_url, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.EventID, p.TeamID, p.Name, p.Description, p.RepoURL, p.DemoURL, p.Status)
	if err != nil {
		return fmt.Errorf("pgProjectRepository.Create: %w", err)
	}
	return nil
}

func (r *pgProjectRepository) Update(ctx context.Context, p *model.Project) error {
	query := `UPDATE projects SET name = $1, description = $2, repo_url = $3, demo_url = $4, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $5`
	_, err := r.db.ExecContext(ctx, query, p.Name, p.Description, p.RepoURL, p.DemoURL, p.ID)
	if err != nil {
		return fmt.Errorf("pgProjectRepository.Update: %w", err)
	}
	return nil
}

func (r *pgProjectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	query := `SELECT ` + projectColumns + `
	          FROM projects p JOIN teams t ON p.team_id = t.id
	          WHERE p.id = $1`
	p := &model.Project{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.EventID, &p.TeamID, &p.Name, &p.Description, &p.RepoURL, &p.DemoURL,
		&p.Status, &p.SubmittedAt, &p.CreatedAt, &p.UpdatedAt, &p.TeamName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProjectRepository.FindByID: %w", err)
	}
	return p, nil
}

func (r *pgProjectRepository) ListByEvent(ctx context.Context, eventID string) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + `
	          FROM projects p JOIN teams t ON p.team_id = t.id
	          WHERE p.event_id = $1 ORDER BY p.created_at ASC`
	return r.list(ctx, query, eventID)
}

func (r *pgProjectRepository) ListSubmitted(ctx context.Context, eventID string) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + `
	          FROM projects p JOIN teams t ON p.team_id = t.id
	          WHERE p.event_id = $1 AND p.status = $2 ORDER BY p.submitted_at ASC, p.id ASC`
	return r.list(ctx, query, eventID, model.ProjectStatusSubmitted)
}

func (r *pgProjectRepository) list(ctx context.Context, query string, args ...interface{}) ([]model.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgProjectRepository.list query: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.EventID, &p.TeamID, &p.Name, &p.Description, &p.RepoURL, &p.DemoURL,
			&p.Status, &p.SubmittedAt, &p.CreatedAt, &p.UpdatedAt, &p.TeamName); err != nil {
			return nil, fmt.Errorf("pgProjectRepository.list scan: %w", err)
		}
		projects = append(projects, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProjectRepository.list rows.Err: %w", err)
	}
	return projects, nil
}

func (r *pgProjectRepository) SetStatus(ctx context.Context, id string, status model.ProjectStatus, submittedAt *time.Time) error {
	query := `UPDATE projects SET status = $1, submitted_at = COALESCE($2, submitted_at), updated_at = CURRENT_TIMESTAMP
	          WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, status, submittedAt, id)
	if err != nil {
		return fmt.Errorf("pgProjectRepository.SetStatus: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgProjectRepository.SetStatus rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

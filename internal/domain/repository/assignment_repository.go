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

type AssignmentRepository interface {
	// CreateIfAbsent inserts the assignment unless one already exists for the
	// same (judge, project). A concurrent insert that loses the race is not an
	// error; the existing row is canonical either way.
	CreateIfAbsent(ctx context.Context, assignment *model.Assignment) error
	FindByID(ctx context.Context, id string) (*model.Assignment, error)
	ListByEventAndJudge(ctx context.Context, eventID, judgeID string) ([]model.Assignment, error)
	ListByProject(ctx context.Context, projectID string) ([]model.Assignment, error)
	// MarkCompleted stamps completed_at exactly once; an already-completed
	// assignment is left untouched.
	MarkCompleted(ctx context.Context, id string, completedAt time.Time) error
}

type pgAssignmentRepository struct {
	db *sql.DB
}

func NewPgAssignmentRepository(db *sql.DB) AssignmentRepository {
	return &pgAssignmentRepository{db: db}
}

func (r *pgAssignmentRepository) CreateIfAbsent(ctx context.Context, a *model.Assignment) error {
	query := `INSERT INTO assignments (id, event_id, judge_id, project_id, assigned_at)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (judge_id, project_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.EventID, a.JudgeID, a.ProjectID, a.AssignedAt)
	if err != nil {
		return fmt.Errorf("pgAssignmentRepository.CreateIfAbsent: %w", err)
	}
	return nil
}

func (r *pgAssignmentRepository) FindByID(ctx context.Context, id string) (*model.Assignment, error) {
	query := `SELECT a.id, a.event_id, a.judge_id, a.project_id, a.assigned_at, a.completed_at,
	                 p.name AS project_name, t.name AS team_name
	          FROM assignments a
	          JOIN projects p ON a.project_id = p.id
	          JOIN teams t ON p.team_id = t.id
	          WHERE a.id = $1`
	a := &model.Assignment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.EventID, &a.JudgeID, &a.ProjectID, &a.AssignedAt, &a.CompletedAt,
		&a.ProjectName, &a.TeamName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAssignmentRepository.FindByID: %w", err)
	}
	return a, nil
}

func (r *pgAssignmentRepository) ListByEventAndJudge(ctx context.Context, eventID, judgeID string) ([]model.Assignment, error) {
	query := `SELECT a.id, a.event_id, a.judge_id, a.project_id, a.assigned_at, a.completed_at,
	                 p.name AS project_name, t.name AS team_name
	          FROM assignments a
	          JOIN projects p ON a.project_id = p.id
	          JOIN teams t ON p.team_id = t.id
	          WHERE a.event_id = $1 AND a.judge_id = $2
	          ORDER BY a.assigned_at ASC, a.id ASC`
	return r.list(ctx, query, eventID, judgeID)
}

func (r *pgAssignmentRepository) ListByProject(ctx context.Context, projectID string) ([]model.Assignment, error) {
	query := `SELECT a.id, a.event_id, a.judge_id, a.project_id, a.assigned_at, a.completed_at,
	                 p.name AS project_name, t.name AS team_name
	          FROM assignments a
	          JOIN projects p ON a.project_id = p.id
	          JOIN teams t ON p.team_id = t.id
	          WHERE a.project_id = $1
	          ORDER BY a.assigned_at ASC, a.id ASC`
	return r.list(ctx, query, projectID)
}

func (r *pgAssignmentRepository) list(ctx context.Context, query string, args ...interface{}) ([]model.Assignment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgAssignmentRepository.list query: %w", err)
	}
	defer rows.Close()

	assignments := []model.Assignment{}
	for rows.Next() {
		var a model.Assignment
		if err := rows.Scan(&a.ID, &a.EventID, &a.JudgeID, &a.ProjectID, &a.AssignedAt, &a.CompletedAt,
			&a.ProjectName, &a.TeamName); err != nil {
			return nil, fmt.Errorf("pgAssignmentRepository.list scan: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgAssignmentRepository.list rows.Err: %w", err)
	}
	return assignments, nil
}

func (r *pgAssignmentRepository) MarkCompleted(ctx context.Context, id string, completedAt time.Time) error {
	query := `UPDATE assignments SET completed_at = $1 WHERE id = $2 AND completed_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, completedAt, id)
	if err != nil {
		return fmt.Errorf("pgAssignmentRepository.MarkCompleted: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garydamm/hackathon-manager/internal/domain/model"
)

type ScoreRepository interface {
	// UpsertBatch writes all scores atomically. Each row lands on its
	// (assignment_id, criterion_id) slot: existing rows are updated in place,
	// so a resubmission never produces a duplicate.
	UpsertBatch(ctx context.Context, scores []model.Score) error
	ListByAssignment(ctx context.Context, assignmentID string) ([]model.Score, error)
	// ListScoredCriterionIDs returns the distinct criterion ids that have a
	// score under the assignment, for completion detection.
	ListScoredCriterionIDs(ctx context.Context, assignmentID string) ([]string, error)
	// ListByEvent returns every score of the event's submitted, non-archived
	// projects, attributed to the owning project.
	ListByEvent(ctx context.Context, eventID string) ([]model.ProjectCriterionScore, error)
}

type pgScoreRepository struct {
	db *sql.DB
}

func NewPgScoreRepository(db *sql.DB) ScoreRepository {
	return &pgScoreRepository{db: db}
}

func (r *pgScoreRepository) UpsertBatch(ctx context.Context, scores []model.Score) error {
	if len(scores) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("pgScoreRepository.UpsertBatch begin: %w", err)
	}
	defer tx.Rollback() // Rollback if not committed

	query := `INSERT INTO scores (id, assignment_id, criterion_id, value, feedback)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (assignment_id, criterion_id)
	          DO UPDATE SET value = EXCLUDED.value, feedback = EXCLUDED.feedback, updated_at = CURRENT_TIMESTAMP`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("pgScoreRepository.UpsertBatch prepare: %w", err)
	}
	defer stmt.Close()

	for _, s := range scores {
		if _, err := stmt.ExecContext(ctx, s.ID, s.AssignmentID, s.CriterionID, s.Value, s.Feedback); err != nil {
			return fmt.Errorf("pgScoreRepository.UpsertBatch exec for criterion %s: %w", s.CriterionID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("pgScoreRepository.UpsertBatch commit: %w", err)
	}
	return nil
}

func (r *pgScoreRepository) ListByAssignment(ctx context.Context, assignmentID string) ([]model.Score, error) {
	query := `SELECT s.id, s.assignment_id, s.criterion_id, s.value, s.feedback, s.created_at, s.updated_at
	          FROM scores s
	          JOIN criteria c ON s.criterion_id = c.id
	          WHERE s.assignment_id = $1
	          ORDER BY c.display_order ASC, c.created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("pgScoreRepository.ListByAssignment query: %w", err)
	}
	defer rows.Close()

	scores := []model.Score{}
	for rows.Next() {
		var s model.Score
		if err := rows.Scan(&s.ID, &s.AssignmentID, &s.CriterionID, &s.Value, &s.Feedback, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgScoreRepository.ListByAssignment scan: %w", err)
		}
		scores = append(scores, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgScoreRepository.ListByAssignment rows.Err: %w", err)
	}
	return scores, nil
}

func (r *pgScoreRepository) ListScoredCriterionIDs(ctx context.Context, assignmentID string) ([]string, error) {
	query := `SELECT DISTINCT criterion_id FROM scores WHERE assignment_id = $1`
	rows, err := r.db.QueryContext(ctx, query, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("pgScoreRepository.ListScoredCriterionIDs query: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("pgScoreRepository.ListScoredCriterionIDs scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgScoreRepository.ListScoredCriterionIDs rows.Err: %w", err)
	}
	return ids, nil
}

func (r *pgScoreRepository) ListByEvent(ctx context.Context, eventID string) ([]model.ProjectCriterionScore, error) {
	query := `SELECT a.project_id, s.criterion_id, s.value
	          FROM scores s
	          JOIN assignments a ON s.assignment_id = a.id
	          JOIN projects p ON a.project_id = p.id
	          WHERE a.event_id = $1 AND p.status = $2`
	rows, err := r.db.QueryContext(ctx, query, eventID, model.ProjectStatusSubmitted)
	if err != nil {
		return nil, fmt.Errorf("pgScoreRepository.ListByEvent query: %w", err)
	}
	defer rows.Close()

	scores := []model.ProjectCriterionScore{}
	for rows.Next() {
		var s model.ProjectCriterionScore
		if err := rows.Scan(&s.ProjectID, &s.CriterionID, &s.Value); err != nil {
			return nil, fmt.Errorf("pgScoreRepository.ListByEvent scan: %w", err)
		}
		scores = append(scores, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgScoreRepository.ListByEvent rows.Err: %w", err)
	}
	return scores, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garydamm/hackathon-manager/internal/common"
	"github.com/garydamm/hackathon-manager/internal/domain/model"
)

type CriterionRepository interface {
	Create(ctx context.Context, criterion *model.Criterion) error
	Update(ctx context.Context, criterion *model.Criterion) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Criterion, error)
	// ListByEvent returns the event rubric ordered by display_order ascending.
	ListByEvent(ctx context.Context, eventID string) ([]model.Criterion, error)
	HasScores(ctx context.Context, id string) (bool, error)
}

type pgCriterionRepository struct {
	db *sql.DB
}

func NewPgCriterionRepository(db *sql.DB) CriterionRepository {
	return &pgCriterionRepository{db: db}
}

func (r *pgCriterionRepository) Create(ctx context.Context, c *model.Criterion) error {
	query := `INSERT INTO criteria (id, event_id, name, description, max_score, weight, display_order)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.EventID, c.Name, c.Description, c.MaxScore, c.Weight, c.DisplayOrder)
	if err != nil {
		return fmt.Errorf("pgCriterionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgCriterionRepository) Update(ctx context.Context, c *model.Criterion) error {
	query := `UPDATE criteria SET name = $1, description = $2, max_score = $3, weight = $4,
	              display_order = $5, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $6`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Description, c.MaxScore, c.Weight, c.DisplayOrder, c.ID)
	if err != nil {
		return fmt.Errorf("pgCriterionRepository.Update: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgCriterionRepository.Update rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgCriterionRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM criteria WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("pgCriterionRepository.Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgCriterionRepository.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgCriterionRepository) FindByID(ctx context.Context, id string) (*model.Criterion, error) {
	query := `SELECT id, event_id, name, description, max_score, weight, display_order, created_at, updated_at
	          FROM criteria WHERE id = $1`
	c := &model.Criterion{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.EventID, &c.Name, &c.Description, &c.MaxScore, &c.Weight, &c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCriterionRepository.FindByID: %w", err)
	}
	return c, nil
}

func (r *pgCriterionRepository) ListByEvent(ctx context.Context, eventID string) ([]model.Criterion, error) {
	query := `SELECT id, event_id, name, description, max_score, weight, display_order, created_at, updated_at
	          FROM criteria WHERE event_id = $1 ORDER BY display_order ASC, created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("pgCriterionRepository.ListByEvent query: %w", err)
	}
	defer rows.Close()

	criteria := []model.Criterion{}
	for rows.Next() {
		var c model.Criterion
		if err := rows.Scan(&c.ID, &c.EventID, &c.Name, &c.Description, &c.MaxScore, &c.Weight,
			&c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgCriterionRepository.ListByEvent scan: %w", err)
		}
		criteria = append(criteria, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgCriterionRepository.ListByEvent rows.Err: %w", err)
	}
	return criteria, nil
}

func (r *pgCriterionRepository) HasScores(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM scores WHERE criterion_id = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("pgCriterionRepository.HasScores: %w", err)
	}
	return exists, nil
}

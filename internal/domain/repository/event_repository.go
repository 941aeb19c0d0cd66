package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garydamm/hackathon-manager/internal/common"
	"github.com/garydamm/hackathon-manager/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	FindByID(ctx context.Context, id string) (*model.Event, error)
	FindBySlug(ctx context.Context, slug string) (*model.Event, error)
	List(ctx context.Context, limit, offset int) ([]model.Event, error)
	UpdateStatus(ctx context.Context, id string, status model.EventStatus) error
}

type pgEventRepository struct {
	db *sql.DB
}

func NewPgEventRepository(db *sql.DB) EventRepository {
	return &pgEventRepository{db: db}
}

func (r *pgEventRepository) Create(ctx context.Context, e *model.Event) error {
	query := `INSERT INTO events (id, name, slug, description, status, created_by, starts_at, ends_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.Name, e.Slug, e.Description, e.Status, e.CreatedByID, e.StartsAt, e.EndsAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint for slug
			return fmt.Errorf("event with this slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgEventRepository.Create: %w", err)
	}
	return nil
}

func (r *pgEventRepository) FindByID(ctx context.Context, id string) (*model.Event, error) {
	return r.findBy(ctx, "id", id)
}

func (r *pgEventRepository) FindBySlug(ctx context.Context, slug string) (*model.Event, error) {
	return r.findBy(ctx, "slug", slug)
}

func (r *pgEventRepository) findBy(ctx context.Context, column, value string) (*model.Event, error) {
	query := `SELECT id, name, slug, description, status, created_by, starts_at, ends_at, created_at, updated_at
	          FROM events WHERE ` + column + ` = $1`
	event := &model.Event{}
	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&event.ID, &event.Name, &event.Slug, &event.Description, &event.Status,
		&event.CreatedByID, &event.StartsAt, &event.EndsAt, &event.CreatedAt, &event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgEventRepository.findBy %s: %w", column, err)
	}
	return event, nil
}

func (r *pgEventRepository) List(ctx context.Context, limit, offset int) ([]model.Event, error) {
	query := `SELECT id, name, slug, description, status, created_by, starts_at, ends_at, created_at, updated_at
	          FROM events ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("pgEventRepository.List query: %w", err)
	}
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Slug, &e.Description, &e.Status,
			&e.CreatedByID, &e.StartsAt, &e.EndsAt, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgEventRepository.List scan: %w", err)
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgEventRepository.List rows.Err: %w", err)
	}
	return events, nil
}

func (r *pgEventRepository) UpdateStatus(ctx context.Context, id string, status model.EventStatus) error {
	query := `UPDATE events SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("pgEventRepository.UpdateStatus: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgEventRepository.UpdateStatus rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

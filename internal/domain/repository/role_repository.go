package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garydamm/hackathon-manager/internal/domain/model"
)

// RoleRepository backs the per-event role lookup: organizer, judge or
// participant for a given (event, user) pair.
type RoleRepository interface {
	Grant(ctx context.Context, eventID, userID string, role model.EventRole) error
	RoleOf(ctx context.Context, eventID, userID string) (model.EventRole, error)
}

type pgRoleRepository struct {
	db *sql.DB
}

func NewPgRoleRepository(db *sql.DB) RoleRepository {
	return &pgRoleRepository{db: db}
}

func (r *pgRoleRepository) Grant(ctx context.Context, eventID, userID string, role model.EventRole) error {
	query := `INSERT INTO event_roles (event_id, user_id, role)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (event_id, user_id) DO UPDATE SET role = EXCLUDED.role`
	_, err := r.db.ExecContext(ctx, query, eventID, userID, role)
	if err != nil {
		return fmt.Errorf("pgRoleRepository.Grant: %w", err)
	}
	return nil
}

func (r *pgRoleRepository) RoleOf(ctx context.Context, eventID, userID string) (model.EventRole, error) {
	query := `SELECT role FROM event_roles WHERE event_id = $1 AND user_id = $2`
	var role model.EventRole
	err := r.db.QueryRowContext(ctx, query, eventID, userID).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.EventRoleNone, nil
		}
		return model.EventRoleNone, fmt.Errorf("pgRoleRepository.RoleOf: %w", err)
	}
	return role, nil
}

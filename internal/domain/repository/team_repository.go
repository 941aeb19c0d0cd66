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

type TeamRepository interface {
	Create(ctx context.Context, team *model.Team) error
	FindByID(ctx context.Context, id string) (*model.Team, error)
	AddMember(ctx context.Context, teamID, userID string) error
	IsMember(ctx context.Context, teamID, userID string) (bool, error)
}

type pgTeamRepository struct {
	db *sql.DB
}

func NewPgTeamRepository(db *sql.DB) TeamRepository {
	return &pgTeamRepository{db: db}
}

func (r *pgTeamRepository) Create(ctx context.Context, team *model.Team) error {
	query := `INSERT INTO teams (id, event_id, name) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, team.ID, team.EventID, team.Name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique (event_id, name)
			return fmt.Errorf("team with this name already exists in the event: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgTeamRepository.Create: %w", err)
	}
	return nil
}

func (r *pgTeamRepository) FindByID(ctx context.Context, id string) (*model.Team, error) {
	query := `SELECT id, event_id, name, created_at, updated_at FROM teams WHERE id = $1`
	team := &model.Team{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&team.ID, &team.EventID, &team.Name, &team.CreatedAt, &team.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTeamRepository.FindByID: %w", err)
	}

	memberQuery := `SELECT tm.team_id, tm.user_id, u.username, tm.joined_at
	                FROM team_members tm
	                JOIN users u ON tm.user_id = u.id
	                WHERE tm.team_id = $1 ORDER BY tm.joined_at ASC`
	rows, err := r.db.QueryContext(ctx, memberQuery, id)
	if err != nil {
		return nil, fmt.Errorf("pgTeamRepository.FindByID members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m model.TeamMember
		if err := rows.Scan(&m.TeamID, &m.UserID, &m.Username, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("pgTeamRepository.FindByID member scan: %w", err)
		}
		team.Members = append(team.Members, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgTeamRepository.FindByID rows.Err: %w", err)
	}
	return team, nil
}

func (r *pgTeamRepository) AddMember(ctx context.Context, teamID, userID string) error {
	query := `INSERT INTO team_members (team_id, user_id) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, query, teamID, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("user is already a member of this team: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgTeamRepository.AddMember: %w", err)
	}
	return nil
}

func (r *pgTeamRepository) IsMember(ctx context.Context, teamID, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, teamID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("pgTeamRepository.IsMember: %w", err)
	}
	return exists, nil
}

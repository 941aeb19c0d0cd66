package service

import (
	"context"
	"fmt"

	"github.com/garydamm/hackathon-manager/internal/common"
	"github.com/garydamm/hackathon-manager/internal/domain/model"
	"github.com/garydamm/hackathon-manager/internal/domain/repository"

	"github.com/google/uuid"
)

type TeamService struct {
	teamRepo  repository.TeamRepository
	eventRepo repository.EventRepository
	roleRepo  repository.RoleRepository
}

func NewTeamService(
	teamRepo repository.TeamRepository,
	eventRepo repository.EventRepository,
	roleRepo repository.RoleRepository,
) *TeamService {
	return &TeamService{teamRepo: teamRepo, eventRepo: eventRepo, roleRepo: roleRepo}
}

type CreateTeamRequest struct {
	Name string `json:"name"`
}

func (s *TeamService) CreateTeam(ctx context.Context, eventID, userID string, req CreateTeamRequest) (*model.Team, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("team name is required: %w", common.ErrValidation)
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", eventID, err)
	}
	if event.Status == model.EventStatusCompleted || event.Status == model.EventStatusArchived {
		return nil, fmt.Errorf("event %s is no longer accepting teams: %w", eventID, common.ErrValidation)
	}

	team := &model.Team{
		ID:      uuid.NewString(),
		EventID: eventID,
		Name:    req.Name,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}
	if err := s.joinAsParticipant(ctx, eventID, team.ID, userID); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) JoinTeam(ctx context.Context, teamID, userID string) (*model.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if err := s.joinAsParticipant(ctx, team.EventID, teamID, userID); err != nil {
		return nil, err
	}
	return s.teamRepo.FindByID(ctx, teamID)
}

func (s *TeamService) GetTeam(ctx context.Context, teamID string) (*model.Team, error) {
	return s.teamRepo.FindByID(ctx, teamID)
}

func (s *TeamService) joinAsParticipant(ctx context.Context, eventID, teamID, userID string) error {
	if err := s.teamRepo.AddMember(ctx, teamID, userID); err != nil {
		return err
	}
	// Keep any stronger role (organizer, judge) the user already holds.
	role, err := s.roleRepo.RoleOf(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if role == model.EventRoleNone {
		return s.roleRepo.Grant(ctx, eventID, userID, model.EventRoleParticipant)
	}
	return nil
}

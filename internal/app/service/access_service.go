package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/garydamm/hackathon-manager/internal/common"
	"github.com/garydamm/hackathon-manager/internal/domain/model"
	"github.com/garydamm/hackathon-manager/internal/domain/repository"
)

// AccessService decides who may see assignments and the leaderboard.
// Platform admins act as organizers on every event.
type AccessService struct {
	roleRepo repository.RoleRepository
	userRepo repository.UserRepository
}

func NewAccessService(roleRepo repository.RoleRepository, userRepo repository.UserRepository) *AccessService {
	return &AccessService{roleRepo: roleRepo, userRepo: userRepo}
}

// RoleOf resolves the caller's effective role on an event.
func (s *AccessService) RoleOf(ctx context.Context, eventID, userID string) (model.EventRole, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return model.EventRoleNone, nil
		}
		return model.EventRoleNone, fmt.Errorf("AccessService.RoleOf user lookup: %w", err)
	}
	if user.Role == model.RoleAdmin {
		return model.EventRoleOrganizer, nil
	}
	return s.roleRepo.RoleOf(ctx, eventID, userID)
}

// CanViewAssignments requires a judge or organizer role on the event.
func (s *AccessService) CanViewAssignments(ctx context.Context, eventID, userID string) (bool, error) {
	role, err := s.RoleOf(ctx, eventID, userID)
	if err != nil {
		return false, err
	}
	return role == model.EventRoleJudge || role == model.EventRoleOrganizer, nil
}

// CanViewLeaderboard lets organizers look at any time; everyone else only
// once the event is completed.
func (s *AccessService) CanViewLeaderboard(ctx context.Context, eventID, userID string, status model.EventStatus) (bool, error) {
	role, err := s.RoleOf(ctx, eventID, userID)
	if err != nil {
		return false, err
	}
	if role == model.EventRoleOrganizer {
		return true, nil
	}
	return status == model.EventStatusCompleted, nil
}

// RequireOrganizer fails with ErrForbidden unless the caller organizes the event.
func (s *AccessService) RequireOrganizer(ctx context.Context, eventID, userID string) error {
	role, err := s.RoleOf(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if role != model.EventRoleOrganizer {
		return fmt.Errorf("organizer role required for event %s: %w", eventID, common.ErrForbidden)
	}
	return nil
}

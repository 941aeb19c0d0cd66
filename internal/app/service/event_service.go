package service

import (
	"context"
	"fmt"
	"time"

	"github.com/garydamm/hackathon-manager/internal/common"
	"github.com/garydamm/hackathon-manager/internal/domain/model"
	"github.com/garydamm/hackathon-manager/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type EventService struct {
	eventRepo repository.EventRepository
	userRepo  repository.UserRepository
	roleRepo  repository.RoleRepository
	access    *AccessService
}

func NewEventService(
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	access *AccessService,
) *EventService {
	return &EventService{eventRepo: eventRepo, userRepo: userRepo, roleRepo: roleRepo, access: access}
}

type CreateEventRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
}

func (s *EventService) CreateEvent(ctx context.Context, userID string, req CreateEventRequest) (*model.Event, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("event name is required: %w", common.ErrValidation)
	}

	event := &model.Event{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Description: req.Description,
		Status:      model.EventStatusDraft,
		CreatedByID: userID,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	// The creator organizes their own event.
	if err := s.roleRepo.Grant(ctx, event.ID, userID, model.EventRoleOrganizer); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, eventID string) (*model.Event, error) {
	return s.eventRepo.FindByID(ctx, eventID)
}

func (s *EventService) ListEvents(ctx context.Context, page, pageSize int) ([]model.Event, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return s.eventRepo.List(ctx, pageSize, (page-1)*pageSize)
}

// UpdateStatus moves the event one step along its lifecycle. Backward or
// skipping transitions are rejected.
func (s *EventService) UpdateStatus(ctx context.Context, eventID, callerID string, status model.EventStatus) (*model.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireOrganizer(ctx, eventID, callerID); err != nil {
		return nil, err
	}
	if !model.ValidEventStatusTransition(event.Status, status) {
		return nil, fmt.Errorf("cannot move event from %s to %s: %w", event.Status, status, common.ErrValidation)
	}

	if err := s.eventRepo.UpdateStatus(ctx, eventID, status); err != nil {
		return nil, err
	}
	event.Status = status
	return event, nil
}

// GrantJudge makes a registered user a judge on the event.
func (s *EventService) GrantJudge(ctx context.Context, eventID, callerID, judgeUserID string) error {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return fmt.Errorf("event %s: %w", eventID, err)
	}
	if err := s.access.RequireOrganizer(ctx, eventID, callerID); err != nil {
		return err
	}
	if _, err := s.userRepo.FindByID(ctx, judgeUserID); err != nil {
		return fmt.Errorf("user %s: %w", judgeUserID, err)
	}
	return s.roleRepo.Grant(ctx, eventID, judgeUserID, model.EventRoleJudge)
}

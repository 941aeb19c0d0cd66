package service

import (
	"context"
	"fmt"

	"github.com/garydamm/hackathon-manager/internal/common"
	"github.com/garydamm/hackathon-manager/internal/domain/model"
	"github.com/garydamm/hackathon-manager/internal/domain/repository"

	"github.com/google/uuid"
)

type CriteriaService struct {
	criterionRepo repository.CriterionRepository
	eventRepo     repository.EventRepository
	access        *AccessService
}

func NewCriteriaService(
	criterionRepo repository.CriterionRepository,
	eventRepo repository.EventRepository,
	access *AccessService,
) *CriteriaService {
	return &CriteriaService{criterionRepo: criterionRepo, eventRepo: eventRepo, access: access}
}

type CriterionRequest struct {
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	MaxScore     int     `json:"max_score"`
	Weight       float64 `json:"weight"`
	DisplayOrder int     `json:"display_order"`
}

func (req CriterionRequest) validate() error {
	if req.Name == "" {
		return fmt.Errorf("criterion name is required: %w", common.ErrValidation)
	}
	if req.MaxScore < 1 {
		return fmt.Errorf("max_score must be at least 1, got %d: %w", req.MaxScore, common.ErrValidation)
	}
	if req.Weight <= 0 {
		return fmt.Errorf("weight must be greater than 0, got %v: %w", req.Weight, common.ErrValidation)
	}
	return nil
}

// ListCriteria returns the event rubric ordered by display_order. Callers
// must treat the result as a snapshot for the duration of one scoring or
// aggregation pass; the rubric is not versioned.
func (s *CriteriaService) ListCriteria(ctx context.Context, eventID string) ([]model.Criterion, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("event %s: %w", eventID, err)
	}
	return s.criterionRepo.ListByEvent(ctx, eventID)
}

func (s *CriteriaService) CreateCriterion(ctx context.Context, eventID, callerID string, req CriterionRequest) (*model.Criterion, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("event %s: %w", eventID, err)
	}
	if err := s.access.RequireOrganizer(ctx, eventID, callerID); err != nil {
		return nil, err
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	criterion := &model.Criterion{
		ID:           uuid.NewString(),
		EventID:      eventID,
		Name:         req.Name,
		Description:  req.Description,
		MaxScore:     req.MaxScore,
		Weight:       req.Weight,
		DisplayOrder: req.DisplayOrder,
	}
	if err := s.criterionRepo.Create(ctx, criterion); err != nil {
		return nil, err
	}
	return criterion, nil
}

func (s *CriteriaService) UpdateCriterion(ctx context.Context, criterionID, callerID string, req CriterionRequest) (*model.Criterion, error) {
	criterion, err := s.criterionRepo.FindByID(ctx, criterionID)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireOrganizer(ctx, criterion.EventID, callerID); err != nil {
		return nil, err
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	criterion.Name = req.Name
	criterion.Description = req.Description
	criterion.MaxScore = req.MaxScore
	criterion.Weight = req.Weight
	criterion.DisplayOrder = req.DisplayOrder
	if err := s.criterionRepo.Update(ctx, criterion); err != nil {
		return nil, err
	}
	return criterion, nil
}

// DeleteCriterion removes a rubric dimension. Once any score references the
// criterion the delete is refused; dropping it would silently rewrite
// already-recorded judgments.
func (s *CriteriaService) DeleteCriterion(ctx context.Context, criterionID, callerID string) error {
	criterion, err := s.criterionRepo.FindByID(ctx, criterionID)
	if err != nil {
		return err
	}
	if err := s.access.RequireOrganizer(ctx, criterion.EventID, callerID); err != nil {
		return err
	}

	referenced, err := s.criterionRepo.HasScores(ctx, criterionID)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("criterion %s already has recorded scores: %w", criterionID, common.ErrConflict)
	}
	return s.criterionRepo.Delete(ctx, criterionID)
}

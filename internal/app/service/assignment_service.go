package service

import (
	"context"
	"fmt"
	"time"

	"github.com/garydamm/hackathon-manager/internal/common"
	"github.com/garydamm/hackathon-manager/internal/domain/model"
	"github.com/garydamm/hackathon-manager/internal/domain/repository"

	"github.com/google/uuid"
)

type AssignmentService struct {
	assignmentRepo repository.AssignmentRepository
	projectRepo    repository.ProjectRepository
	eventRepo      repository.EventRepository
	scoreRepo      repository.ScoreRepository
	access         *AccessService
}

func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	projectRepo repository.ProjectRepository,
	eventRepo repository.EventRepository,
	scoreRepo repository.ScoreRepository,
	access *AccessService,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		projectRepo:    projectRepo,
		eventRepo:      eventRepo,
		scoreRepo:      scoreRepo,
		access:         access,
	}
}

// EnsureAssignments reconciles the judge's assignments against the event's
// currently submitted projects, creating any that are missing. Judges added
// late and projects submitted late are both covered on the next call, so no
// separate rebalance pass exists. Calling it repeatedly with no new
// submissions returns the identical set.
func (s *AssignmentService) EnsureAssignments(ctx context.Context, eventID, judgeID string) ([]model.Assignment, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("event %s: %w", eventID, err)
	}

	allowed, err := s.access.CanViewAssignments(ctx, eventID, judgeID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("judge or organizer role required for event %s: %w", eventID, common.ErrForbidden)
	}

	projects, err := s.projectRepo.ListSubmitted(ctx, eventID)
	if err != nil {
		return nil, err
	}

	existing, err := s.assignmentRepo.ListByEventAndJudge(ctx, eventID, judgeID)
	if err != nil {
		return nil, err
	}
	byProject := make(map[string]bool, len(existing))
	for _, a := range existing {
		byProject[a.ProjectID] = true
	}

	created := false
	for _, p := range projects {
		if byProject[p.ID] {
			continue
		}
		assignment := &model.Assignment{
			ID:         uuid.NewString(),
			EventID:    eventID,
			JudgeID:    judgeID,
			ProjectID:  p.ID,
			AssignedAt: time.Now(),
		}
		// Insert-first: a concurrent caller may win the (judge_id, project_id)
		// slot, in which case the existing row is used as-is.
		if err := s.assignmentRepo.CreateIfAbsent(ctx, assignment); err != nil {
			return nil, err
		}
		created = true
	}

	if !created {
		return existing, nil
	}
	return s.assignmentRepo.ListByEventAndJudge(ctx, eventID, judgeID)
}

// GetAssignment returns one assignment with its recorded scores. Only the
// owning judge may read it.
func (s *AssignmentService) GetAssignment(ctx context.Context, assignmentID, callerID string) (*model.Assignment, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.JudgeID != callerID {
		return nil, fmt.Errorf("assignment %s belongs to another judge: %w", assignmentID, common.ErrForbidden)
	}

	scores, err := s.scoreRepo.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	assignment.Scores = scores
	return assignment, nil
}

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

type ScoringService struct {
	assignmentRepo repository.AssignmentRepository
	criterionRepo  repository.CriterionRepository
	scoreRepo      repository.ScoreRepository
}

func NewScoringService(
	assignmentRepo repository.AssignmentRepository,
	criterionRepo repository.CriterionRepository,
	scoreRepo repository.ScoreRepository,
) *ScoringService {
	return &ScoringService{
		assignmentRepo: assignmentRepo,
		criterionRepo:  criterionRepo,
		scoreRepo:      scoreRepo,
	}
}

type ScoreSubmission struct {
	CriterionID string  `json:"criterion_id"`
	Value       int     `json:"value"`
	Feedback    *string `json:"feedback,omitempty"`
}

// SubmitScores validates the batch against the event's current rubric and
// upserts it. The batch is all-or-nothing: the first invalid entry rejects
// the whole request with no partial effect. A batch may cover any subset of
// criteria; judges can complete an assignment across several calls.
func (s *ScoringService) SubmitScores(ctx context.Context, assignmentID, judgeID string, submissions []ScoreSubmission) (*model.Assignment, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.JudgeID != judgeID {
		return nil, fmt.Errorf("assignment %s belongs to another judge: %w", assignmentID, common.ErrForbidden)
	}

	if len(submissions) == 0 {
		return nil, fmt.Errorf("no scores submitted: %w", common.ErrBadRequest)
	}

	criteria, err := s.criterionRepo.ListByEvent(ctx, assignment.EventID)
	if err != nil {
		return nil, err
	}
	criteriaByID := make(map[string]model.Criterion, len(criteria))
	for _, c := range criteria {
		criteriaByID[c.ID] = c
	}

	// Validate the whole batch before writing anything.
	scores := make([]model.Score, 0, len(submissions))
	for _, sub := range submissions {
		criterion, ok := criteriaByID[sub.CriterionID]
		if !ok {
			return nil, fmt.Errorf("unknown criterion %s for this event: %w", sub.CriterionID, common.ErrValidation)
		}
		if sub.Value < 0 || sub.Value > criterion.MaxScore {
			return nil, fmt.Errorf("score for criterion %s must be between 0 and %d, got %d: %w",
				sub.CriterionID, criterion.MaxScore, sub.Value, common.ErrValidation)
		}
		scores = append(scores, model.Score{
			ID:           uuid.NewString(),
			AssignmentID: assignmentID,
			CriterionID:  sub.CriterionID,
			Value:        sub.Value,
			Feedback:     sub.Feedback,
		})
	}

	if err := s.scoreRepo.UpsertBatch(ctx, scores); err != nil {
		return nil, err
	}

	if err := s.recomputeCompletion(ctx, assignment, criteria); err != nil {
		return nil, err
	}

	assignment.Scores, err = s.scoreRepo.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

// recomputeCompletion stamps completed_at once every current criterion has a
// score under the assignment. A completed_at already set stays set: criteria
// added later do not reopen the assignment.
func (s *ScoringService) recomputeCompletion(ctx context.Context, assignment *model.Assignment, criteria []model.Criterion) error {
	if assignment.IsCompleted() || len(criteria) == 0 {
		return nil
	}

	scoredIDs, err := s.scoreRepo.ListScoredCriterionIDs(ctx, assignment.ID)
	if err != nil {
		return err
	}
	scored := make(map[string]bool, len(scoredIDs))
	for _, id := range scoredIDs {
		scored[id] = true
	}
	for _, c := range criteria {
		if !scored[c.ID] {
			return nil
		}
	}

	now := time.Now()
	if err := s.assignmentRepo.MarkCompleted(ctx, assignment.ID, now); err != nil {
		return err
	}
	assignment.CompletedAt = &now
	return nil
}

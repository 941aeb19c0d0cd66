package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/garydamm/hackathon-manager/internal/common"
	"github.com/garydamm/hackathon-manager/internal/domain/model"
	"github.com/garydamm/hackathon-manager/internal/domain/repository"
)

type LeaderboardService struct {
	eventRepo     repository.EventRepository
	projectRepo   repository.ProjectRepository
	criterionRepo repository.CriterionRepository
	scoreRepo     repository.ScoreRepository
	access        *AccessService
}

func NewLeaderboardService(
	eventRepo repository.EventRepository,
	projectRepo repository.ProjectRepository,
	criterionRepo repository.CriterionRepository,
	scoreRepo repository.ScoreRepository,
	access *AccessService,
) *LeaderboardService {
	return &LeaderboardService{
		eventRepo:     eventRepo,
		projectRepo:   projectRepo,
		criterionRepo: criterionRepo,
		scoreRepo:     scoreRepo,
		access:        access,
	}
}

// GetLeaderboard ranks every submitted project by its weighted total score.
// Each criterion's scores are averaged across all of the project's
// assignments first, then weighted: total = sum(avg*weight) / sum(weight).
// Averaging per criterion (rather than per judge) keeps the total stable
// while some judges are still mid-scoring, at the cost of under-weighting
// criteria with fewer responses. A criterion with no scores yet counts as 0.
//
// Ranks are strictly sequential: tied totals keep their stable input order
// and receive distinct consecutive ranks.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, eventID, callerID string) ([]model.LeaderboardEntry, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", eventID, err)
	}

	allowed, err := s.access.CanViewLeaderboard(ctx, eventID, callerID, event.Status)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("leaderboard for event %s is not visible before completion: %w", eventID, common.ErrForbidden)
	}

	criteria, err := s.criterionRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(criteria) == 0 {
		// No rubric means no meaningful ranking.
		return []model.LeaderboardEntry{}, nil
	}

	projects, err := s.projectRepo.ListSubmitted(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return []model.LeaderboardEntry{}, nil
	}

	scores, err := s.scoreRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	// project -> criterion -> recorded values
	valuesByProject := make(map[string]map[string][]int)
	for _, sc := range scores {
		byCriterion, ok := valuesByProject[sc.ProjectID]
		if !ok {
			byCriterion = make(map[string][]int)
			valuesByProject[sc.ProjectID] = byCriterion
		}
		byCriterion[sc.CriterionID] = append(byCriterion[sc.CriterionID], sc.Value)
	}

	totalWeight := 0.0
	for _, c := range criteria {
		totalWeight += c.Weight
	}

	entries := make([]model.LeaderboardEntry, 0, len(projects))
	for _, p := range projects {
		byCriterion := valuesByProject[p.ID]

		averages := make(map[string]float64, len(criteria))
		weightedSum := 0.0
		for _, c := range criteria {
			avg := 0.0
			if values := byCriterion[c.ID]; len(values) > 0 {
				sum := 0
				for _, v := range values {
					sum += v
				}
				avg = float64(sum) / float64(len(values))
			}
			averages[c.ID] = avg
			weightedSum += avg * c.Weight
		}

		total := 0.0
		if totalWeight > 0 {
			total = weightedSum / totalWeight
		}

		teamName := ""
		if p.TeamName != nil {
			teamName = *p.TeamName
		}
		entries = append(entries, model.LeaderboardEntry{
			ProjectID:            p.ID,
			ProjectName:          p.Name,
			TeamID:               p.TeamID,
			TeamName:             teamName,
			TotalScore:           total,
			PerCriterionAverages: averages,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalScore > entries[j].TotalScore
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

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

type ProjectService struct {
	projectRepo repository.ProjectRepository
	teamRepo    repository.TeamRepository
	eventRepo   repository.EventRepository
	access      *AccessService
}

func NewProjectService(
	projectRepo repository.ProjectRepository,
	teamRepo repository.TeamRepository,
	eventRepo repository.EventRepository,
	access *AccessService,
) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, teamRepo: teamRepo, eventRepo: eventRepo, access: access}
}

type ProjectRequest struct {
	TeamID      string  `json:"team_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	RepoURL     *string `json:"repo_url,omitempty"`
	DemoURL     *string `json:"demo_url,omitempty"`
}

func (s *ProjectService) CreateProject(ctx context.Context, eventID, userID string, req ProjectRequest) (*model.Project, error) {
	if req.Name == "" || req.TeamID == "" {
		return nil, fmt.Errorf("project name and team_id are required: %w", common.ErrValidation)
	}
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("event %s: %w", eventID, err)
	}

	team, err := s.teamRepo.FindByID(ctx, req.TeamID)
	if err != nil {
		return nil, fmt.Errorf("team %s: %w", req.TeamID, err)
	}
	if team.EventID != eventID {
		return nil, fmt.Errorf("team %s does not belong to event %s: %w", req.TeamID, eventID, common.ErrValidation)
	}
	if err := s.requireMember(ctx, req.TeamID, userID); err != nil {
		return nil, err
	}

	project := &model.Project{
		ID:          uuid.NewString(),
		EventID:     eventID,
		TeamID:      req.TeamID,
		Name:        req.Name,
		Description: req.Description,
		RepoURL:     req.RepoURL,
		DemoURL:     req.DemoURL,
		Status:      model.ProjectStatusDraft,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, projectID, userID string, req ProjectRequest) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, project.TeamID, userID); err != nil {
		return nil, err
	}
	if project.Status == model.ProjectStatusArchived {
		return nil, fmt.Errorf("project %s is archived: %w", projectID, common.ErrValidation)
	}

	if req.Name != "" {
		project.Name = req.Name
	}
	if req.Description != "" {
		project.Description = req.Description
	}
	if req.RepoURL != nil {
		project.RepoURL = req.RepoURL
	}
	if req.DemoURL != nil {
		project.DemoURL = req.DemoURL
	}
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// SubmitProject moves a draft into the judged pool. Submitted projects are
// picked up by assignment allocation on each judge's next fetch.
func (s *ProjectService) SubmitProject(ctx context.Context, projectID, userID string) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, project.TeamID, userID); err != nil {
		return nil, err
	}
	if project.Status != model.ProjectStatusDraft {
		return nil, fmt.Errorf("project %s is not in draft status: %w", projectID, common.ErrValidation)
	}

	now := time.Now()
	if err := s.projectRepo.SetStatus(ctx, projectID, model.ProjectStatusSubmitted, &now); err != nil {
		return nil, err
	}
	project.Status = model.ProjectStatusSubmitted
	project.SubmittedAt = &now
	return project, nil
}

// ArchiveProject pulls a project out of allocation and the leaderboard.
// Organizer only.
func (s *ProjectService) ArchiveProject(ctx context.Context, projectID, callerID string) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireOrganizer(ctx, project.EventID, callerID); err != nil {
		return nil, err
	}

	if err := s.projectRepo.SetStatus(ctx, projectID, model.ProjectStatusArchived, nil); err != nil {
		return nil, err
	}
	project.Status = model.ProjectStatusArchived
	return project, nil
}

func (s *ProjectService) ListProjects(ctx context.Context, eventID string) ([]model.Project, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("event %s: %w", eventID, err)
	}
	return s.projectRepo.ListByEvent(ctx, eventID)
}

func (s *ProjectService) requireMember(ctx context.Context, teamID, userID string) error {
	member, err := s.teamRepo.IsMember(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if !member {
		return fmt.Errorf("user %s is not a member of team %s: %w", userID, teamID, common.ErrForbidden)
	}
	return nil
}

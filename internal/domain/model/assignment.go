package model

import "time"

// Assignment pairs one judge with one project for scoring. At most one
// assignment exists per (judge, project); the judge_id/project_id unique
// constraint in the store is the source of truth for that invariant.
type Assignment struct {
	ID          string     `json:"id"`
	EventID     string     `json:"event_id"`
	JudgeID     string     `json:"judge_id"`
	ProjectID   string     `json:"project_id"`
	AssignedAt  time.Time  `json:"assigned_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ProjectName *string    `json:"project_name,omitempty"` // For display
	TeamName    *string    `json:"team_name,omitempty"`    // For display
	Scores      []Score    `json:"scores,omitempty"`
}

func (a *Assignment) IsCompleted() bool {
	return a.CompletedAt != nil
}

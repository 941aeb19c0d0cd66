package model

import "time"

// Score is one judge's value for one criterion under one assignment.
// Resubmitting for the same (assignment, criterion) updates the row in place.
type Score struct {
	ID           string    `json:"id"`
	AssignmentID string    `json:"assignment_id"`
	CriterionID  string    `json:"criterion_id"`
	Value        int       `json:"value"`
	Feedback     *string   `json:"feedback,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProjectCriterionScore is the flattened read model the leaderboard
// aggregation consumes: one recorded value, attributed to its project.
type ProjectCriterionScore struct {
	ProjectID   string
	CriterionID string
	Value       int
}

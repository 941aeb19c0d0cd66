package model

import "time"

type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "draft"
	ProjectStatusSubmitted ProjectStatus = "submitted"
	ProjectStatusArchived  ProjectStatus = "archived"
)

type Project struct {
	ID          string        `json:"id"`
	EventID     string        `json:"event_id"`
	TeamID      string        `json:"team_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	RepoURL     *string       `json:"repo_url,omitempty"`
	DemoURL     *string       `json:"demo_url,omitempty"`
	Status      ProjectStatus `json:"status"`
	SubmittedAt *time.Time    `json:"submitted_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	TeamName    *string       `json:"team_name,omitempty"` // For display
}

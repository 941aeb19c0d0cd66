package model

import "time"

type Team struct {
	ID        string       `json:"id"`
	EventID   string       `json:"event_id"`
	Name      string       `json:"name"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Members   []TeamMember `json:"members,omitempty"`
}

type TeamMember struct {
	TeamID   string    `json:"team_id"`
	UserID   string    `json:"user_id"`
	Username *string   `json:"username,omitempty"` // For display
	JoinedAt time.Time `json:"joined_at"`
}

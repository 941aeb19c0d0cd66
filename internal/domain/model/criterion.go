package model

import "time"

// Criterion is one weighted, bounded-score rubric dimension of an event.
// Scores submitted against it must land in [0, MaxScore]; Weight scales its
// contribution to the leaderboard total.
type Criterion struct {
	ID           string    `json:"id"`
	EventID      string    `json:"event_id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	MaxScore     int       `json:"max_score"`
	Weight       float64   `json:"weight"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

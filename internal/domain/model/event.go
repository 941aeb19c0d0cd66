package model

import "time"

type EventStatus string

const (
	EventStatusDraft        EventStatus = "draft"
	EventStatusRegistration EventStatus = "registration"
	EventStatusSubmission   EventStatus = "submission"
	EventStatusJudging      EventStatus = "judging"
	EventStatusCompleted    EventStatus = "completed"
	EventStatusArchived     EventStatus = "archived"
)

// Per-event roles, granted independently of the platform role on User.
type EventRole string

const (
	EventRoleOrganizer   EventRole = "organizer"
	EventRoleJudge       EventRole = "judge"
	EventRoleParticipant EventRole = "participant"
	EventRoleNone        EventRole = "none"
)

type Event struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	Description string      `json:"description"`
	Status      EventStatus `json:"status"`
	CreatedByID string      `json:"created_by_id"`
	StartsAt    *time.Time  `json:"starts_at,omitempty"`
	EndsAt      *time.Time  `json:"ends_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ValidEventStatusTransition enforces the forward-only lifecycle. Archiving
// is allowed from any status.
func ValidEventStatusTransition(from, to EventStatus) bool {
	if to == EventStatusArchived {
		return true
	}
	order := map[EventStatus]int{
		EventStatusDraft:        0,
		EventStatusRegistration: 1,
		EventStatusSubmission:   2,
		EventStatusJudging:      3,
		EventStatusCompleted:    4,
	}
	fromOrd, okFrom := order[from]
	toOrd, okTo := order[to]
	if !okFrom || !okTo {
		return false
	}
	return toOrd == fromOrd+1
}

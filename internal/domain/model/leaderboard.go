package model

type LeaderboardEntry struct {
	Rank                 int                `json:"rank"`
	ProjectID            string             `json:"project_id"`
	ProjectName          string             `json:"project_name"`
	TeamID               string             `json:"team_id"`
	TeamName             string             `json:"team_name"`
	TotalScore           float64            `json:"total_score"`
	PerCriterionAverages map[string]float64 `json:"per_criterion_averages"`
}

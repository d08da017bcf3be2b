package model

// Per-category point ceilings. They sum to 100, so a full breakdown always
// lands in [0,100].
const (
	MaxScalePoints       = 30
	MaxCostPoints        = 25
	MaxPerformancePoints = 20
	MaxOperationalPoints = 15
	MaxTeamPoints        = 10
)

// ScoreBreakdown holds the points awarded per scoring category. Each field
// is bounded by its Max*Points ceiling.
type ScoreBreakdown struct {
	Scale       int `json:"scale"`
	Cost        int `json:"cost"`
	Performance int `json:"performance"`
	Operational int `json:"operational"`
	Team        int `json:"team"`
}

// Total returns the aggregate score across all categories.
func (b ScoreBreakdown) Total() int {
	return b.Scale + b.Cost + b.Performance + b.Operational + b.Team
}

// CategoryPoints is one breakdown row in display order.
type CategoryPoints struct {
	Label  string
	Points int
	Max    int
}

// Categories returns the breakdown as ordered (label, points, ceiling) rows
// for rendering.
func (b ScoreBreakdown) Categories() []CategoryPoints {
	return []CategoryPoints{
		{Label: "Scale", Points: b.Scale, Max: MaxScalePoints},
		{Label: "Cost", Points: b.Cost, Max: MaxCostPoints},
		{Label: "Performance", Points: b.Performance, Max: MaxPerformancePoints},
		{Label: "Operational", Points: b.Operational, Max: MaxOperationalPoints},
		{Label: "Team", Points: b.Team, Max: MaxTeamPoints},
	}
}

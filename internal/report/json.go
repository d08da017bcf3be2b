package report

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"stackshift/internal/model"
)

// jsonEnvelope is the export schema. Currency fields marshal as strings so
// consumers keep exact decimal values.
type jsonEnvelope struct {
	AssessmentID string                 `json:"assessment_id"`
	GeneratedAt  time.Time              `json:"generated_at"`
	Source       string                 `json:"source"`
	Portfolio    string                 `json:"portfolio,omitempty"`
	Summary      model.PortfolioSummary `json:"summary"`
	Services     []model.Assessment     `json:"services"`
}

// renderJSON marshals the report under a fresh assessment id.
func (r *Report) renderJSON() (string, error) {
	env := jsonEnvelope{
		AssessmentID: uuid.NewString(),
		GeneratedAt:  r.GeneratedAt.UTC(),
		Source:       r.Origin,
		Portfolio:    r.Portfolio.Name,
		Summary:      r.Summary,
		Services:     r.Assessments,
	}
	b, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}

package model

import "fmt"

// ServiceMetrics is the immutable input record for one service evaluation,
// produced by an external measurement process. Numeric fields must be
// non-negative and TeamSize at least 1; Validate enforces the domain and the
// scorer refuses records that fail it.
type ServiceMetrics struct {
	Name string `json:"name" yaml:"name"`

	// RequestsPerSecond is the sustained request rate over a representative
	// window, not the peak.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
	MonthlyInfraCost  Money   `json:"monthly_infra_cost" yaml:"monthly_infra_cost"`
	// P99LatencyMs is the p99 latency budget the service is required to
	// meet, in milliseconds. Tighter budgets score more migration points.
	P99LatencyMs           float64 `json:"p99_latency_ms" yaml:"p99_latency_ms"`
	TeamSize               int     `json:"team_size" yaml:"team_size"`
	HasComplexTransactions bool    `json:"complex_transactions" yaml:"complex_transactions"`
	DeploysPerDay          float64 `json:"deploys_per_day" yaml:"deploys_per_day"`

	// Performance profile flags.
	HighConcurrency bool `json:"high_concurrency" yaml:"high_concurrency"`
	RealTime        bool `json:"real_time" yaml:"real_time"`

	// Operational pain flags, each observed independently.
	GCPressure         bool `json:"gc_pressure" yaml:"gc_pressure"`
	ColdStarts         bool `json:"cold_starts" yaml:"cold_starts"`
	DeploymentFriction bool `json:"deployment_friction" yaml:"deployment_friction"`
	AutoscaleLag       bool `json:"autoscale_lag" yaml:"autoscale_lag"`

	// Team pain flags. The small-team condition is derived from TeamSize,
	// so it is not an input flag.
	HighTurnover   bool `json:"high_turnover" yaml:"high_turnover"`
	SlowOnboarding bool `json:"slow_onboarding" yaml:"slow_onboarding"`

	// Migration carries the optional cost/benefit inputs for the ROI
	// estimate. Nil means no ROI is computed for this service.
	Migration *MigrationPlan `json:"migration,omitempty" yaml:"migration,omitempty"`
}

// DisplayName returns Name, or a placeholder for anonymous single-service
// records.
func (m ServiceMetrics) DisplayName() string {
	if m.Name == "" {
		return "service"
	}
	return m.Name
}

// Validate rejects out-of-domain values with ErrInvalidInput wrapping. The
// message names the offending field using its record key.
func (m ServiceMetrics) Validate() error {
	if m.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: requests_per_second must be non-negative, got %g", ErrInvalidInput, m.RequestsPerSecond)
	}
	if m.MonthlyInfraCost.IsNegative() {
		return fmt.Errorf("%w: monthly_infra_cost must be non-negative, got %s", ErrInvalidInput, m.MonthlyInfraCost)
	}
	if m.P99LatencyMs < 0 {
		return fmt.Errorf("%w: p99_latency_ms must be non-negative, got %g", ErrInvalidInput, m.P99LatencyMs)
	}
	if m.TeamSize < 1 {
		return fmt.Errorf("%w: team_size must be a positive integer, got %d", ErrInvalidInput, m.TeamSize)
	}
	if m.DeploysPerDay < 0 {
		return fmt.Errorf("%w: deploys_per_day must be non-negative, got %g", ErrInvalidInput, m.DeploysPerDay)
	}
	if m.Migration != nil {
		if err := m.Migration.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// MigrationPlan carries the cost/benefit inputs for a migration scenario
// attached to a service record.
type MigrationPlan struct {
	DevelopmentCost      Money `json:"development_cost" yaml:"development_cost"`
	DurationMonths       int   `json:"duration_months" yaml:"duration_months"`
	ProjectedMonthlyCost Money `json:"projected_monthly_cost" yaml:"projected_monthly_cost"`
	OtherAnnualBenefits  Money `json:"other_annual_benefits" yaml:"other_annual_benefits"`
	// CurrentMonthlyCost overrides the service's MonthlyInfraCost as the
	// pre-migration run cost when non-zero.
	CurrentMonthlyCost Money `json:"current_monthly_cost,omitempty" yaml:"current_monthly_cost,omitempty"`
}

// Validate rejects plans the estimator cannot price.
func (p *MigrationPlan) Validate() error {
	if !p.DevelopmentCost.IsPositive() {
		return fmt.Errorf("%w: migration development_cost must be positive, got %s", ErrInvalidInput, p.DevelopmentCost)
	}
	if p.DurationMonths < 0 {
		return fmt.Errorf("%w: migration duration_months must be non-negative, got %d", ErrInvalidInput, p.DurationMonths)
	}
	if p.ProjectedMonthlyCost.IsNegative() {
		return fmt.Errorf("%w: migration projected_monthly_cost must be non-negative, got %s", ErrInvalidInput, p.ProjectedMonthlyCost)
	}
	if p.OtherAnnualBenefits.IsNegative() {
		return fmt.Errorf("%w: migration other_annual_benefits must be non-negative, got %s", ErrInvalidInput, p.OtherAnnualBenefits)
	}
	if p.CurrentMonthlyCost.IsNegative() {
		return fmt.Errorf("%w: migration current_monthly_cost must be non-negative, got %s", ErrInvalidInput, p.CurrentMonthlyCost)
	}
	return nil
}

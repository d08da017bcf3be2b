package source

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"stackshift/internal/model"
)

// parseKeyValue parses the single-service key=value form:
//
//	name = checkout
//	rps = 1200
//	cost = 8400
//	p99 = 45
//	team_size = 4
//	gc_pressure = true
//	# migration scenario (optional)
//	migration.development_cost = 40000
//	migration.projected_monthly_cost = 720
//
// Keys use the record's field names; rps, cost, and p99 are accepted as
// shorthands. Blank lines and #-comments are skipped. Unknown and repeated
// keys are rejected so a typo cannot silently drop a metric.
func parseKeyValue(data []byte) (*model.Portfolio, error) {
	var (
		m       model.ServiceMetrics
		plan    model.MigrationPlan
		planSet bool
	)
	seen := make(map[string]bool)

	sc := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rawKey, rawValue, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: expected key=value, got %q", model.ErrInvalidInput, lineNo, line)
		}
		key := canonicalKey(strings.TrimSpace(rawKey))
		value := strings.TrimSpace(rawValue)
		if seen[key] {
			return nil, fmt.Errorf("%w: line %d: duplicate key %q", model.ErrInvalidInput, lineNo, key)
		}
		seen[key] = true
		if err := applyKey(&m, &plan, &planSet, key, value); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read key=value input: %w", err)
	}

	if planSet {
		m.Migration = &plan
	}
	return &model.Portfolio{Name: m.Name, Services: []model.ServiceMetrics{m}}, nil
}

// canonicalKey expands the accepted shorthands to record field names.
func canonicalKey(key string) string {
	switch key {
	case "rps":
		return "requests_per_second"
	case "cost":
		return "monthly_infra_cost"
	case "p99":
		return "p99_latency_ms"
	case "migration.dev_cost":
		return "migration.development_cost"
	default:
		return key
	}
}

func applyKey(m *model.ServiceMetrics, plan *model.MigrationPlan, planSet *bool, key, value string) error {
	switch key {
	case "name":
		m.Name = value
	case "requests_per_second":
		return setFloat(&m.RequestsPerSecond, key, value)
	case "monthly_infra_cost":
		return setMoney(&m.MonthlyInfraCost, key, value)
	case "p99_latency_ms":
		return setFloat(&m.P99LatencyMs, key, value)
	case "team_size":
		return setInt(&m.TeamSize, key, value)
	case "complex_transactions":
		return setBool(&m.HasComplexTransactions, key, value)
	case "deploys_per_day":
		return setFloat(&m.DeploysPerDay, key, value)
	case "high_concurrency":
		return setBool(&m.HighConcurrency, key, value)
	case "real_time":
		return setBool(&m.RealTime, key, value)
	case "gc_pressure":
		return setBool(&m.GCPressure, key, value)
	case "cold_starts":
		return setBool(&m.ColdStarts, key, value)
	case "deployment_friction":
		return setBool(&m.DeploymentFriction, key, value)
	case "autoscale_lag":
		return setBool(&m.AutoscaleLag, key, value)
	case "high_turnover":
		return setBool(&m.HighTurnover, key, value)
	case "slow_onboarding":
		return setBool(&m.SlowOnboarding, key, value)
	case "migration.development_cost":
		*planSet = true
		return setMoney(&plan.DevelopmentCost, key, value)
	case "migration.duration_months":
		*planSet = true
		return setInt(&plan.DurationMonths, key, value)
	case "migration.projected_monthly_cost":
		*planSet = true
		return setMoney(&plan.ProjectedMonthlyCost, key, value)
	case "migration.other_annual_benefits":
		*planSet = true
		return setMoney(&plan.OtherAnnualBenefits, key, value)
	case "migration.current_monthly_cost":
		*planSet = true
		return setMoney(&plan.CurrentMonthlyCost, key, value)
	default:
		return fmt.Errorf("%w: unknown key %q", model.ErrInvalidInput, key)
	}
	return nil
}

func setFloat(dst *float64, key, value string) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("%w: %s: invalid number %q", model.ErrInvalidInput, key, value)
	}
	*dst = f
	return nil
}

func setInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%w: %s: invalid integer %q", model.ErrInvalidInput, key, value)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%w: %s: invalid boolean %q", model.ErrInvalidInput, key, value)
	}
	*dst = b
	return nil
}

func setMoney(dst *model.Money, key, value string) error {
	m, err := model.MoneyFromString(value)
	if err != nil {
		return fmt.Errorf("%w: %s: invalid amount %q", model.ErrInvalidInput, key, value)
	}
	*dst = m
	return nil
}

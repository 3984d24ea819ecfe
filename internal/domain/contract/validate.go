package contract

import (
	"fmt"
	"math"
	"strings"

	"pact/internal/domain/evaluation"
)

const weightSumTolerance = 1e-9

// Validate enforces the write-time invariants of a role configuration:
// metric weights sum to 100 and every threshold set is strictly ordered
// for its direction. The evaluation engine tolerates broken configs by
// failing loudly; this keeps them out of storage in the first place.
func Validate(cfg RoleConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("%w: role config name is required", evaluation.ErrConfiguration)
	}
	if cfg.EvaluationPeriodDays <= 0 {
		return fmt.Errorf("%w: evaluation period must be positive, got %d", evaluation.ErrConfiguration, cfg.EvaluationPeriodDays)
	}
	if len(cfg.Metrics) == 0 {
		return fmt.Errorf("%w: role config needs at least one metric", evaluation.ErrConfiguration)
	}

	seen := map[string]bool{}
	var weightSum float64
	for _, metric := range cfg.Metrics {
		name := strings.TrimSpace(metric.Name)
		if name == "" {
			return fmt.Errorf("%w: metric name is required", evaluation.ErrConfiguration)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate metric %q", evaluation.ErrConfiguration, name)
		}
		seen[name] = true

		if metric.Weight < 0 || metric.Weight > 100 {
			return fmt.Errorf("%w: metric %q weight %v out of range 0-100", evaluation.ErrConfiguration, name, metric.Weight)
		}
		weightSum += metric.Weight

		if err := evaluation.ValidateThresholds(metric.Thresholds, metric.Direction); err != nil {
			return fmt.Errorf("metric %q: %w", name, err)
		}
	}

	if math.Abs(weightSum-100) > weightSumTolerance {
		return fmt.Errorf("%w: metric weights must sum to 100, got %v", evaluation.ErrConfiguration, weightSum)
	}
	return nil
}

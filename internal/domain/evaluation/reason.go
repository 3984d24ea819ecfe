package evaluation

import (
	"fmt"
	"strings"
)

// TransitionReason renders a human-readable explanation for a state
// change, one clause per driving metric: on decline the metrics sitting
// in warning or critical, on recovery the metrics back in stable or
// growth.
func TransitionReason(from, to State, metrics []MetricResult) string {
	improving := StateRank(to) > StateRank(from)

	var clauses []string
	for _, metric := range metrics {
		if improving {
			switch metric.Status {
			case StatusGrowth:
				clauses = append(clauses, fmt.Sprintf("%s recovered above the growth threshold", metric.Name))
			case StatusStable:
				clauses = append(clauses, fmt.Sprintf("%s recovered above the stable threshold", metric.Name))
			}
			continue
		}
		switch metric.Status {
		case StatusCritical:
			clauses = append(clauses, fmt.Sprintf("%s fell below the critical threshold", metric.Name))
		case StatusWarning:
			clauses = append(clauses, fmt.Sprintf("%s fell below the warning threshold", metric.Name))
		}
	}

	if len(clauses) == 0 {
		return fmt.Sprintf("overall state moved from %s to %s", from, to)
	}
	return strings.Join(clauses, "; ")
}

// SustainedCriticalReason explains a forced exit transition.
func SustainedCriticalReason(periods int) string {
	return fmt.Sprintf("critical state sustained for %d consecutive evaluation periods", periods)
}

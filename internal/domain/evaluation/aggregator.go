package evaluation

type AggregateResult struct {
	State     State `json:"state"`
	Included  int   `json:"included"`
	NoData    int   `json:"noData"`
	Criticals int   `json:"criticals"`
	Warnings  int   `json:"warnings"`
}

// Aggregate combines per-metric classifications into one overall
// contractual state. Metrics with no_data are excluded; when every
// metric is no_data the result is ErrInsufficientData and the caller
// must leave the stored state untouched. Exit is never produced here,
// only by the sustained-critical rule in the tracker.
func Aggregate(metrics []MetricResult, policy Policy) (AggregateResult, error) {
	policy = policy.normalized()

	var result AggregateResult
	var growths, stables int
	for _, metric := range metrics {
		switch metric.Status {
		case StatusNoData:
			result.NoData++
			continue
		case StatusCritical:
			result.Criticals++
		case StatusWarning:
			result.Warnings++
		case StatusStable:
			stables++
		case StatusGrowth:
			growths++
		}
		result.Included++
	}

	if result.Included == 0 {
		return result, ErrInsufficientData
	}

	switch {
	case result.Criticals >= policy.CriticalEscalationCount:
		result.State = StateCritical
	case result.Criticals > 0 || result.Warnings > 0:
		result.State = StateWarning
	case stables > 0:
		result.State = StateStable
	default:
		result.State = StateGrowth
	}
	return result, nil
}

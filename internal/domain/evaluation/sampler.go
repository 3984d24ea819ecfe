package evaluation

import "time"

// SampleLatest picks the value that counts toward the current evaluation
// for one metric: entries whose own period ends inside
// [periodStart, periodEnd], latest recordedAt wins. Entries recorded
// after asOf are ignored so a closed evaluation stays reproducible when
// late entries arrive. Returns nil when nothing matches.
func SampleLatest(entries []Sample, metricKey string, periodStart, periodEnd, asOf time.Time) *float64 {
	var best *Sample
	for i := range entries {
		entry := &entries[i]
		if entry.MetricKey != metricKey {
			continue
		}
		if entry.PeriodEnd.Before(periodStart) || entry.PeriodEnd.After(periodEnd) {
			continue
		}
		if !asOf.IsZero() && entry.RecordedAt.After(asOf) {
			continue
		}
		if best == nil || entry.RecordedAt.After(best.RecordedAt) {
			best = entry
		}
	}
	if best == nil {
		return nil
	}
	value := best.Value
	return &value
}

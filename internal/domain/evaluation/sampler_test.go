package evaluation

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestSampleLatestPicksMostRecentlyRecorded(t *testing.T) {
	entries := []Sample{
		{MetricKey: "output", Value: 60, PeriodStart: day(1), PeriodEnd: day(7), RecordedAt: day(8)},
		{MetricKey: "output", Value: 72, PeriodStart: day(1), PeriodEnd: day(7), RecordedAt: day(10)},
		{MetricKey: "output", Value: 55, PeriodStart: day(8), PeriodEnd: day(14), RecordedAt: day(9)},
	}

	got := SampleLatest(entries, "output", day(1), day(7), day(30))
	if got == nil || *got != 72 {
		t.Fatalf("expected latest-recorded value 72, got %v", got)
	}
}

func TestSampleLatestFiltersByMetricAndWindow(t *testing.T) {
	entries := []Sample{
		{MetricKey: "output", Value: 60, PeriodStart: day(1), PeriodEnd: day(7), RecordedAt: day(8)},
		{MetricKey: "quality", Value: 99, PeriodStart: day(1), PeriodEnd: day(7), RecordedAt: day(8)},
		{MetricKey: "output", Value: 40, PeriodStart: day(20), PeriodEnd: day(27), RecordedAt: day(28)},
	}

	got := SampleLatest(entries, "output", day(1), day(10), day(30))
	if got == nil || *got != 60 {
		t.Fatalf("expected 60, got %v", got)
	}

	if got := SampleLatest(entries, "velocity", day(1), day(10), day(30)); got != nil {
		t.Fatalf("expected nil for unknown metric, got %v", *got)
	}
}

func TestSampleLatestPinsToEvaluationTime(t *testing.T) {
	entries := []Sample{
		{MetricKey: "output", Value: 60, PeriodStart: day(1), PeriodEnd: day(7), RecordedAt: day(8)},
		// Backfilled after the evaluation ran; must not change the result.
		{MetricKey: "output", Value: 95, PeriodStart: day(1), PeriodEnd: day(7), RecordedAt: day(20)},
	}

	got := SampleLatest(entries, "output", day(1), day(7), day(9))
	if got == nil || *got != 60 {
		t.Fatalf("expected pinned value 60, got %v", got)
	}
}

func TestSampleLatestNoMatchesReturnsNil(t *testing.T) {
	if got := SampleLatest(nil, "output", day(1), day(7), day(30)); got != nil {
		t.Fatalf("expected nil, got %v", *got)
	}
}

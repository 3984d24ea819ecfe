package evaluation

import (
	"errors"
	"testing"
)

func metricWith(status Status) MetricResult {
	return MetricResult{Name: string(status), Weight: 25, Classification: Classification{Status: status}}
}

func TestAggregateAllGrowth(t *testing.T) {
	result, err := Aggregate([]MetricResult{
		metricWith(StatusGrowth), metricWith(StatusGrowth), metricWith(StatusGrowth), metricWith(StatusGrowth),
	}, DefaultPolicy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.State != StateGrowth {
		t.Fatalf("expected growth, got %s", result.State)
	}
}

func TestAggregateGrowthAndStableIsStable(t *testing.T) {
	result, err := Aggregate([]MetricResult{
		metricWith(StatusGrowth), metricWith(StatusStable), metricWith(StatusGrowth),
	}, DefaultPolicy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.State != StateStable {
		t.Fatalf("expected stable, got %s", result.State)
	}
}

func TestAggregateSingleCriticalIsWarning(t *testing.T) {
	result, err := Aggregate([]MetricResult{
		metricWith(StatusGrowth), metricWith(StatusGrowth), metricWith(StatusCritical),
	}, DefaultPolicy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.State != StateWarning {
		t.Fatalf("expected warning for a lone critical metric, got %s", result.State)
	}
}

func TestAggregateTwoCriticalsEscalate(t *testing.T) {
	result, err := Aggregate([]MetricResult{
		metricWith(StatusCritical), metricWith(StatusCritical), metricWith(StatusStable),
	}, DefaultPolicy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.State != StateCritical {
		t.Fatalf("expected critical, got %s", result.State)
	}
	if result.Criticals != 2 {
		t.Fatalf("expected two criticals counted, got %d", result.Criticals)
	}
}

func TestAggregateEscalationCountConfigurable(t *testing.T) {
	policy := Policy{CriticalEscalationCount: 1, ExitAfterConsecutiveCritical: 2}
	result, err := Aggregate([]MetricResult{
		metricWith(StatusGrowth), metricWith(StatusCritical),
	}, policy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.State != StateCritical {
		t.Fatalf("expected critical with escalation count 1, got %s", result.State)
	}
}

func TestAggregateExcludesNoData(t *testing.T) {
	result, err := Aggregate([]MetricResult{
		metricWith(StatusNoData), metricWith(StatusGrowth),
	}, DefaultPolicy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.State != StateGrowth {
		t.Fatalf("expected growth with no_data excluded, got %s", result.State)
	}
	if result.NoData != 1 || result.Included != 1 {
		t.Fatalf("expected 1 no_data and 1 included, got %+v", result)
	}
}

func TestAggregateAllNoDataIsInsufficient(t *testing.T) {
	_, err := Aggregate([]MetricResult{metricWith(StatusNoData), metricWith(StatusNoData)}, DefaultPolicy())
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestAggregateNeverProducesExit(t *testing.T) {
	statuses := []Status{StatusGrowth, StatusStable, StatusWarning, StatusCritical}
	for _, a := range statuses {
		for _, b := range statuses {
			result, err := Aggregate([]MetricResult{metricWith(a), metricWith(b)}, DefaultPolicy())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.State == StateExit {
				t.Fatalf("aggregate produced exit for %s/%s", a, b)
			}
		}
	}
}

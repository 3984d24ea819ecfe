package evaluation

import (
	"strings"
	"testing"
)

func TestTransitionReasonOnDecline(t *testing.T) {
	metrics := []MetricResult{
		{Name: "on-time delivery rate", Classification: Classification{Status: StatusWarning}},
		{Name: "output volume", Classification: Classification{Status: StatusGrowth}},
	}
	reason := TransitionReason(StateStable, StateWarning, metrics)
	if !strings.Contains(reason, "on-time delivery rate fell below the warning threshold") {
		t.Fatalf("unexpected reason: %s", reason)
	}
	if strings.Contains(reason, "output volume") {
		t.Fatalf("healthy metric should not drive a decline reason: %s", reason)
	}
}

func TestTransitionReasonOnRecovery(t *testing.T) {
	metrics := []MetricResult{
		{Name: "quality score", Classification: Classification{Status: StatusStable}},
		{Name: "defect rate", Classification: Classification{Status: StatusWarning}},
	}
	reason := TransitionReason(StateWarning, StateStable, metrics)
	if !strings.Contains(reason, "quality score recovered above the stable threshold") {
		t.Fatalf("unexpected reason: %s", reason)
	}
}

func TestTransitionReasonFallsBackToStates(t *testing.T) {
	reason := TransitionReason(StateStable, StateWarning, nil)
	if !strings.Contains(reason, "stable") || !strings.Contains(reason, "warning") {
		t.Fatalf("expected fallback reason naming both states, got %s", reason)
	}
}

func TestSustainedCriticalReason(t *testing.T) {
	reason := SustainedCriticalReason(2)
	if !strings.Contains(reason, "2 consecutive evaluation periods") {
		t.Fatalf("unexpected reason: %s", reason)
	}
}

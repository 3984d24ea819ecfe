package tracker

import (
	"testing"

	"pact/internal/domain/evaluation"
	"pact/internal/domain/report"
)

func TestNoticesOnEnteringGrowth(t *testing.T) {
	notices := Notices(evaluation.StateStable, evaluation.StateGrowth, 0, evaluation.DefaultPolicy())
	if len(notices) != 1 || notices[0].ReportType != report.TypeSalaryAdjustment {
		t.Fatalf("expected salary adjustment notice, got %+v", notices)
	}
	if notices[0].Finalized {
		t.Fatal("salary adjustment starts as a draft")
	}
}

func TestNoticesOnStayingInGrowth(t *testing.T) {
	if notices := Notices(evaluation.StateGrowth, evaluation.StateGrowth, 0, evaluation.DefaultPolicy()); len(notices) != 0 {
		t.Fatalf("staying in growth should not retrigger, got %+v", notices)
	}
}

func TestNoticesOnRecoveryToStable(t *testing.T) {
	notices := Notices(evaluation.StateWarning, evaluation.StateStable, 0, evaluation.DefaultPolicy())
	if len(notices) != 1 || notices[0].ReportType != report.TypeRoleContinuation {
		t.Fatalf("expected role continuation notice, got %+v", notices)
	}
	if notices := Notices(evaluation.StateGrowth, evaluation.StateStable, 0, evaluation.DefaultPolicy()); len(notices) != 0 {
		t.Fatalf("easing from growth to stable is not a recovery, got %+v", notices)
	}
}

func TestNoticesPreStagePactOnFirstCritical(t *testing.T) {
	notices := Notices(evaluation.StateWarning, evaluation.StateCritical, 1, evaluation.DefaultPolicy())
	if len(notices) != 1 || notices[0].ReportType != report.TypePactReport {
		t.Fatalf("expected draft pact report, got %+v", notices)
	}
	if notices[0].Finalized {
		t.Fatal("pre-staged pact report must stay a draft")
	}
}

func TestNoticesFinalizePactOnExit(t *testing.T) {
	notices := Notices(evaluation.StateCritical, evaluation.StateExit, 2, evaluation.DefaultPolicy())
	if len(notices) != 1 || notices[0].ReportType != report.TypePactReport {
		t.Fatalf("expected pact report, got %+v", notices)
	}
	if !notices[0].Finalized || !notices[0].AmendDraft {
		t.Fatalf("exit pact report must finalize the staged draft, got %+v", notices[0])
	}
}

package tracker

import (
	"pact/internal/domain/evaluation"
	"pact/internal/domain/report"
)

// Notice is a report the engine should produce in response to an
// evaluation outcome.
type Notice struct {
	ReportType string
	Finalized  bool
	// AmendDraft reuses an open draft of the same type instead of
	// creating a new report.
	AmendDraft bool
}

// Notices maps one evaluation outcome onto the reports it triggers.
//
// Entering growth starts a salary adjustment review. Recovering to
// stable from warning or critical produces a role continuation report.
// The first critical period of a possible exit episode pre-stages a
// draft pact report; the exit itself finalizes it.
func Notices(from, to evaluation.State, streak int, policy evaluation.Policy) []Notice {
	var notices []Notice

	switch {
	case to == evaluation.StateExit:
		notices = append(notices, Notice{ReportType: report.TypePactReport, Finalized: true, AmendDraft: true})
	case to == evaluation.StateGrowth && from != evaluation.StateGrowth:
		notices = append(notices, Notice{ReportType: report.TypeSalaryAdjustment})
	case to == evaluation.StateStable && (from == evaluation.StateWarning || from == evaluation.StateCritical):
		notices = append(notices, Notice{ReportType: report.TypeRoleContinuation})
	case to == evaluation.StateCritical && streak == policy.ExitAfterConsecutiveCritical-1:
		notices = append(notices, Notice{ReportType: report.TypePactReport})
	}

	return notices
}

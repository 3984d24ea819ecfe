package tracker

import (
	"encoding/json"
	"time"

	"pact/internal/domain/evaluation"
	"pact/internal/domain/report"
)

type Transition struct {
	ID         string           `json:"id"`
	EmployeeID string           `json:"employeeId"`
	FromState  evaluation.State `json:"fromState"`
	ToState    evaluation.State `json:"toState"`
	OccurredAt time.Time        `json:"occurredAt"`
	Reason     string           `json:"reason"`
	Details    json.RawMessage  `json:"details,omitempty"`
}

// Outcome is the full result of evaluating one employee once.
type Outcome struct {
	EmployeeID   string                     `json:"employeeId"`
	Evaluated    bool                       `json:"evaluated"`
	FromState    evaluation.State           `json:"fromState"`
	ToState      evaluation.State           `json:"toState"`
	Transitioned bool                       `json:"transitioned"`
	Streak       int                        `json:"consecutiveCriticals"`
	EvaluatedAt  time.Time                  `json:"evaluatedAt"`
	Metrics      []evaluation.MetricResult  `json:"metrics"`
	TransitionID string                     `json:"transitionId,omitempty"`
	Reports      []report.Report            `json:"reports,omitempty"`
	Aggregate    evaluation.AggregateResult `json:"aggregate"`
}

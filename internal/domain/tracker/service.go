package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pact/internal/domain/contract"
	"pact/internal/domain/employee"
	"pact/internal/domain/evaluation"
	"pact/internal/domain/ledger"
	"pact/internal/domain/report"
)

// Mailer delivers notice emails about produced reports.
type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type Service struct {
	Store     *Store
	Employees *employee.Store
	Contracts *contract.Store
	Ledger    *ledger.Store
	Reports   *report.Service
	Policy    evaluation.Policy

	Mailer    Mailer
	EmailFrom string
	EmailTo   string
}

func NewService(store *Store, employees *employee.Store, contracts *contract.Store,
	ledgerStore *ledger.Store, reports *report.Service, policy evaluation.Policy) *Service {
	return &Service{
		Store:     store,
		Employees: employees,
		Contracts: contracts,
		Ledger:    ledgerStore,
		Reports:   reports,
		Policy:    policy,
	}
}

// Evaluate runs one full evaluation of one employee as of the given
// instant. The ledger read is pinned to asOf, so re-running with the
// same instant reproduces the same outcome even after backfills.
func (s *Service) Evaluate(ctx context.Context, employeeID string, asOf time.Time) (Outcome, error) {
	emp, err := s.Employees.ByID(ctx, employeeID)
	if err != nil {
		return Outcome{}, err
	}
	if emp.CurrentState == evaluation.StateExit {
		return Outcome{}, fmt.Errorf("%w: employee %s has exited", ErrInvalidState, employeeID)
	}

	cfg, err := s.Contracts.ByID(ctx, emp.RoleConfigID)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return Outcome{}, fmt.Errorf("%w: employee %s has no role config", evaluation.ErrConfiguration, employeeID)
		}
		return Outcome{}, err
	}

	windowEnd := asOf
	windowStart := asOf.AddDate(0, 0, -cfg.EvaluationPeriodDays)

	entries, err := s.Ledger.EntriesForEvaluation(ctx, employeeID, windowStart, windowEnd, asOf)
	if err != nil {
		return Outcome{}, err
	}
	samples := toSamples(entries)

	metrics := make([]evaluation.MetricResult, 0, len(cfg.Metrics))
	for _, def := range cfg.Metrics {
		value := evaluation.SampleLatest(samples, def.Name, windowStart, windowEnd, asOf)
		classification, err := evaluation.Classify(value, def.Thresholds, def.Direction)
		if err != nil {
			return Outcome{}, err
		}
		metrics = append(metrics, evaluation.MetricResult{
			MetricID:       def.ID,
			Name:           def.Name,
			Unit:           def.Unit,
			Weight:         def.Weight,
			Direction:      def.Direction,
			Thresholds:     def.Thresholds,
			Value:          value,
			Classification: classification,
		})
	}

	outcome := Outcome{
		EmployeeID:  employeeID,
		FromState:   emp.CurrentState,
		EvaluatedAt: asOf,
		Metrics:     metrics,
	}

	aggregate, err := evaluation.Aggregate(metrics, s.Policy)
	if errors.Is(err, evaluation.ErrInsufficientData) {
		// Nothing to judge on. The employee keeps their state and their
		// snapshot stays untouched for the next run.
		outcome.ToState = emp.CurrentState
		outcome.Streak = emp.ConsecutiveCriticals
		slog.Warn("evaluation skipped, no usable ledger data",
			"employeeId", employeeID, "windowStart", windowStart, "windowEnd", windowEnd)
		return outcome, nil
	}
	if err != nil {
		return Outcome{}, err
	}
	outcome.Evaluated = true
	outcome.Aggregate = aggregate

	newState, streak := nextState(emp.CurrentState, emp.ConsecutiveCriticals, aggregate.State, s.Policy)
	outcome.ToState = newState
	outcome.Streak = streak
	outcome.Transitioned = newState != emp.CurrentState

	reason := evaluation.TransitionReason(emp.CurrentState, newState, metrics)
	if newState == evaluation.StateExit {
		reason = evaluation.SustainedCriticalReason(streak)
	}

	detailsJSON, err := json.Marshal(map[string]any{
		"metrics":   metrics,
		"aggregate": aggregate,
	})
	if err != nil {
		return Outcome{}, err
	}

	transitionID, err := s.Store.RecordEvaluation(ctx, RecordParams{
		EmployeeID:      employeeID,
		PrevState:       emp.CurrentState,
		PrevEvaluatedAt: emp.LastEvaluatedAt,
		NewState:        newState,
		Streak:          streak,
		EvaluatedAt:     asOf,
		Reason:          reason,
		DetailsJSON:     detailsJSON,
	})
	if err != nil {
		return Outcome{}, err
	}
	outcome.TransitionID = transitionID

	outcome.Reports = s.emitNotices(ctx, outcome, windowStart, windowEnd)
	return outcome, nil
}

// nextState applies the sustained-critical exit rule on top of the
// aggregated state. Exit is only ever produced here.
func nextState(current evaluation.State, currentStreak int, aggregated evaluation.State, policy evaluation.Policy) (evaluation.State, int) {
	if aggregated != evaluation.StateCritical {
		return aggregated, 0
	}
	streak := currentStreak + 1
	if streak >= policy.ExitAfterConsecutiveCritical {
		return evaluation.StateExit, streak
	}
	return evaluation.StateCritical, streak
}

// emitNotices turns the outcome's notices into report rows. Report
// failures do not fail the committed evaluation; they are logged and
// the next run gets another chance.
func (s *Service) emitNotices(ctx context.Context, outcome Outcome, periodStart, periodEnd time.Time) []report.Report {
	var produced []report.Report
	for _, notice := range Notices(outcome.FromState, outcome.ToState, outcome.Streak, s.Policy) {
		content := report.BuildContent(notice.ReportType, outcome.Metrics)

		if notice.AmendDraft {
			if draft, err := s.Reports.Store.DraftByEmployeeAndType(ctx, outcome.EmployeeID, notice.ReportType); err == nil {
				finalized, err := s.Reports.Store.FinalizeWithContent(ctx, draft.ID, content, periodStart, periodEnd, outcome.EvaluatedAt)
				if err != nil {
					slog.Warn("finalizing staged report failed",
						"employeeId", outcome.EmployeeID, "reportId", draft.ID, "error", err)
					continue
				}
				produced = append(produced, finalized)
				continue
			} else if !errors.Is(err, report.ErrNotFound) {
				slog.Warn("looking up staged report failed", "employeeId", outcome.EmployeeID, "error", err)
				continue
			}
		}

		rep := report.Report{
			EmployeeID:  outcome.EmployeeID,
			Type:        notice.ReportType,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			Content:     content,
		}
		if notice.Finalized {
			rep.Status = report.StatusFinalized
			at := outcome.EvaluatedAt
			rep.FinalizedAt = &at
		}
		created, err := s.Reports.Create(ctx, rep)
		if err != nil {
			if errors.Is(err, report.ErrOverlappingReport) {
				slog.Warn("report already covers this period",
					"employeeId", outcome.EmployeeID, "type", notice.ReportType)
				continue
			}
			slog.Warn("report generation failed",
				"employeeId", outcome.EmployeeID, "type", notice.ReportType, "error", err)
			continue
		}
		produced = append(produced, created)
	}

	if s.Mailer != nil && s.EmailTo != "" {
		for _, rep := range produced {
			subject := fmt.Sprintf("New %s report for employee %s", rep.Type, rep.EmployeeID)
			body := fmt.Sprintf("A %s report (%s) was generated for employee %s covering %s to %s.",
				rep.Type, rep.Status, rep.EmployeeID,
				rep.PeriodStart.Format("2006-01-02"), rep.PeriodEnd.Format("2006-01-02"))
			if err := s.Mailer.Send(ctx, s.EmailFrom, s.EmailTo, subject, body); err != nil {
				slog.Warn("notice email failed", "reportId", rep.ID, "error", err)
			}
		}
	}
	return produced
}

func (s *Service) Transitions(ctx context.Context, employeeID string, limit, offset int) ([]Transition, error) {
	return s.Store.ListTransitions(ctx, employeeID, limit, offset)
}

func toSamples(entries []ledger.Entry) []evaluation.Sample {
	samples := make([]evaluation.Sample, 0, len(entries))
	for _, entry := range entries {
		samples = append(samples, evaluation.Sample{
			MetricKey:   entry.MetricKey,
			Value:       entry.Value,
			PeriodStart: entry.PeriodStart,
			PeriodEnd:   entry.PeriodEnd,
			RecordedAt:  entry.RecordedAt,
		})
	}
	return samples
}

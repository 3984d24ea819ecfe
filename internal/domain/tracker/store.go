package tracker

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"pact/internal/domain/evaluation"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// RecordParams carries one evaluation's outcome plus the employee
// snapshot it was computed from. The snapshot fields drive the
// compare-and-set guard.
type RecordParams struct {
	EmployeeID      string
	PrevState       evaluation.State
	PrevEvaluatedAt *time.Time
	NewState        evaluation.State
	Streak          int
	EvaluatedAt     time.Time
	Reason          string
	DetailsJSON     []byte
}

// RecordEvaluation commits an evaluation atomically. The employee row is
// only updated if it still matches the snapshot the evaluation read;
// otherwise another evaluation won and ErrConcurrentEvaluation is
// returned. A transition row is written when the state changed.
func (s *Store) RecordEvaluation(ctx context.Context, params RecordParams) (string, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
    UPDATE employees
    SET current_state = $1, consecutive_criticals = $2, last_evaluated_at = $3
    WHERE id = $4
      AND current_state = $5
      AND last_evaluated_at IS NOT DISTINCT FROM $6
  `, params.NewState, params.Streak, params.EvaluatedAt,
		params.EmployeeID, params.PrevState, params.PrevEvaluatedAt)
	if err != nil {
		return "", err
	}
	if tag.RowsAffected() == 0 {
		return "", ErrConcurrentEvaluation
	}

	var transitionID string
	if params.NewState != params.PrevState {
		if err := tx.QueryRow(ctx, `
      INSERT INTO transitions (employee_id, from_state, to_state, occurred_at, reason, details_json)
      VALUES ($1,$2,$3,$4,$5,$6)
      RETURNING id
    `, params.EmployeeID, params.PrevState, params.NewState,
			params.EvaluatedAt, params.Reason, params.DetailsJSON).Scan(&transitionID); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return transitionID, nil
}

func (s *Store) ListTransitions(ctx context.Context, employeeID string, limit, offset int) ([]Transition, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query := `
    SELECT id, employee_id, from_state, to_state, occurred_at, reason, COALESCE(details_json, 'null'::jsonb)
    FROM transitions
  `
	var args []any
	if employeeID != "" {
		query += ` WHERE employee_id = $1`
		args = append(args, employeeID)
	}
	args = append(args, limit, offset)
	query += ` ORDER BY occurred_at DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transitions []Transition
	for rows.Next() {
		var tr Transition
		if err := rows.Scan(&tr.ID, &tr.EmployeeID, &tr.FromState, &tr.ToState, &tr.OccurredAt, &tr.Reason, &tr.Details); err != nil {
			return nil, err
		}
		transitions = append(transitions, tr)
	}
	return transitions, rows.Err()
}

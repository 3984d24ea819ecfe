package ledger

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Append(ctx context.Context, entry Entry) (Entry, error) {
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO ledger_entries (employee_id, metric_key, value, unit, period_start, period_end, source_type)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id, recorded_at
  `, entry.EmployeeID, entry.MetricKey, entry.Value, entry.Unit,
		entry.PeriodStart, entry.PeriodEnd, entry.SourceType).Scan(&entry.ID, &entry.RecordedAt); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]Entry, error) {
	query := `
    SELECT id, employee_id, metric_key, value, unit, period_start, period_end, recorded_at, source_type
    FROM ledger_entries
    WHERE 1=1
  `
	var args []any
	next := func(value any) string {
		args = append(args, value)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.EmployeeID != "" {
		query += " AND employee_id = " + next(filter.EmployeeID)
	}
	if filter.MetricKey != "" {
		query += " AND metric_key = " + next(filter.MetricKey)
	}
	if !filter.From.IsZero() {
		query += " AND period_end >= " + next(filter.From)
	}
	if !filter.To.IsZero() {
		query += " AND period_end <= " + next(filter.To)
	}
	query += " ORDER BY recorded_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT " + next(filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + next(filter.Offset)
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.ID, &entry.EmployeeID, &entry.MetricKey, &entry.Value, &entry.Unit,
			&entry.PeriodStart, &entry.PeriodEnd, &entry.RecordedAt, &entry.SourceType); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// EntriesForEvaluation loads every entry for one employee whose period
// ended inside the evaluation window, recorded no later than asOf.
func (s *Store) EntriesForEvaluation(ctx context.Context, employeeID string, windowStart, windowEnd, asOf time.Time) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, metric_key, value, unit, period_start, period_end, recorded_at, source_type
    FROM ledger_entries
    WHERE employee_id = $1
      AND period_end >= $2
      AND period_end <= $3
      AND recorded_at <= $4
    ORDER BY recorded_at
  `, employeeID, windowStart, windowEnd, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.ID, &entry.EmployeeID, &entry.MetricKey, &entry.Value, &entry.Unit,
			&entry.PeriodStart, &entry.PeriodEnd, &entry.RecordedAt, &entry.SourceType); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Delete removes one entry and returns the removed row so callers can
// record it in the audit trail.
func (s *Store) Delete(ctx context.Context, id string) (Entry, error) {
	var entry Entry
	if err := s.DB.QueryRow(ctx, `
    DELETE FROM ledger_entries
    WHERE id = $1
    RETURNING id, employee_id, metric_key, value, unit, period_start, period_end, recorded_at, source_type
  `, id).Scan(&entry.ID, &entry.EmployeeID, &entry.MetricKey, &entry.Value, &entry.Unit,
		&entry.PeriodStart, &entry.PeriodEnd, &entry.RecordedAt, &entry.SourceType); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	return entry, nil
}

package report

import (
	"context"
	"encoding/json"
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

// Create inserts a draft report unless a report of the same type for the
// same employee already covers an overlapping period. The check and the
// insert share a transaction so concurrent generators cannot both pass.
func (s *Store) Create(ctx context.Context, rep Report) (Report, error) {
	contentJSON, err := json.Marshal(rep.Content)
	if err != nil {
		return Report{}, err
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Report{}, err
	}
	defer tx.Rollback(ctx)

	var overlapping int
	if err := tx.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM reports
    WHERE employee_id = $1 AND report_type = $2
      AND period_start <= $4 AND period_end >= $3
  `, rep.EmployeeID, rep.Type, rep.PeriodStart, rep.PeriodEnd).Scan(&overlapping); err != nil {
		return Report{}, err
	}
	if overlapping > 0 {
		return Report{}, ErrOverlappingReport
	}

	status := rep.Status
	if status == "" {
		status = StatusDraft
	}
	if err := tx.QueryRow(ctx, `
    INSERT INTO reports (employee_id, report_type, status, period_start, period_end, finalized_at, content_json)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id, status, generated_at
  `, rep.EmployeeID, rep.Type, status, rep.PeriodStart, rep.PeriodEnd, rep.FinalizedAt, contentJSON).
		Scan(&rep.ID, &rep.Status, &rep.GeneratedAt); err != nil {
		return Report{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Report{}, err
	}
	return rep, nil
}

const reportColumns = `
  id, employee_id, report_type, status, period_start, period_end,
  generated_at, finalized_at, content_json, file_url
`

func scanReport(row pgx.Row) (Report, error) {
	var rep Report
	var contentJSON []byte
	if err := row.Scan(&rep.ID, &rep.EmployeeID, &rep.Type, &rep.Status, &rep.PeriodStart, &rep.PeriodEnd,
		&rep.GeneratedAt, &rep.FinalizedAt, &contentJSON, &rep.FileURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Report{}, ErrNotFound
		}
		return Report{}, err
	}
	if err := json.Unmarshal(contentJSON, &rep.Content); err != nil {
		rep.Content = Content{}
	}
	return rep, nil
}

func (s *Store) ByID(ctx context.Context, id string) (Report, error) {
	return scanReport(s.DB.QueryRow(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = $1`, id))
}

func (s *Store) List(ctx context.Context, employeeID, reportType, status string) ([]Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE 1=1`
	var args []any
	if employeeID != "" {
		args = append(args, employeeID)
		query += ` AND employee_id = $1`
	}
	if reportType != "" {
		args = append(args, reportType)
		query += ` AND report_type = $` + strconv.Itoa(len(args))
	}
	if status != "" {
		args = append(args, status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY generated_at DESC`

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

// Finalize is one way. The conditional update makes concurrent finalize
// calls race safely; the loser sees the row already finalized.
func (s *Store) Finalize(ctx context.Context, id string, at time.Time) (Report, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE reports
    SET status = $1, finalized_at = $2
    WHERE id = $3 AND status = $4
  `, StatusFinalized, at, id, StatusDraft)
	if err != nil {
		return Report{}, err
	}
	if tag.RowsAffected() == 0 {
		if _, err := s.ByID(ctx, id); err != nil {
			return Report{}, err
		}
		return Report{}, ErrAlreadyFinalized
	}
	return s.ByID(ctx, id)
}

// DraftByEmployeeAndType finds an open draft so later stages of the
// same episode amend it instead of stacking duplicates.
func (s *Store) DraftByEmployeeAndType(ctx context.Context, employeeID, reportType string) (Report, error) {
	return scanReport(s.DB.QueryRow(ctx, `
    SELECT `+reportColumns+`
    FROM reports
    WHERE employee_id = $1 AND report_type = $2 AND status = $3
    ORDER BY generated_at DESC
    LIMIT 1
  `, employeeID, reportType, StatusDraft))
}

// FinalizeWithContent replaces a draft's body and finalizes it in one
// statement.
func (s *Store) FinalizeWithContent(ctx context.Context, id string, content Content, periodStart, periodEnd, at time.Time) (Report, error) {
	contentJSON, err := json.Marshal(content)
	if err != nil {
		return Report{}, err
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE reports
    SET status = $1, finalized_at = $2, content_json = $3, period_start = $4, period_end = $5
    WHERE id = $6 AND status = $7
  `, StatusFinalized, at, contentJSON, periodStart, periodEnd, id, StatusDraft)
	if err != nil {
		return Report{}, err
	}
	if tag.RowsAffected() == 0 {
		return Report{}, ErrAlreadyFinalized
	}
	return s.ByID(ctx, id)
}

func (s *Store) SetFileURL(ctx context.Context, id, fileURL string) error {
	_, err := s.DB.Exec(ctx, `UPDATE reports SET file_url = $1 WHERE id = $2`, fileURL, id)
	return err
}

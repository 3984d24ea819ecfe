package employee

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pact/internal/domain/evaluation"
)

var ErrNotFound = errors.New("employee not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
  id, COALESCE(user_id::text, ''), first_name, last_name, email,
  role_config_id, current_state, consecutive_criticals, last_evaluated_at, created_at
`

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	if err := row.Scan(&emp.ID, &emp.UserID, &emp.FirstName, &emp.LastName, &emp.Email,
		&emp.RoleConfigID, &emp.CurrentState, &emp.ConsecutiveCriticals, &emp.LastEvaluatedAt, &emp.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, ErrNotFound
		}
		return Employee{}, err
	}
	return emp, nil
}

func (s *Store) Create(ctx context.Context, emp Employee) (Employee, error) {
	return scanEmployee(s.DB.QueryRow(ctx, `
    INSERT INTO employees (user_id, first_name, last_name, email, role_config_id)
    VALUES (NULLIF($1,'')::uuid, $2, $3, $4, $5)
    RETURNING `+employeeColumns,
		emp.UserID, emp.FirstName, emp.LastName, emp.Email, emp.RoleConfigID))
}

func (s *Store) ByID(ctx context.Context, id string) (Employee, error) {
	return scanEmployee(s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+` FROM employees WHERE id = $1
  `, id))
}

func (s *Store) List(ctx context.Context, state evaluation.State) ([]Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees`
	var args []any
	if state != "" {
		query += " WHERE current_state = $1"
		args = append(args, state)
	}
	query += " ORDER BY created_at"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// ActiveIDs lists every employee who can still be evaluated.
func (s *Store) ActiveIDs(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id FROM employees WHERE current_state <> $1 ORDER BY created_at
  `, evaluation.StateExit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

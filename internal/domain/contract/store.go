package contract

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pact/internal/domain/evaluation"
)

var ErrNotFound = errors.New("role config not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// CreateVersion inserts a new role config version. Existing versions are
// never updated in place; an employee's history always resolves against
// the version that was current when it was written.
func (s *Store) CreateVersion(ctx context.Context, cfg RoleConfig) (RoleConfig, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return RoleConfig{}, err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `
    INSERT INTO role_configs (name, department, evaluation_period_days, version)
    VALUES ($1, $2, $3, (SELECT COALESCE(MAX(version), 0) + 1 FROM role_configs WHERE name = $1))
    RETURNING id, version, created_at
  `, cfg.Name, cfg.Department, cfg.EvaluationPeriodDays).Scan(&cfg.ID, &cfg.Version, &cfg.CreatedAt); err != nil {
		return RoleConfig{}, err
	}

	for i := range cfg.Metrics {
		metric := &cfg.Metrics[i]
		if err := tx.QueryRow(ctx, `
      INSERT INTO metric_definitions
        (role_config_id, name, unit, weight, direction,
         threshold_growth, threshold_stable, threshold_warning, threshold_critical)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
      RETURNING id
    `, cfg.ID, metric.Name, metric.Unit, metric.Weight, metric.Direction,
			metric.Thresholds.Growth, metric.Thresholds.Stable,
			metric.Thresholds.Warning, metric.Thresholds.Critical).Scan(&metric.ID); err != nil {
			return RoleConfig{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return RoleConfig{}, err
	}
	return cfg, nil
}

func (s *Store) ByID(ctx context.Context, id string) (RoleConfig, error) {
	var cfg RoleConfig
	if err := s.DB.QueryRow(ctx, `
    SELECT id, name, department, evaluation_period_days, version, created_at
    FROM role_configs
    WHERE id = $1
  `, id).Scan(&cfg.ID, &cfg.Name, &cfg.Department, &cfg.EvaluationPeriodDays, &cfg.Version, &cfg.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return RoleConfig{}, ErrNotFound
		}
		return RoleConfig{}, err
	}

	metrics, err := s.metricsForRole(ctx, cfg.ID)
	if err != nil {
		return RoleConfig{}, err
	}
	cfg.Metrics = metrics
	return cfg, nil
}

func (s *Store) CurrentByName(ctx context.Context, name string) (RoleConfig, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    SELECT id
    FROM role_configs
    WHERE name = $1
    ORDER BY version DESC
    LIMIT 1
  `, name).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return RoleConfig{}, ErrNotFound
		}
		return RoleConfig{}, err
	}
	return s.ByID(ctx, id)
}

// List returns the current version of every role config.
func (s *Store) List(ctx context.Context) ([]RoleConfig, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT DISTINCT ON (name) id, name, department, evaluation_period_days, version, created_at
    FROM role_configs
    ORDER BY name, version DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []RoleConfig
	for rows.Next() {
		var cfg RoleConfig
		if err := rows.Scan(&cfg.ID, &cfg.Name, &cfg.Department, &cfg.EvaluationPeriodDays, &cfg.Version, &cfg.CreatedAt); err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range configs {
		metrics, err := s.metricsForRole(ctx, configs[i].ID)
		if err != nil {
			return nil, err
		}
		configs[i].Metrics = metrics
	}
	return configs, nil
}

// Referenced reports whether any employee is assigned to this version.
func (s *Store) Referenced(ctx context.Context, roleConfigID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM employees WHERE role_config_id = $1
  `, roleConfigID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) metricsForRole(ctx context.Context, roleConfigID string) ([]MetricDefinition, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, unit, weight, direction,
           threshold_growth, threshold_stable, threshold_warning, threshold_critical
    FROM metric_definitions
    WHERE role_config_id = $1
    ORDER BY name
  `, roleConfigID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metrics []MetricDefinition
	for rows.Next() {
		var metric MetricDefinition
		var thresholds evaluation.Thresholds
		if err := rows.Scan(&metric.ID, &metric.Name, &metric.Unit, &metric.Weight, &metric.Direction,
			&thresholds.Growth, &thresholds.Stable, &thresholds.Warning, &thresholds.Critical); err != nil {
			return nil, err
		}
		metric.Thresholds = thresholds
		metrics = append(metrics, metric)
	}
	return metrics, rows.Err()
}

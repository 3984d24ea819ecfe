package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"pact/internal/domain/auth"
	"pact/internal/platform/config"
)

// Seed ensures the bootstrap admin account exists. Role configs,
// employees and ledger data come in through the API.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	email := strings.TrimSpace(cfg.SeedAdminEmail)
	if email == "" {
		return nil
	}
	return ensureAdminUser(ctx, pool, email, cfg.SeedAdminPassword)
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	var id string
	if err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id); err == nil {
		return nil
	}

	if password == "" {
		password = "change-me"
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO users (email, password_hash, role, status)
    VALUES ($1, $2, $3, 'active')
    ON CONFLICT (email) DO NOTHING
  `, email, hash, auth.RoleAdmin)
	return err
}

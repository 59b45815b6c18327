package postgresql

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/policlinic/clinic-backend-go/internal/pkg/database"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migration is one forward-only schema change.
type Migration struct {
	Version     int
	Description string
	File        string
}

var migrations = []Migration{
	{Version: 1, Description: "Initial clinic schema", File: "migrations/001_init.sql"},
}

// LatestSchemaVersion is the schema version this build expects.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].Version
}

// Migrate applies all pending migrations, each in its own transaction.
func Migrate(ctx context.Context, db *database.DB, logger *slog.Logger) error {
	if _, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	var current int
	if err := db.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		script, err := migrationFS.ReadFile(m.File)
		if err != nil {
			return fmt.Errorf("failed to read migration %d: %w", m.Version, err)
		}

		err = WithTransaction(ctx, db, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, string(script)); err != nil {
				return fmt.Errorf("migration %d failed: %w", m.Version, err)
			}
			_, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, description) VALUES ($1, $2)`, m.Version, m.Description)
			return err
		})
		if err != nil {
			return err
		}

		logger.InfoContext(ctx, "applied migration",
			slog.Int("version", m.Version),
			slog.String("description", m.Description),
		)
	}
	return nil
}

// SchemaVersion reports the highest applied migration, or 0 on an empty database.
func SchemaVersion(ctx context.Context, db *database.DB) (int, error) {
	var exists bool
	if err := db.QueryRow(ctx, `SELECT to_regclass('schema_migrations') IS NOT NULL`).Scan(&exists); err != nil {
		return 0, fmt.Errorf("failed to inspect schema: %w", err)
	}
	if !exists {
		return 0, nil
	}

	var version int
	if err := db.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

package main

import (
	"fmt"
	"log/slog"

	"github.com/policlinic/clinic-backend-go/internal/repository/postgresql"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Apply the embedded schema migrations that have not run yet.

Each migration runs in its own transaction and is recorded in schema_migrations.`,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current migration status without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetBool("status")
	ctx := cmd.Context()

	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if status {
		current, err := postgresql.SchemaVersion(ctx, db)
		if err != nil {
			return err
		}
		fmt.Printf("%s %d\n", headerStyle.Render("Current version:"), current)
		fmt.Printf("%s %d\n", headerStyle.Render("Latest version: "), postgresql.LatestSchemaVersion())
		return nil
	}

	slog.Info("Running database migrations", "database", cfg.Database.Name, "host", cfg.Database.Host)
	if err := postgresql.Migrate(ctx, db, slog.Default()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Println(successStyle.Render("Database migrations completed"))
	return nil
}

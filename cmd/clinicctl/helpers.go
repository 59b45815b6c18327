package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/policlinic/clinic-backend-go/internal/app"
	"github.com/policlinic/clinic-backend-go/internal/pkg/database"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	lossStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

func openDB(ctx context.Context) (*database.DB, error) {
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// openServices connects to the database and wires the services. The returned func closes the pool.
func openServices(ctx context.Context) (*app.Services, func(), error) {
	db, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	return app.NewServices(db, cfg.Payroll, slog.Default(), time.Now), db.Close, nil
}

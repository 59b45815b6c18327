package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/policlinic/clinic-backend-go/internal/app"
	"github.com/policlinic/clinic-backend-go/internal/config"
	appHTTP "github.com/policlinic/clinic-backend-go/internal/handler/http"
	"github.com/policlinic/clinic-backend-go/internal/pkg/cron"
	"github.com/policlinic/clinic-backend-go/internal/pkg/database"
	"github.com/policlinic/clinic-backend-go/internal/pkg/jwt"
	"github.com/policlinic/clinic-backend-go/internal/repository/postgresql"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "clinic-backend"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	if err := postgresql.Migrate(ctx, db, logger); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}

	services := app.NewServices(db, cfg.Payroll, logger, time.Now)
	scheduler := cron.NewScheduler(logger)
	cron.NewDigestJobs(services.Staff, services.Payroll, services.Report, logger, time.Now).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Timesheet: appHTTP.NewTimesheetHandler(services.Timesheet),
		Doctor:    appHTTP.NewDoctorHandler(services.Commission),
		Income:    appHTTP.NewIncomeHandler(services.Income, services.Report),
		Expense:   appHTTP.NewExpenseHandler(services.Expense),
		Payroll:   appHTTP.NewPayrollHandler(services.Payroll),
		Report:    appHTTP.NewReportHandler(services.Report),
		Dashboard: appHTTP.NewDashboardHandler(services.Report, time.Now),
	}, appHTTP.RouterOptions{
		Logger:         logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}

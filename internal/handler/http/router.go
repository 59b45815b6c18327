package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/policlinic/clinic-backend-go/internal/handler/http/middleware"
	"github.com/policlinic/clinic-backend-go/internal/handler/http/response"
	"github.com/policlinic/clinic-backend-go/internal/pkg/jwt"
)

// Handlers groups the HTTP handlers mounted under /api/v1.
type Handlers struct {
	Timesheet TimesheetHandler
	Doctor    DoctorHandler
	Income    IncomeHandler
	Expense   ExpenseHandler
	Payroll   PayrollHandler
	Report    ReportHandler
	Dashboard DashboardHandler
}

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  slog.LevelDebug,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

		// Any authenticated staff member
		r.Get("/dashboard/me", h.Dashboard.Me)

		// Clinic-wide, administrators only
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdministrator)

			r.Get("/dashboard/clinic", h.Dashboard.Clinic)

			r.Route("/timesheets", func(r chi.Router) {
				r.Get("/", h.Timesheet.List)
				r.Post("/", h.Timesheet.Create)
				r.Get("/hours", h.Timesheet.Hours)
				r.Put("/{id}", h.Timesheet.Update)
				r.Delete("/{id}", h.Timesheet.Delete)
			})

			r.Route("/doctors", func(r chi.Router) {
				r.Get("/by-patient-surname", h.Doctor.ByPatientSurname)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/stats", h.Doctor.Stats)
					r.Get("/stats/lifetime", h.Doctor.LifetimeStats)
					r.Get("/overview", h.Doctor.Overview)
					r.Get("/monthly", h.Doctor.Monthly)
				})
			})

			r.Route("/income", func(r chi.Router) {
				r.Get("/", h.Income.List)
				r.Post("/", h.Income.Create)
				r.Get("/summary", h.Income.Summary)
				r.Delete("/{id}", h.Income.Delete)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", h.Expense.List)
				r.Post("/", h.Expense.Create)
				r.Delete("/{id}", h.Expense.Delete)
			})

			r.Route("/expense-categories", func(r chi.Router) {
				r.Get("/", h.Expense.ListCategories)
				r.Post("/", h.Expense.CreateCategory)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/suggestion", h.Payroll.Suggestion)
				r.Post("/suggestion/accept", h.Payroll.AcceptSuggestion)
				r.Get("/payments", h.Payroll.ListPayments)
				r.Post("/payments", h.Payroll.RecordPayment)
				r.Delete("/payments/{id}", h.Payroll.DeletePayment)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/daily-pnl", h.Report.DailyPnL)
				r.Get("/avg-payment-per-patient", h.Report.AvgPaymentPerPatient)
				r.Get("/avg-salary-by-role", h.Report.AvgSalaryByRole)
				r.Get("/monthly-outcome", h.Report.MonthlyOutcome)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/policlinic/clinic-backend-go/internal/domain/income"
	"github.com/policlinic/clinic-backend-go/internal/domain/staff"
	"github.com/policlinic/clinic-backend-go/internal/pkg/jwt"
	"github.com/policlinic/clinic-backend-go/internal/repository/memory"
	commissionService "github.com/policlinic/clinic-backend-go/internal/service/commission"
	expenseService "github.com/policlinic/clinic-backend-go/internal/service/expense"
	incomeService "github.com/policlinic/clinic-backend-go/internal/service/income"
	payrollService "github.com/policlinic/clinic-backend-go/internal/service/payroll"
	reportService "github.com/policlinic/clinic-backend-go/internal/service/report"
	timesheetService "github.com/policlinic/clinic-backend-go/internal/service/timesheet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

var handlerTestNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type testServer struct {
	handler http.Handler
	jwt     jwt.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)
	now := func() time.Time { return handlerTestNow }

	store := memory.NewStore()
	staffRepo := memory.NewStaffRepository(store)
	incomeRepo := memory.NewIncomeRepository(store)
	patientRepo := memory.NewPatientRepository(store)
	expenseRepo := memory.NewExpenseRepository(store)
	salaryRepo := memory.NewSalaryRepository(store)
	settingsRepo := memory.NewSettingsRepository(store)

	for _, m := range []staff.Member{
		{ID: "doc-1", FirstName: "Ana", LastName: "Kovac", Role: staff.Doctor{CommissionRate: decimal.RequireFromString("0.30")}, IsActive: true},
		{ID: "admin-1", FirstName: "Iva", LastName: "Babic", Role: staff.Administrator{BaseSalary: decimal.NewFromInt(3000)}, IsActive: true},
		{ID: "as-1", FirstName: "Mia", LastName: "Juric", Role: staff.Assistant{HourlyRate: decimal.NewFromInt(100)}, IsActive: true},
	} {
		_, err := staffRepo.Create(ctx, m)
		require.NoError(t, err)
	}
	_, err := patientRepo.Create(ctx, income.Patient{ID: "p-1", LastName: "Horvat"})
	require.NoError(t, err)

	calculator := timesheetService.DefaultCalculator()
	timesheets := timesheetService.NewTimesheetService(memory.NewTimesheetRepository(store), staffRepo, calculator, logger)
	payroll := payrollService.NewPayrollService(store, staffRepo, salaryRepo, timesheets, logger, now)
	reports := reportService.NewReportService(staffRepo, incomeRepo, expenseRepo, salaryRepo, settingsRepo, timesheets, payroll, calculator, now)

	jwtService := jwt.NewJWTService(handlerTestSecret, "1h")
	router := NewRouter(jwtService, Handlers{
		Timesheet: NewTimesheetHandler(timesheets),
		Doctor:    NewDoctorHandler(commissionService.NewCommissionService(staffRepo, incomeRepo, now)),
		Income:    NewIncomeHandler(incomeService.NewIncomeService(store, incomeRepo, patientRepo, staffRepo, salaryRepo, logger), reports),
		Expense:   NewExpenseHandler(expenseService.NewExpenseService(expenseRepo)),
		Payroll:   NewPayrollHandler(payroll),
		Report:    NewReportHandler(reports),
		Dashboard: NewDashboardHandler(reports, now),
	}, RouterOptions{AllowedOrigins: []string{"http://localhost:3000"}})

	return &testServer{handler: router, jwt: jwtService}
}

func (s *testServer) token(t *testing.T, staffID string, role staff.RoleName) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken(staffID, role)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec.Code, env
}

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/api/v1/reports/daily-pnl?from=2024-06-01&to=2024-06-02", "", nil)

	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)
}

func TestRouter_RejectsForeignSignature(t *testing.T) {
	s := newTestServer(t)
	other := jwt.NewJWTService("another-secret", "1h")
	token, _, err := other.GenerateAccessToken("admin-1", staff.RoleAdministrator)
	require.NoError(t, err)

	code, _ := s.do(t, http.MethodGet, "/api/v1/reports/daily-pnl?from=2024-06-01&to=2024-06-02", token, nil)

	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRouter_ClinicRoutesNeedAdministrator(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		role staff.RoleName
		want int
	}{
		{name: "assistant", role: staff.RoleAssistant, want: http.StatusForbidden},
		{name: "doctor", role: staff.RoleDoctor, want: http.StatusForbidden},
		{name: "administrator", role: staff.RoleAdministrator, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := s.do(t, http.MethodGet, "/api/v1/dashboard/clinic", s.token(t, "admin-1", tt.role), nil)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestRouter_RangeParameters(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "admin-1", staff.RoleAdministrator)

	tests := []struct {
		name     string
		query    string
		wantCode int
		wantErr  string
	}{
		{name: "missing to", query: "from=2024-06-01", wantCode: http.StatusUnprocessableEntity, wantErr: "VALIDATION_ERROR"},
		{name: "malformed date", query: "from=2024-13-01&to=2024-06-02", wantCode: http.StatusBadRequest, wantErr: "INVALID_RANGE"},
		{name: "inverted", query: "from=2024-06-10&to=2024-06-01", wantCode: http.StatusBadRequest, wantErr: "INVALID_RANGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := s.do(t, http.MethodGet, "/api/v1/reports/daily-pnl?"+tt.query, token, nil)

			assert.Equal(t, tt.wantCode, code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantErr, env.Error.Code)
		})
	}
}

func TestRouter_DailyPnLIsDense(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/api/v1/reports/daily-pnl?from=2024-06-01&to=2024-06-07", s.token(t, "admin-1", staff.RoleAdministrator), nil)

	require.Equal(t, http.StatusOK, code)
	var rows []struct {
		Day string          `json:"day"`
		PnL decimal.Decimal `json:"pnl"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 7)
	assert.Equal(t, "2024-06-01", rows[0].Day)
	assert.True(t, rows[6].PnL.IsZero())
}

func TestRouter_RecordIncomePaysCommission(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "admin-1", staff.RoleAdministrator)
	patientID := "p-1"

	code, env := s.do(t, http.MethodPost, "/api/v1/income", token, income.CreateIncomeRequest{
		DoctorID:      "doc-1",
		PatientID:     &patientID,
		Amount:        decimal.NewFromInt(1500),
		PaymentMethod: income.PaymentMethodCash,
		ServiceDate:   "2024-06-03",
	})
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, env.Success)

	code, env = s.do(t, http.MethodGet, "/api/v1/payroll/payments?staff_id=doc-1&from=2024-06-01&to=2024-06-30", token, nil)
	require.Equal(t, http.StatusOK, code)

	var payments []struct {
		Amount decimal.Decimal `json:"amount"`
		Kind   string          `json:"kind"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payments))
	require.Len(t, payments, 1)
	assert.True(t, decimal.NewFromInt(450).Equal(payments[0].Amount))
	assert.Equal(t, "commission", payments[0].Kind)

	code, env = s.do(t, http.MethodGet, "/api/v1/doctors/doc-1/stats?from=2024-06-01&to=2024-06-30", token, nil)
	require.Equal(t, http.StatusOK, code)

	var stats struct {
		TotalIncome     decimal.Decimal `json:"total_income"`
		TotalCommission decimal.Decimal `json:"total_commission"`
		VisitCount      int             `json:"visit_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.True(t, decimal.NewFromInt(1500).Equal(stats.TotalIncome))
	assert.True(t, decimal.NewFromInt(450).Equal(stats.TotalCommission))
	assert.Equal(t, 1, stats.VisitCount)
}

func TestRouter_InvalidBody(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodPost, "/api/v1/income", s.token(t, "admin-1", staff.RoleAdministrator), "{not json")

	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestRouter_ErrorKinds(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "admin-1", staff.RoleAdministrator)

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantErr  string
	}{
		{
			name:     "stats for an administrator",
			path:     "/api/v1/doctors/admin-1/stats?from=2024-06-01&to=2024-06-30",
			wantCode: http.StatusBadRequest,
			wantErr:  "INVALID_DOCTOR",
		},
		{
			name:     "suggestion for a doctor",
			path:     "/api/v1/payroll/suggestion?staff_id=doc-1&from=2024-06-01&to=2024-06-30",
			wantCode: http.StatusForbidden,
			wantErr:  "NOT_APPLICABLE",
		},
		{
			name:     "suggestion for a stranger",
			path:     "/api/v1/payroll/suggestion?staff_id=nobody&from=2024-06-01&to=2024-06-30",
			wantCode: http.StatusNotFound,
			wantErr:  "UNKNOWN_STAFF",
		},
		{
			name:     "surname search without a query",
			path:     "/api/v1/doctors/by-patient-surname",
			wantCode: http.StatusUnprocessableEntity,
			wantErr:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := s.do(t, http.MethodGet, tt.path, token, nil)

			assert.Equal(t, tt.wantCode, code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantErr, env.Error.Code)
		})
	}
}

func TestRouter_SuggestionAndAccept(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "admin-1", staff.RoleAdministrator)

	code, _ := s.do(t, http.MethodPost, "/api/v1/timesheets", token, map[string]string{
		"staff_id":   "as-1",
		"work_date":  "2024-06-03",
		"start_time": "08:00",
		"end_time":   "18:00",
	})
	require.Equal(t, http.StatusCreated, code)

	code, env := s.do(t, http.MethodGet, "/api/v1/payroll/suggestion?staff_id=as-1&from=2024-06-01&to=2024-06-30", token, nil)
	require.Equal(t, http.StatusOK, code)

	var suggestion struct {
		Amount decimal.Decimal `json:"amount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &suggestion))
	assert.True(t, decimal.NewFromInt(1100).Equal(suggestion.Amount))

	body := map[string]string{"staff_id": "as-1", "from": "2024-06-01", "to": "2024-06-30"}
	code, _ = s.do(t, http.MethodPost, "/api/v1/payroll/suggestion/accept", token, body)
	assert.Equal(t, http.StatusCreated, code)

	code, env = s.do(t, http.MethodPost, "/api/v1/payroll/suggestion/accept", token, body)
	assert.Equal(t, http.StatusConflict, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOTHING_TO_PAY", env.Error.Code)
}

func TestRouter_MyDashboard(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/api/v1/dashboard/me", s.token(t, "as-1", staff.RoleAssistant), nil)

	require.Equal(t, http.StatusOK, code)
	var dashboard struct {
		Staff struct {
			ID string `json:"id"`
		} `json:"staff"`
		From string `json:"from"`
		To   string `json:"to"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &dashboard))
	assert.Equal(t, "as-1", dashboard.Staff.ID)
	assert.Equal(t, "2024-06-01", dashboard.From)
	assert.Equal(t, "2024-06-15", dashboard.To)
}

func TestRouter_MyDashboardForDoctor(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/api/v1/dashboard/me?from=2024-06-01&to=2024-06-30", s.token(t, "doc-1", staff.RoleDoctor), nil)

	assert.Equal(t, http.StatusForbidden, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_APPLICABLE", env.Error.Code)
}

package cron

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/policlinic/clinic-backend-go/internal/domain/income"
	"github.com/policlinic/clinic-backend-go/internal/domain/staff"
	"github.com/policlinic/clinic-backend-go/internal/domain/timesheet"
	"github.com/policlinic/clinic-backend-go/internal/repository/memory"
	payrollService "github.com/policlinic/clinic-backend-go/internal/service/payroll"
	reportService "github.com/policlinic/clinic-backend-go/internal/service/report"
	timesheetService "github.com/policlinic/clinic-backend-go/internal/service/timesheet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler(slog.New(slog.DiscardHandler))
	var ok, failed atomic.Int32
	s.AddJob("ok", time.Hour, func(ctx context.Context) error {
		ok.Add(1)
		return nil
	})
	s.AddJob("failing", time.Hour, func(ctx context.Context) error {
		failed.Add(1)
		return errors.New("boom")
	})

	s.RunOnce(context.Background())

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(1), failed.Load())
}

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler(slog.New(slog.DiscardHandler))
	ran := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start(context.Background())

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	s := NewScheduler(slog.New(slog.DiscardHandler))

	assert.NotPanics(t, s.Stop)
}

type digestFixture struct {
	jobs *DigestJobs
	logs *bytes.Buffer
}

func newDigestFixture(t *testing.T) *digestFixture {
	t.Helper()
	ctx := context.Background()
	now := func() time.Time { return fixedNow }
	discard := slog.New(slog.DiscardHandler)

	store := memory.NewStore()
	staffRepo := memory.NewStaffRepository(store)
	incomeRepo := memory.NewIncomeRepository(store)
	patientRepo := memory.NewPatientRepository(store)
	salaryRepo := memory.NewSalaryRepository(store)

	for _, m := range []staff.Member{
		{ID: "doc-1", LastName: "Kovac", Role: staff.Doctor{CommissionRate: decimal.RequireFromString("0.30")}, IsActive: true},
		{ID: "admin-1", LastName: "Babic", Role: staff.Administrator{BaseSalary: decimal.NewFromInt(3000)}, IsActive: true},
		{ID: "admin-old", LastName: "Timer", Role: staff.Administrator{BaseSalary: decimal.NewFromInt(9000)}, IsActive: false},
		{ID: "as-1", LastName: "Juric", Role: staff.Assistant{HourlyRate: decimal.NewFromInt(100)}, IsActive: true},
	} {
		_, err := staffRepo.Create(ctx, m)
		require.NoError(t, err)
	}

	_, err := patientRepo.Create(ctx, income.Patient{ID: "p-1", LastName: "Horvat"})
	require.NoError(t, err)
	_, err = incomeRepo.Create(ctx, income.Record{
		ID:            "income-1",
		DoctorID:      "doc-1",
		PatientID:     "p-1",
		Amount:        decimal.NewFromInt(700),
		PaymentMethod: income.PaymentMethodCash,
		ServiceDate:   time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	calculator := timesheetService.DefaultCalculator()
	timesheets := timesheetService.NewTimesheetService(memory.NewTimesheetRepository(store), staffRepo, calculator, discard)
	_, err = timesheets.Create(ctx, timesheet.CreateEntryRequest{StaffID: "as-1", WorkDate: "2024-06-03", StartTime: "08:00", EndTime: "18:00"})
	require.NoError(t, err)

	payroll := payrollService.NewPayrollService(store, staffRepo, salaryRepo, timesheets, discard, now)
	reports := reportService.NewReportService(
		staffRepo,
		incomeRepo,
		memory.NewExpenseRepository(store),
		salaryRepo,
		memory.NewSettingsRepository(store),
		timesheets,
		payroll,
		calculator,
		now,
	)

	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(logs, nil))
	return &digestFixture{
		jobs: NewDigestJobs(staffRepo, payroll, reports, logger, now),
		logs: logs,
	}
}

func (f *digestFixture) records(t *testing.T, msg string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(f.logs.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		if rec["msg"] == msg {
			out = append(out, rec)
		}
	}
	return out
}

func TestDigestJobs_OutstandingPayroll(t *testing.T) {
	f := newDigestFixture(t)

	total, err := f.jobs.outstandingPayroll(context.Background())

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(4100).Equal(total), "got %s", total)

	owed := f.records(t, "payroll outstanding")
	require.Len(t, owed, 2)
	ids := []any{owed[0]["staff_id"], owed[1]["staff_id"]}
	assert.ElementsMatch(t, []any{"admin-1", "as-1"}, ids)

	digest := f.records(t, "outstanding payroll digest")
	require.Len(t, digest, 1)
	assert.Equal(t, "2024-06-01..2024-06-15", digest[0]["period"])
	assert.Equal(t, "4100.00", digest[0]["total"])
}

func TestDigestJobs_PreviousDayPnL(t *testing.T) {
	f := newDigestFixture(t)

	require.NoError(t, f.jobs.PreviousDayPnL(context.Background()))

	digest := f.records(t, "daily pnl digest")
	require.Len(t, digest, 1)
	assert.Equal(t, "2024-06-14", digest[0]["day"])
	assert.Equal(t, "700.00", digest[0]["income"])
}

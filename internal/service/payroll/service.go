package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/policlinic/clinic-backend-go/internal/domain/payroll"
	"github.com/policlinic/clinic-backend-go/internal/domain/period"
	"github.com/policlinic/clinic-backend-go/internal/domain/salary"
	"github.com/policlinic/clinic-backend-go/internal/domain/staff"
	"github.com/policlinic/clinic-backend-go/internal/domain/timesheet"
	"github.com/policlinic/clinic-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	tx               database.Transactor
	staffRepo        staff.StaffRepository
	salaryRepo       salary.SalaryRepository
	timesheetService timesheet.TimesheetService
	logger           *slog.Logger
	now              func() time.Time
}

func NewPayrollService(
	tx database.Transactor,
	staffRepo staff.StaffRepository,
	salaryRepo salary.SalaryRepository,
	timesheetService timesheet.TimesheetService,
	logger *slog.Logger,
	now func() time.Time,
) payroll.PayrollService {
	if now == nil {
		now = time.Now
	}
	return &PayrollServiceImpl{
		tx:               tx,
		staffRepo:        staffRepo,
		salaryRepo:       salaryRepo,
		timesheetService: timesheetService,
		logger:           logger,
		now:              now,
	}
}

// ========== SUGGESTION ==========

func (s *PayrollServiceImpl) SuggestPayroll(ctx context.Context, staffID string, from, to time.Time) (payroll.Suggestion, error) {
	r, err := period.New(from, to)
	if err != nil {
		return payroll.Suggestion{}, err
	}

	member, err := s.payableStaff(s.staffRepo.GetByID(ctx, staffID))
	if err != nil {
		return payroll.Suggestion{}, err
	}

	return s.suggest(ctx, member, r)
}

func (s *PayrollServiceImpl) AcceptSuggestion(ctx context.Context, req payroll.AcceptSuggestionRequest) (payroll.AcceptSuggestionResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.AcceptSuggestionResponse{}, err
	}
	r, err := period.Parse(req.From, req.To)
	if err != nil {
		return payroll.AcceptSuggestionResponse{}, err
	}

	var (
		suggestion payroll.Suggestion
		payment    salary.Payment
	)
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		member, err := s.payableStaff(s.staffRepo.LockForUpdate(txCtx, req.StaffID))
		if err != nil {
			return err
		}

		suggestion, err = s.suggest(txCtx, member, r)
		if err != nil {
			return err
		}
		if !suggestion.Amount.IsPositive() {
			return payroll.ErrNothingToPay
		}

		payment, err = s.salaryRepo.Create(txCtx, salary.Payment{
			ID:          uuid.NewString(),
			StaffID:     member.ID,
			Amount:      suggestion.Amount,
			PaymentDate: s.paymentDateWithin(r),
			Kind:        salary.KindSalary,
			Note:        req.Note,
		})
		if err != nil {
			return fmt.Errorf("failed to create salary payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return payroll.AcceptSuggestionResponse{}, err
	}

	s.logger.InfoContext(ctx, "payroll suggestion accepted",
		slog.String("staff_id", payment.StaffID),
		slog.String("period", r.String()),
		slog.String("amount", payment.Amount.String()),
	)

	return payroll.AcceptSuggestionResponse{
		Payment:    payroll.NewPaymentResponse(payment),
		Suggestion: payroll.NewSuggestionResponse(suggestion),
	}, nil
}

// ========== PAYMENTS ==========

func (s *PayrollServiceImpl) RecordPayment(ctx context.Context, req payroll.RecordPaymentRequest) (payroll.RecordPaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordPaymentResponse{}, err
	}
	paymentDate, _ := time.Parse(time.DateOnly, req.PaymentDate)
	requested := req.Amount.Round(2)

	var (
		decision payroll.Withdrawal
		rejected error
		payment  salary.Payment
	)
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		member, err := s.payableStaff(s.staffRepo.LockForUpdate(txCtx, req.StaffID))
		if err != nil {
			return err
		}

		cycle := period.MonthToDate(paymentDate)
		earned, err := s.PeriodPay(txCtx, member, cycle)
		if err != nil {
			return err
		}
		paid, err := s.salaryPaid(txCtx, member.ID, cycle)
		if err != nil {
			return err
		}

		decision = payroll.Withdrawal{Cycle: cycle, Requested: requested, Earned: earned, AlreadyPaid: paid}
		var status salary.WithdrawalStatus
		decision.Available, status, rejected = EvaluateWithdrawal(earned, paid, requested)

		audit := salary.WithdrawalAudit{
			ID:              uuid.NewString(),
			StaffID:         member.ID,
			RequestedAmount: requested,
			Earned:          earned,
			AlreadyPaid:     paid,
			Available:       decision.Available,
			Status:          status,
			PeriodStart:     cycle.From,
			PeriodEnd:       cycle.To,
		}

		if rejected == nil {
			payment, err = s.salaryRepo.Create(txCtx, salary.Payment{
				ID:          uuid.NewString(),
				StaffID:     member.ID,
				Amount:      requested,
				PaymentDate: period.Day(paymentDate),
				Kind:        salary.KindSalary,
				Note:        req.Note,
			})
			if err != nil {
				return fmt.Errorf("failed to create salary payment: %w", err)
			}
			audit.PaymentID = &payment.ID
		}

		// The audit row is kept for rejected attempts too, so the transaction commits.
		if err := s.salaryRepo.CreateWithdrawalAudit(txCtx, audit); err != nil {
			return fmt.Errorf("failed to create withdrawal audit: %w", err)
		}
		return nil
	})
	if err != nil {
		return payroll.RecordPaymentResponse{}, err
	}

	s.logger.InfoContext(ctx, "salary withdrawal evaluated",
		slog.String("staff_id", req.StaffID),
		slog.String("cycle", decision.Cycle.String()),
		slog.String("requested", requested.String()),
		slog.String("earned", decision.Earned.String()),
		slog.String("already_paid", decision.AlreadyPaid.String()),
		slog.Bool("accepted", rejected == nil),
	)
	if rejected != nil {
		return payroll.RecordPaymentResponse{}, rejected
	}

	return payroll.RecordPaymentResponse{
		Payment:        payroll.NewPaymentResponse(payment),
		AvailableAfter: decision.Available.Sub(requested),
	}, nil
}

// EvaluateWithdrawal checks a requested amount against what the cycle has earned and
// already paid. available is what could be paid before the request.
func EvaluateWithdrawal(earned, paid, requested decimal.Decimal) (available decimal.Decimal, status salary.WithdrawalStatus, err error) {
	available = decimal.Max(earned.Sub(paid), decimal.Zero)
	switch {
	case !earned.IsPositive():
		return decimal.Zero, salary.WithdrawalNoEarnings, payroll.ErrNoEarnings
	case paid.GreaterThanOrEqual(earned):
		return decimal.Zero, salary.WithdrawalAlreadyWithdrawn, payroll.ErrSalaryAlreadyWithdrawn
	case requested.GreaterThan(available):
		return available, salary.WithdrawalInsufficientBalance, payroll.ErrInsufficientBalance
	}
	return available, salary.WithdrawalOK, nil
}

func (s *PayrollServiceImpl) ListPayments(ctx context.Context, req payroll.ListPaymentsRequest) ([]payroll.PaymentResponse, error) {
	r, err := period.Parse(req.From, req.To)
	if err != nil {
		return nil, err
	}

	filter := salary.ListFilter{From: &r.From, To: &r.To}
	if req.StaffID != "" {
		if _, err := s.staffRepo.GetByID(ctx, req.StaffID); err != nil {
			if errors.Is(err, staff.ErrStaffNotFound) {
				return nil, staff.ErrUnknownStaff
			}
			return nil, fmt.Errorf("failed to get staff member: %w", err)
		}
		filter.StaffID = &req.StaffID
	}

	payments, err := s.salaryRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary payments: %w", err)
	}

	out := make([]payroll.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, payroll.NewPaymentResponse(p))
	}
	return out, nil
}

func (s *PayrollServiceImpl) DeletePayment(ctx context.Context, id string) error {
	payment, err := s.salaryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if payment.Kind == salary.KindCommission {
		return salary.ErrLinkedToIncome
	}

	if err := s.salaryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete salary payment: %w", err)
	}

	s.logger.InfoContext(ctx, "salary payment deleted",
		slog.String("payment_id", payment.ID),
		slog.String("staff_id", payment.StaffID),
		slog.String("amount", payment.Amount.String()),
	)
	return nil
}

// ========== PERIOD PAY ==========

func (s *PayrollServiceImpl) PeriodPay(ctx context.Context, member staff.Member, r period.Range) (decimal.Decimal, error) {
	switch role := member.Role.(type) {
	case staff.Assistant:
		days, err := s.timesheetService.ComputeHours(ctx, member.ID, r.From, r.To)
		if err != nil {
			return decimal.Zero, err
		}
		total := decimal.Zero
		for _, d := range days {
			total = total.Add(d.Pay)
		}
		return total, nil
	case staff.Administrator:
		return role.BaseSalary, nil
	case staff.Doctor:
		return decimal.Zero, payroll.ErrNotApplicable
	}
	return decimal.Zero, fmt.Errorf("%w: %T", staff.ErrInvalidRole, member.Role)
}

func (s *PayrollServiceImpl) suggest(ctx context.Context, member staff.Member, r period.Range) (payroll.Suggestion, error) {
	earned, err := s.PeriodPay(ctx, member, r)
	if err != nil {
		return payroll.Suggestion{}, err
	}
	paid, err := s.salaryPaid(ctx, member.ID, r)
	if err != nil {
		return payroll.Suggestion{}, err
	}

	return payroll.Suggestion{
		StaffID:     member.ID,
		Role:        member.Role.Name(),
		Period:      r,
		Earned:      earned.Round(2),
		AlreadyPaid: paid,
		Amount:      decimal.Max(earned.Sub(paid), decimal.Zero).Round(2),
	}, nil
}

// salaryPaid sums salary disbursements dated inside r. Commission disbursements are
// a separate flow and never offset wages.
func (s *PayrollServiceImpl) salaryPaid(ctx context.Context, staffID string, r period.Range) (decimal.Decimal, error) {
	kind := salary.KindSalary
	payments, err := s.salaryRepo.List(ctx, salary.ListFilter{StaffID: &staffID, From: &r.From, To: &r.To, Kind: &kind})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list salary payments: %w", err)
	}
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total, nil
}

// payableStaff accepts active non-doctors. It takes a lookup result directly so callers
// can pass either a plain read or a locking read.
func (s *PayrollServiceImpl) payableStaff(member staff.Member, err error) (staff.Member, error) {
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return staff.Member{}, staff.ErrUnknownStaff
		}
		return staff.Member{}, fmt.Errorf("failed to get staff member: %w", err)
	}
	if !member.IsActive {
		return staff.Member{}, fmt.Errorf("%w: staff member is inactive", staff.ErrUnknownStaff)
	}
	if member.IsDoctor() {
		return staff.Member{}, payroll.ErrNotApplicable
	}
	return member, nil
}

// paymentDateWithin dates an accepted suggestion today when today is inside r, and on
// the last day of r otherwise, so the payment always nets against the same period.
func (s *PayrollServiceImpl) paymentDateWithin(r period.Range) time.Time {
	today := period.Day(s.now())
	if r.Contains(today) {
		return today
	}
	return r.To
}

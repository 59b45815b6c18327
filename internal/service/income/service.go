package income

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/policlinic/clinic-backend-go/internal/domain/income"
	"github.com/policlinic/clinic-backend-go/internal/domain/period"
	"github.com/policlinic/clinic-backend-go/internal/domain/salary"
	"github.com/policlinic/clinic-backend-go/internal/domain/staff"
	"github.com/policlinic/clinic-backend-go/internal/pkg/database"
	commissionService "github.com/policlinic/clinic-backend-go/internal/service/commission"
	"github.com/shopspring/decimal"
)

type IncomeServiceImpl struct {
	tx          database.Transactor
	incomeRepo  income.IncomeRepository
	patientRepo income.PatientRepository
	staffRepo   staff.StaffRepository
	salaryRepo  salary.SalaryRepository
	logger      *slog.Logger
}

func NewIncomeService(
	tx database.Transactor,
	incomeRepo income.IncomeRepository,
	patientRepo income.PatientRepository,
	staffRepo staff.StaffRepository,
	salaryRepo salary.SalaryRepository,
	logger *slog.Logger,
) income.IncomeService {
	return &IncomeServiceImpl{
		tx:          tx,
		incomeRepo:  incomeRepo,
		patientRepo: patientRepo,
		staffRepo:   staffRepo,
		salaryRepo:  salaryRepo,
		logger:      logger,
	}
}

func (s *IncomeServiceImpl) RecordIncome(ctx context.Context, req income.CreateIncomeRequest) (income.IncomeResponse, error) {
	if err := req.Validate(); err != nil {
		return income.IncomeResponse{}, err
	}
	serviceDate, _ := time.Parse(time.DateOnly, req.ServiceDate)
	amount := req.Amount.Round(2)

	member, err := s.staffRepo.GetByID(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return income.IncomeResponse{}, staff.ErrInvalidDoctor
		}
		return income.IncomeResponse{}, fmt.Errorf("failed to get doctor: %w", err)
	}
	doctor, ok := member.AsDoctor()
	if !ok || !member.IsActive {
		return income.IncomeResponse{}, staff.ErrInvalidDoctor
	}

	var (
		record     income.Record
		commission *decimal.Decimal
	)
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		patientID, err := s.resolvePatient(txCtx, req)
		if err != nil {
			return err
		}

		record, err = s.incomeRepo.Create(txCtx, income.Record{
			ID:            uuid.NewString(),
			PatientID:     patientID,
			DoctorID:      member.ID,
			Amount:        amount,
			PaymentMethod: req.PaymentMethod,
			ServiceDate:   serviceDate,
			Note:          req.Note,
		})
		if err != nil {
			return fmt.Errorf("failed to create income record: %w", err)
		}

		commissionAmount := commissionService.Commission(record.Amount, doctor.CommissionRate)
		if !commissionAmount.IsPositive() {
			return nil
		}
		note := fmt.Sprintf("Commission from income #%s", record.ID)
		if _, err := s.salaryRepo.Create(txCtx, salary.Payment{
			ID:          uuid.NewString(),
			StaffID:     member.ID,
			Amount:      commissionAmount,
			PaymentDate: serviceDate,
			Kind:        salary.KindCommission,
			IncomeID:    &record.ID,
			Note:        &note,
		}); err != nil {
			return fmt.Errorf("failed to create commission payment: %w", err)
		}
		commission = &commissionAmount
		return nil
	})
	if err != nil {
		return income.IncomeResponse{}, err
	}

	s.logger.InfoContext(ctx, "income recorded",
		slog.String("income_id", record.ID),
		slog.String("doctor_id", record.DoctorID),
		slog.String("amount", record.Amount.String()),
		slog.String("payment_method", string(record.PaymentMethod)),
	)

	resp := income.NewIncomeResponse(record)
	resp.Commission = commission
	return resp, nil
}

func (s *IncomeServiceImpl) DeleteIncome(ctx context.Context, id string) error {
	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.incomeRepo.GetByID(txCtx, id); err != nil {
			return err
		}
		if err := s.salaryRepo.DeleteByIncomeID(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete commission payment: %w", err)
		}
		if err := s.incomeRepo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete income record: %w", err)
		}
		return nil
	})
}

func (s *IncomeServiceImpl) List(ctx context.Context, req income.ListIncomeRequest) ([]income.IncomeResponse, error) {
	r, err := period.Parse(req.From, req.To)
	if err != nil {
		return nil, err
	}

	filter := income.ListFilter{From: &r.From, To: &r.To}
	if req.DoctorID != "" {
		filter.DoctorID = &req.DoctorID
	}
	if req.PaymentMethod != "" {
		method := income.PaymentMethod(strings.ToLower(req.PaymentMethod))
		if !method.Valid() {
			return nil, income.ErrInvalidPaymentMethod
		}
		filter.Method = &method
	}

	records, err := s.incomeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list income records: %w", err)
	}

	out := make([]income.IncomeResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, income.NewIncomeResponse(rec))
	}
	return out, nil
}

// resolvePatient returns the referenced patient, or registers a new one by name.
func (s *IncomeServiceImpl) resolvePatient(ctx context.Context, req income.CreateIncomeRequest) (string, error) {
	if req.PatientID != nil && strings.TrimSpace(*req.PatientID) != "" {
		p, err := s.patientRepo.GetByID(ctx, *req.PatientID)
		if err != nil {
			return "", err
		}
		return p.ID, nil
	}

	p, err := s.patientRepo.Create(ctx, income.Patient{
		ID:        uuid.NewString(),
		FirstName: trimmedOrNil(req.PatientFirstName),
		LastName:  strings.TrimSpace(*req.PatientLastName),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create patient: %w", err)
	}
	return p.ID, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

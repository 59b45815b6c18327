package commission

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/policlinic/clinic-backend-go/internal/domain/commission"
	"github.com/policlinic/clinic-backend-go/internal/domain/income"
	"github.com/policlinic/clinic-backend-go/internal/domain/period"
	"github.com/policlinic/clinic-backend-go/internal/domain/staff"
	"github.com/policlinic/clinic-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CommissionServiceImpl struct {
	staffRepo  staff.StaffRepository
	incomeRepo income.IncomeRepository
	now        func() time.Time
}

func NewCommissionService(staffRepo staff.StaffRepository, incomeRepo income.IncomeRepository, now func() time.Time) commission.CommissionService {
	if now == nil {
		now = time.Now
	}
	return &CommissionServiceImpl{
		staffRepo:  staffRepo,
		incomeRepo: incomeRepo,
		now:        now,
	}
}

// Commission applies a doctor's rate to an income amount.
func Commission(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Round(2)
}

func (s *CommissionServiceImpl) DoctorStats(ctx context.Context, doctorID string, from, to time.Time) (commission.DoctorStats, error) {
	r, err := period.New(from, to)
	if err != nil {
		return commission.DoctorStats{}, err
	}
	return s.statsFor(ctx, doctorID, r)
}

func (s *CommissionServiceImpl) LifetimeStats(ctx context.Context, doctorID string) (commission.DoctorStats, error) {
	return s.statsFor(ctx, doctorID, period.Lifetime(s.now()))
}

func (s *CommissionServiceImpl) DoctorOverview(ctx context.Context, doctorID string) (commission.DoctorOverview, error) {
	lifetime, err := s.statsFor(ctx, doctorID, period.Lifetime(s.now()))
	if err != nil {
		return commission.DoctorOverview{}, err
	}
	today, err := s.statsFor(ctx, doctorID, period.SingleDay(s.now()))
	if err != nil {
		return commission.DoctorOverview{}, err
	}
	return commission.DoctorOverview{DoctorID: doctorID, Lifetime: lifetime, Today: today}, nil
}

func (s *CommissionServiceImpl) DoctorMonthly(ctx context.Context, doctorID string, from, to time.Time) ([]commission.Bucket, error) {
	r, err := period.New(from, to)
	if err != nil {
		return nil, err
	}
	doctor, rate, err := s.activeDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	records, err := s.incomeRepo.List(ctx, income.ListFilter{From: &r.From, To: &r.To, DoctorID: &doctor.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list income records: %w", err)
	}

	return bucketize(records, rate, r.Months(), period.MonthKey), nil
}

func (s *CommissionServiceImpl) DoctorsByPatientSurname(ctx context.Context, query commission.PatientSurnameQuery) ([]commission.DoctorComparison, error) {
	surname := strings.TrimSpace(query.PatientLastName)
	if surname == "" {
		return nil, validator.ValidationErrors{{Field: "patient_last_name", Message: "patient_last_name is required"}}
	}

	to := s.now()
	if query.To != nil {
		to = *query.To
	}
	from := time.Unix(0, 0).UTC()
	if query.From != nil {
		from = *query.From
	}
	r, err := period.New(from, to)
	if err != nil {
		return nil, err
	}

	records, err := s.incomeRepo.List(ctx, income.ListFilter{From: &r.From, To: &r.To, PatientSurname: &surname})
	if err != nil {
		return nil, fmt.Errorf("failed to list income records: %w", err)
	}

	byDoctor := make(map[string][]income.Record)
	for _, rec := range records {
		byDoctor[rec.DoctorID] = append(byDoctor[rec.DoctorID], rec)
	}

	type matched struct {
		member staff.Member
		rate   decimal.Decimal
		recs   []income.Record
	}
	doctors := make([]matched, 0, len(byDoctor))
	activeMonths := make(map[string]struct{})
	activeYears := make(map[string]struct{})
	for doctorID, recs := range byDoctor {
		member, err := s.staffRepo.GetByID(ctx, doctorID)
		if err != nil {
			if errors.Is(err, staff.ErrStaffNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to get doctor: %w", err)
		}
		doctor, ok := member.AsDoctor()
		if !ok {
			continue
		}
		doctors = append(doctors, matched{member: member, rate: doctor.CommissionRate, recs: recs})
		for _, rec := range recs {
			activeMonths[period.MonthKey(rec.ServiceDate)] = struct{}{}
			activeYears[yearKey(rec.ServiceDate)] = struct{}{}
		}
	}
	months := sortedKeys(activeMonths)
	years := sortedKeys(activeYears)

	result := make([]commission.DoctorComparison, 0, len(doctors))
	for _, d := range doctors {
		result = append(result, commission.DoctorComparison{
			DoctorID:       d.member.ID,
			FirstName:      d.member.FirstName,
			LastName:       d.member.LastName,
			IsActive:       d.member.IsActive,
			CommissionRate: d.rate,
			Stats:          computeStats(d.member.ID, r, d.rate, d.recs),
			Monthly:        bucketize(d.recs, d.rate, months, period.MonthKey),
			Yearly:         bucketize(d.recs, d.rate, years, yearKey),
			Patients:       patientBreakdown(d.recs, d.rate),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].LastName != result[j].LastName {
			return result[i].LastName < result[j].LastName
		}
		if result[i].FirstName != result[j].FirstName {
			return result[i].FirstName < result[j].FirstName
		}
		return result[i].DoctorID < result[j].DoctorID
	})
	return result, nil
}

func (s *CommissionServiceImpl) statsFor(ctx context.Context, doctorID string, r period.Range) (commission.DoctorStats, error) {
	doctor, rate, err := s.activeDoctor(ctx, doctorID)
	if err != nil {
		return commission.DoctorStats{}, err
	}

	records, err := s.incomeRepo.List(ctx, income.ListFilter{From: &r.From, To: &r.To, DoctorID: &doctor.ID})
	if err != nil {
		return commission.DoctorStats{}, fmt.Errorf("failed to list income records: %w", err)
	}

	return computeStats(doctor.ID, r, rate, records), nil
}

// activeDoctor resolves id to an active doctor and its commission rate.
func (s *CommissionServiceImpl) activeDoctor(ctx context.Context, id string) (staff.Member, decimal.Decimal, error) {
	member, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return staff.Member{}, decimal.Zero, staff.ErrInvalidDoctor
		}
		return staff.Member{}, decimal.Zero, fmt.Errorf("failed to get doctor: %w", err)
	}
	doctor, ok := member.AsDoctor()
	if !ok || !member.IsActive {
		return staff.Member{}, decimal.Zero, staff.ErrInvalidDoctor
	}
	return member, doctor.CommissionRate, nil
}

func computeStats(doctorID string, r period.Range, rate decimal.Decimal, records []income.Record) commission.DoctorStats {
	total := decimal.Zero
	patients := make(map[string]struct{})
	for _, rec := range records {
		total = total.Add(rec.Amount)
		patients[rec.PatientID] = struct{}{}
	}

	commissionTotal := Commission(total, rate)
	avg := decimal.Zero
	if len(patients) > 0 {
		avg = commissionTotal.Div(decimal.NewFromInt(int64(len(patients)))).Round(2)
	}

	return commission.DoctorStats{
		DoctorID:                doctorID,
		Period:                  r,
		TotalIncome:             total,
		TotalCommission:         commissionTotal,
		VisitCount:              len(records),
		PatientCount:            len(patients),
		AvgCommissionPerPatient: avg,
	}
}

// bucketize sums records into the given keys. Every key appears, zero-filled when
// no record falls into it.
func bucketize(records []income.Record, rate decimal.Decimal, keys []string, keyOf func(time.Time) string) []commission.Bucket {
	sums := make(map[string]*commission.Bucket, len(keys))
	buckets := make([]commission.Bucket, len(keys))
	for i, k := range keys {
		buckets[i] = commission.Bucket{Key: k, Income: decimal.Zero, Commission: decimal.Zero}
		sums[k] = &buckets[i]
	}
	for _, rec := range records {
		b, ok := sums[keyOf(rec.ServiceDate)]
		if !ok {
			continue
		}
		b.Income = b.Income.Add(rec.Amount)
		b.Visits++
	}
	for i := range buckets {
		buckets[i].Commission = Commission(buckets[i].Income, rate)
	}
	return buckets
}

func patientBreakdown(records []income.Record, rate decimal.Decimal) []commission.PatientBreakdown {
	index := make(map[string]int)
	var out []commission.PatientBreakdown
	for _, rec := range records {
		i, ok := index[rec.PatientID]
		if !ok {
			i = len(out)
			index[rec.PatientID] = i
			out = append(out, commission.PatientBreakdown{
				PatientID: rec.PatientID,
				FirstName: rec.PatientFirstName,
				LastName:  rec.PatientLastName,
				Income:    decimal.Zero,
			})
		}
		out[i].Income = out[i].Income.Add(rec.Amount)
		out[i].Visits++
	}
	for i := range out {
		out[i].Commission = Commission(out[i].Income, rate)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].PatientID < out[j].PatientID
	})
	return out
}

func yearKey(t time.Time) string {
	return strconv.Itoa(t.Year())
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

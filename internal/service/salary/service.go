package salary

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/deduction"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

type SalaryServiceImpl struct {
	txManager      database.Transactor
	salaryRepo     salary.SalaryRepository
	employeeRepo   employee.EmployeeRepository
	obligationRepo deduction.ObligationRepository
	aggregator     attendance.Aggregator
	order          deduction.ReimbursementOrder
}

func NewSalaryService(
	txManager database.Transactor,
	salaryRepo salary.SalaryRepository,
	employeeRepo employee.EmployeeRepository,
	obligationRepo deduction.ObligationRepository,
	aggregator attendance.Aggregator,
	order deduction.ReimbursementOrder,
) salary.SalaryService {
	return &SalaryServiceImpl{
		txManager:      txManager,
		salaryRepo:     salaryRepo,
		employeeRepo:   employeeRepo,
		obligationRepo: obligationRepo,
		aggregator:     aggregator,
		order:          order,
	}
}

// ComputeSalary implements salary.SalaryService.
func (s *SalaryServiceImpl) ComputeSalary(ctx context.Context, employeeID string, year, month int, asOf time.Time) (salary.SalaryResult, error) {
	if errs := validator.PeriodErrors(year, month); len(errs) > 0 {
		return salary.SalaryResult{}, errs
	}

	var result salary.SalaryResult
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.employeeRepo.GetByID(ctx, employeeID)
		if err != nil {
			return err
		}
		result, err = s.compute(ctx, emp, year, month, asOf)
		return err
	})
	if err != nil {
		return salary.SalaryResult{}, err
	}
	return result, nil
}

// ComputeSalaryBatch implements salary.SalaryService.
func (s *SalaryServiceImpl) ComputeSalaryBatch(ctx context.Context, year, month int, asOf time.Time) (salary.BatchResult, error) {
	if errs := validator.PeriodErrors(year, month); len(errs) > 0 {
		return salary.BatchResult{}, errs
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return salary.BatchResult{}, err
	}

	batch := salary.BatchResult{
		Year:     year,
		Month:    month,
		Results:  make([]salary.SalaryResult, 0, len(employees)),
		Failures: []salary.BatchFailure{},
	}

	for _, emp := range employees {
		var result salary.SalaryResult
		err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
			var err error
			result, err = s.compute(ctx, emp, year, month, asOf)
			return err
		})
		if err != nil {
			slog.Warn("Failed to compute salary for employee",
				"employee_id", emp.ID, "employee_code", emp.EmployeeCode, "year", year, "month", month, "error", err)
			batch.Failures = append(batch.Failures, salary.BatchFailure{
				EmployeeID:   emp.ID,
				EmployeeCode: emp.EmployeeCode,
				Error:        err.Error(),
			})
			continue
		}
		batch.Results = append(batch.Results, result)
	}

	slog.Info("Computed salaries", "year", year, "month", month,
		"computed", len(batch.Results), "failed", len(batch.Failures))
	return batch, nil
}

func (s *SalaryServiceImpl) compute(ctx context.Context, emp employee.Employee, year, month int, asOf time.Time) (salary.SalaryResult, error) {
	summary, err := s.aggregator.Summarize(ctx, emp.ID, year, month, asOf)
	if err != nil {
		return salary.SalaryResult{}, err
	}

	obligations, err := s.obligationRepo.ListOpenByEmployee(ctx, emp.ID, s.order)
	if err != nil {
		return salary.SalaryResult{}, err
	}

	breakdown := salary.Calculate(emp, summary, deduction.Accrue(obligations, year, month))

	due, err := s.salaryRepo.SumPendingGrossExcluding(ctx, emp.ID, year, month)
	if err != nil {
		return salary.SalaryResult{}, err
	}

	saved, err := s.salaryRepo.Upsert(ctx, salary.NewRecord("", emp.ID, year, month, breakdown, due))
	if err != nil {
		return salary.SalaryResult{}, err
	}

	return salary.NewSalaryResult(saved, breakdown), nil
}

// ApplyPayment implements salary.SalaryService.
// The salary record is locked before the obligations, so concurrent payments
// for one employee serialize on the record.
func (s *SalaryServiceImpl) ApplyPayment(ctx context.Context, recordID string, req salary.PayRequest, asOf time.Time) (salary.PaymentResult, error) {
	if err := req.Validate(); err != nil {
		return salary.PaymentResult{}, err
	}

	var (
		record         salary.SalaryRecord
		reimbursements []deduction.Reimbursement
	)
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		record, err = s.salaryRepo.GetByIDForUpdate(ctx, recordID)
		if err != nil {
			return err
		}

		obligations, err := s.obligationRepo.ListOpenByEmployeeForUpdate(ctx, record.EmployeeID, s.order)
		if err != nil {
			return err
		}

		reimbursements = deduction.Reimburse(obligations, req.Amount)
		byID := make(map[string]*deduction.Obligation, len(obligations))
		for _, o := range obligations {
			byID[o.ID()] = o
		}
		for _, r := range reimbursements {
			if err := s.obligationRepo.Update(ctx, byID[r.ObligationID]); err != nil {
				return err
			}
		}

		if err := salary.ApplyPayment(&record, req.Amount, asOf); err != nil {
			return err
		}
		return s.salaryRepo.UpdatePayment(ctx, record)
	})
	if err != nil {
		return salary.PaymentResult{}, err
	}

	slog.Info("Applied salary payment", "salary_record_id", record.ID, "employee_id", record.EmployeeID,
		"amount", req.Amount.String(), "status", record.Status, "reimbursed_obligations", len(reimbursements))

	return salary.PaymentResult{
		Record:         salary.ToRecordResponse(record),
		Reimbursements: deduction.ToReimbursementResponses(reimbursements),
	}, nil
}

// GetRecord implements salary.SalaryService.
func (s *SalaryServiceImpl) GetRecord(ctx context.Context, id string) (salary.SalaryRecordResponse, error) {
	record, err := s.salaryRepo.GetByID(ctx, id)
	if err != nil {
		return salary.SalaryRecordResponse{}, err
	}
	return salary.ToRecordResponse(record), nil
}

// ListRecords implements salary.SalaryService.
func (s *SalaryServiceImpl) ListRecords(ctx context.Context, year, month int) ([]salary.SalaryRecordResponse, error) {
	if errs := validator.PeriodErrors(year, month); len(errs) > 0 {
		return nil, errs
	}

	records, err := s.salaryRepo.List(ctx, year, month)
	if err != nil {
		return nil, err
	}

	out := make([]salary.SalaryRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, salary.ToRecordResponse(r))
	}
	return out, nil
}

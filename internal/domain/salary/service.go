package salary

import (
	"context"
	"time"
)

type SalaryService interface {
	// ComputeSalary computes and stores one employee's salary for year/month.
	ComputeSalary(ctx context.Context, employeeID string, year, month int, asOf time.Time) (SalaryResult, error)

	// ComputeSalaryBatch runs ComputeSalary for every active employee. A
	// failing employee is reported in the result and does not stop the rest.
	ComputeSalaryBatch(ctx context.Context, year, month int, asOf time.Time) (BatchResult, error)

	// ApplyPayment records a payment against a salary record and reimburses
	// the employee's open deductions from it.
	ApplyPayment(ctx context.Context, recordID string, req PayRequest, asOf time.Time) (PaymentResult, error)

	GetRecord(ctx context.Context, id string) (SalaryRecordResponse, error)
	ListRecords(ctx context.Context, year, month int) ([]SalaryRecordResponse, error)
}

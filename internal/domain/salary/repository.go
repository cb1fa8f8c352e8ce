package salary

import (
	"context"

	"github.com/shopspring/decimal"
)

type SalaryRepository interface {
	// Upsert inserts the (employee, year, month) record or overwrites the
	// computed figures of the existing one. Payment fields of an existing
	// record are kept. Returns the stored row.
	Upsert(ctx context.Context, record SalaryRecord) (SalaryRecord, error)

	GetByID(ctx context.Context, id string) (SalaryRecord, error)

	// GetByIDForUpdate locks the record until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (SalaryRecord, error)

	// SumPendingGrossExcluding sums gross_salary over the employee's pending
	// records other than year/month.
	SumPendingGrossExcluding(ctx context.Context, employeeID string, year, month int) (decimal.Decimal, error)

	// UpdatePayment writes paid_amount, balance_amount, status and paid_date.
	UpdatePayment(ctx context.Context, record SalaryRecord) error

	List(ctx context.Context, year, month int) ([]SalaryRecord, error)
}

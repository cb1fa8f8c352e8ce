package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending       Status = "pending"
	StatusPartiallyPaid Status = "partially_paid"
	StatusPaid          Status = "paid"
)

// SalaryRecord is the stored salary of one employee-month.
type SalaryRecord struct {
	ID              string
	EmployeeID      string
	Year            int
	Month           int
	PresentDays     int
	AbsentDays      int
	LOPCount        int
	GrossSalary     decimal.Decimal
	TotalAllowances decimal.Decimal
	TotalDeductions decimal.Decimal
	SalaryDue       decimal.Decimal
	PaidAmount      decimal.Decimal
	BalanceAmount   decimal.Decimal
	Status          Status
	PaidDate        *time.Time
	GeneratedOn     time.Time

	// Joined from employees on reads.
	EmployeeCode string
	EmployeeName string
}

// TotalOwed is this month's gross plus what earlier pending months carried forward.
func (r SalaryRecord) TotalOwed() decimal.Decimal {
	return r.GrossSalary.Add(r.SalaryDue)
}

package salary

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/deduction"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// Breakdown holds every intermediate figure of one salary computation.
type Breakdown struct {
	DaysInMonth   int
	Cutoff        int
	Present       int
	Absent        int
	WeeklyOff     int
	ApprovedLeave int
	PaidDays      int

	BasicSalary        decimal.Decimal
	TotalAllowance     decimal.Decimal
	GrossBasic         decimal.Decimal
	DailyRate          decimal.Decimal
	SalaryOnAttendance decimal.Decimal
	AdvanceDeduction   decimal.Decimal
	OtherDeduction     decimal.Decimal
	TotalDeductions    decimal.Decimal
	// GrossSalary is this month only. It can be negative when deductions exceed pay.
	GrossSalary decimal.Decimal
}

// Calculate prices a month of attendance for emp. The daily rate always
// divides by the full calendar month, even for a partial-month summary.
func Calculate(emp employee.Employee, summary attendance.MonthSummary, accrual deduction.Accrual) Breakdown {
	days := attendance.DaysInMonth(summary.Year, summary.Month)

	totalAllowance := emp.HouseRentAllowance.
		Add(emp.TransportationAllowance).
		Add(emp.CostOfLivingAllowance)
	grossBasic := emp.BasicSalary.Add(totalAllowance)
	dailyRate := grossBasic.Div(decimal.NewFromInt(int64(days)))

	paidDays := summary.PaidDays()
	salaryOnAttendance := dailyRate.Mul(decimal.NewFromInt(int64(paidDays)))
	totalDeductions := accrual.Total()

	return Breakdown{
		DaysInMonth:        days,
		Cutoff:             summary.Cutoff,
		Present:            summary.Present,
		Absent:             summary.Absent,
		WeeklyOff:          summary.WeeklyOff,
		ApprovedLeave:      summary.ApprovedLeave,
		PaidDays:           paidDays,
		BasicSalary:        emp.BasicSalary,
		TotalAllowance:     totalAllowance,
		GrossBasic:         grossBasic,
		DailyRate:          dailyRate,
		SalaryOnAttendance: salaryOnAttendance.Round(2),
		AdvanceDeduction:   accrual.Advance,
		OtherDeduction:     accrual.Other,
		TotalDeductions:    totalDeductions,
		GrossSalary:        salaryOnAttendance.Sub(totalDeductions).Round(2),
	}
}

// NewRecord builds the record a computation writes. Payment fields start
// fresh; the repository keeps existing ones when the record already exists.
func NewRecord(id, employeeID string, year, month int, b Breakdown, salaryDue decimal.Decimal) SalaryRecord {
	due := salaryDue.Round(2)
	return SalaryRecord{
		ID:              id,
		EmployeeID:      employeeID,
		Year:            year,
		Month:           month,
		PresentDays:     b.Present,
		AbsentDays:      b.Absent,
		LOPCount:        b.Absent,
		GrossSalary:     b.GrossSalary,
		TotalAllowances: b.TotalAllowance,
		TotalDeductions: b.TotalDeductions,
		SalaryDue:       due,
		PaidAmount:      decimal.Zero,
		BalanceAmount:   b.GrossSalary.Add(due),
		Status:          StatusPending,
	}
}

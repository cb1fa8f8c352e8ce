package salary

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/deduction"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GenerateRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *GenerateRequest) Validate() error {
	if errs := validator.PeriodErrors(r.Year, r.Month); len(errs) > 0 {
		return errs
	}
	return nil
}

type PayRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (r *PayRequest) Validate() error {
	if errs := paymentErrors(r.Amount); len(errs) > 0 {
		return errs
	}
	return nil
}

// SalaryResult is one computed salary with every intermediate figure and
// the record's payment state after the write.
type SalaryResult struct {
	RecordID     string `json:"record_id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	EmployeeName string `json:"employee_name"`
	Year         int    `json:"year"`
	Month        int    `json:"month"`

	DaysInMonth   int `json:"days_in_month"`
	CutoffDay     int `json:"cutoff_day"`
	PresentDays   int `json:"present_days"`
	AbsentDays    int `json:"absent_days"`
	WeeklyOffDays int `json:"weekly_off_days"`
	LeaveDays     int `json:"approved_leave_days"`
	PaidDays      int `json:"paid_days"`
	LOPCount      int `json:"lop_count"`

	BasicSalary        decimal.Decimal `json:"basic_salary"`
	TotalAllowance     decimal.Decimal `json:"total_allowance"`
	GrossBasic         decimal.Decimal `json:"gross_basic"`
	DailyRate          decimal.Decimal `json:"daily_rate"`
	SalaryOnAttendance decimal.Decimal `json:"salary_on_attendance"`
	AdvanceDeduction   decimal.Decimal `json:"advance_deduction"`
	OtherDeduction     decimal.Decimal `json:"other_deduction"`
	TotalDeductions    decimal.Decimal `json:"total_deductions"`
	GrossSalary        decimal.Decimal `json:"gross_salary"`
	SalaryDue          decimal.Decimal `json:"salary_due"`
	TotalOwed          decimal.Decimal `json:"total_owed"`

	PaidAmount    decimal.Decimal `json:"paid_amount"`
	BalanceAmount decimal.Decimal `json:"balance_amount"`
	Status        string          `json:"status"`
	PaidDate      *string         `json:"paid_date"`
}

func NewSalaryResult(r SalaryRecord, b Breakdown) SalaryResult {
	return SalaryResult{
		RecordID:     r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeCode: r.EmployeeCode,
		EmployeeName: r.EmployeeName,
		Year:         r.Year,
		Month:        r.Month,

		DaysInMonth:   b.DaysInMonth,
		CutoffDay:     b.Cutoff,
		PresentDays:   b.Present,
		AbsentDays:    b.Absent,
		WeeklyOffDays: b.WeeklyOff,
		LeaveDays:     b.ApprovedLeave,
		PaidDays:      b.PaidDays,
		LOPCount:      r.LOPCount,

		BasicSalary:        b.BasicSalary,
		TotalAllowance:     b.TotalAllowance,
		GrossBasic:         b.GrossBasic,
		DailyRate:          b.DailyRate,
		SalaryOnAttendance: b.SalaryOnAttendance,
		AdvanceDeduction:   b.AdvanceDeduction,
		OtherDeduction:     b.OtherDeduction,
		TotalDeductions:    b.TotalDeductions,
		GrossSalary:        r.GrossSalary,
		SalaryDue:          r.SalaryDue,
		TotalOwed:          r.TotalOwed(),

		PaidAmount:    r.PaidAmount,
		BalanceAmount: r.BalanceAmount,
		Status:        string(r.Status),
		PaidDate:      formatPaidDate(r),
	}
}

// BatchFailure is one employee whose computation failed inside a batch.
type BatchFailure struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	Error        string `json:"error"`
}

type BatchResult struct {
	Year     int            `json:"year"`
	Month    int            `json:"month"`
	Results  []SalaryResult `json:"results"`
	Failures []BatchFailure `json:"failures"`
}

type SalaryRecordResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeCode    string          `json:"employee_code"`
	EmployeeName    string          `json:"employee_name"`
	Year            int             `json:"year"`
	Month           int             `json:"month"`
	PresentDays     int             `json:"present_days"`
	AbsentDays      int             `json:"absent_days"`
	LOPCount        int             `json:"lop_count"`
	GrossSalary     decimal.Decimal `json:"gross_salary"`
	TotalAllowances decimal.Decimal `json:"total_allowances"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	SalaryDue       decimal.Decimal `json:"salary_due"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	BalanceAmount   decimal.Decimal `json:"balance_amount"`
	Status          string          `json:"status"`
	PaidDate        *string         `json:"paid_date"`
	GeneratedOn     string          `json:"generated_on"`
}

func ToRecordResponse(r SalaryRecord) SalaryRecordResponse {
	return SalaryRecordResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeCode:    r.EmployeeCode,
		EmployeeName:    r.EmployeeName,
		Year:            r.Year,
		Month:           r.Month,
		PresentDays:     r.PresentDays,
		AbsentDays:      r.AbsentDays,
		LOPCount:        r.LOPCount,
		GrossSalary:     r.GrossSalary,
		TotalAllowances: r.TotalAllowances,
		TotalDeductions: r.TotalDeductions,
		SalaryDue:       r.SalaryDue,
		PaidAmount:      r.PaidAmount,
		BalanceAmount:   r.BalanceAmount,
		Status:          string(r.Status),
		PaidDate:        formatPaidDate(r),
		GeneratedOn:     r.GeneratedOn.Format(time.RFC3339),
	}
}

type PaymentResult struct {
	Record         SalaryRecordResponse              `json:"record"`
	Reimbursements []deduction.ReimbursementResponse `json:"reimbursements"`
}

func formatPaidDate(r SalaryRecord) *string {
	if r.PaidDate == nil {
		return nil
	}
	s := r.PaidDate.Format(validator.DateLayout)
	return &s
}

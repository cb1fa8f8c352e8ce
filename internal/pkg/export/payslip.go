package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// Payslip is the snapshot printed on one employee's monthly payslip.
type Payslip struct {
	CompanyName     string
	EmployeeCode    string
	EmployeeName    string
	Period          string
	PresentDays     int
	AbsentDays      int
	LOPCount        int
	BasicSalary     decimal.Decimal
	TotalAllowances decimal.Decimal
	TotalDeductions decimal.Decimal
	GrossSalary     decimal.Decimal
	SalaryDue       decimal.Decimal
	PaidAmount      decimal.Decimal
	BalanceAmount   decimal.Decimal
	Status          string
	PaidDate        string
}

// RenderPayslipPDF writes p as a single-page A4 PDF.
func RenderPayslipPDF(w io.Writer, p Payslip) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s %s", p.EmployeeCode, p.Period), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, p.CompanyName)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Payslip for %s", p.Period))
	pdf.Ln(12)

	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s (%s)", p.EmployeeName, p.EmployeeCode))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Present days: %d   Absent days: %d   Loss of pay: %d", p.PresentDays, p.AbsentDays, p.LOPCount))
	pdf.Ln(11)

	lines := []struct {
		label string
		value decimal.Decimal
	}{
		{"Basic salary", p.BasicSalary},
		{"Allowances", p.TotalAllowances},
		{"Deductions", p.TotalDeductions},
		{"Gross salary (month)", p.GrossSalary},
		{"Carried forward due", p.SalaryDue},
		{"Total owed", p.GrossSalary.Add(p.SalaryDue)},
		{"Paid", p.PaidAmount},
		{"Balance", p.BalanceAmount},
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(100, 8, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, "Amount", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, l := range lines {
		pdf.CellFormat(100, 8, l.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, l.value.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(6)
	status := fmt.Sprintf("Status: %s", p.Status)
	if p.PaidDate != "" {
		status += fmt.Sprintf("   Paid on: %s", p.PaidDate)
	}
	pdf.Cell(0, 7, status)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render payslip pdf: %w", err)
	}
	return nil
}

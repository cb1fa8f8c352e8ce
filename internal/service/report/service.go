package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

type ReportServiceImpl struct {
	salaryRepo   salary.SalaryRepository
	employeeRepo employee.EmployeeRepository
	companyName  string
}

func NewReportService(salaryRepo salary.SalaryRepository, employeeRepo employee.EmployeeRepository, companyName string) report.ReportService {
	return &ReportServiceImpl{
		salaryRepo:   salaryRepo,
		employeeRepo: employeeRepo,
		companyName:  companyName,
	}
}

// Payslip implements report.ReportService.
func (s *ReportServiceImpl) Payslip(ctx context.Context, salaryRecordID string) (report.Document, error) {
	record, err := s.salaryRepo.GetByID(ctx, salaryRecordID)
	if err != nil {
		return report.Document{}, err
	}
	emp, err := s.employeeRepo.GetByID(ctx, record.EmployeeID)
	if err != nil {
		return report.Document{}, err
	}

	var buf bytes.Buffer
	err = export.RenderPayslipPDF(&buf, export.Payslip{
		CompanyName:     s.companyName,
		EmployeeCode:    emp.EmployeeCode,
		EmployeeName:    emp.Name,
		Period:          periodLabel(record.Year, record.Month),
		PresentDays:     record.PresentDays,
		AbsentDays:      record.AbsentDays,
		LOPCount:        record.LOPCount,
		BasicSalary:     emp.BasicSalary,
		TotalAllowances: record.TotalAllowances,
		TotalDeductions: record.TotalDeductions,
		GrossSalary:     record.GrossSalary,
		SalaryDue:       record.SalaryDue,
		PaidAmount:      record.PaidAmount,
		BalanceAmount:   record.BalanceAmount,
		Status:          string(record.Status),
		PaidDate:        paidDate(record),
	})
	if err != nil {
		return report.Document{}, err
	}

	return report.Document{
		Filename:    fmt.Sprintf("payslip-%s-%d-%02d.pdf", emp.EmployeeCode, record.Year, record.Month),
		ContentType: "application/pdf",
		Content:     buf.Bytes(),
	}, nil
}

// SalarySheet implements report.ReportService.
func (s *ReportServiceImpl) SalarySheet(ctx context.Context, year, month int) (report.Document, error) {
	if errs := validator.PeriodErrors(year, month); len(errs) > 0 {
		return report.Document{}, errs
	}

	records, err := s.salaryRepo.List(ctx, year, month)
	if err != nil {
		return report.Document{}, err
	}

	rows := make([]export.SheetRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, export.SheetRow{
			EmployeeCode:    r.EmployeeCode,
			EmployeeName:    r.EmployeeName,
			PresentDays:     r.PresentDays,
			AbsentDays:      r.AbsentDays,
			LOPCount:        r.LOPCount,
			TotalAllowances: r.TotalAllowances,
			TotalDeductions: r.TotalDeductions,
			GrossSalary:     r.GrossSalary,
			SalaryDue:       r.SalaryDue,
			PaidAmount:      r.PaidAmount,
			BalanceAmount:   r.BalanceAmount,
			Status:          string(r.Status),
			PaidDate:        paidDate(r),
		})
	}

	var buf bytes.Buffer
	title := fmt.Sprintf("%s salary sheet %s", s.companyName, periodLabel(year, month))
	if err := export.RenderSalarySheet(&buf, title, rows); err != nil {
		return report.Document{}, err
	}

	return report.Document{
		Filename:    fmt.Sprintf("salary-sheet-%d-%02d.xlsx", year, month),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     buf.Bytes(),
	}, nil
}

func periodLabel(year, month int) string {
	return fmt.Sprintf("%s %d", time.Month(month).String(), year)
}

func paidDate(r salary.SalaryRecord) string {
	if r.PaidDate == nil {
		return ""
	}
	return r.PaidDate.Format(validator.DateLayout)
}

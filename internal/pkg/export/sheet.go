package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// SheetRow is one employee's line on the monthly salary sheet.
type SheetRow struct {
	EmployeeCode    string
	EmployeeName    string
	PresentDays     int
	AbsentDays      int
	LOPCount        int
	TotalAllowances decimal.Decimal
	TotalDeductions decimal.Decimal
	GrossSalary     decimal.Decimal
	SalaryDue       decimal.Decimal
	PaidAmount      decimal.Decimal
	BalanceAmount   decimal.Decimal
	Status          string
	PaidDate        string
}

const salarySheetName = "Salaries"

var sheetHeaders = []string{
	"Employee Code", "Employee Name", "Present Days", "Absent Days", "LOP",
	"Allowances", "Deductions", "Gross Salary", "Salary Due", "Paid", "Balance", "Status", "Paid Date",
}

// RenderSalarySheet writes rows as an XLSX workbook with a title row, a
// header row, one row per employee and a totals row.
func RenderSalarySheet(w io.Writer, title string, rows []SheetRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", salarySheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return fmt.Errorf("create money style: %w", err)
	}

	if err := f.SetCellValue(salarySheetName, "A1", title); err != nil {
		return err
	}
	if err := f.SetCellStyle(salarySheetName, "A1", "A1", bold); err != nil {
		return err
	}

	for i, h := range sheetHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		if err := f.SetCellValue(salarySheetName, cell, h); err != nil {
			return err
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(sheetHeaders), 3)
	if err := f.SetCellStyle(salarySheetName, "A3", lastHeader, bold); err != nil {
		return err
	}

	totals := make([]decimal.Decimal, 6)
	rowNum := 4
	for _, r := range rows {
		amounts := []decimal.Decimal{r.TotalAllowances, r.TotalDeductions, r.GrossSalary, r.SalaryDue, r.PaidAmount, r.BalanceAmount}
		values := []interface{}{r.EmployeeCode, r.EmployeeName, r.PresentDays, r.AbsentDays, r.LOPCount}
		for i, a := range amounts {
			values = append(values, a.InexactFloat64())
			totals[i] = totals[i].Add(a)
		}
		values = append(values, r.Status, r.PaidDate)

		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(salarySheetName, cell, &values); err != nil {
			return fmt.Errorf("write row for %s: %w", r.EmployeeCode, err)
		}
		rowNum++
	}

	totalRow := []interface{}{"Total", "", "", "", ""}
	for _, t := range totals {
		totalRow = append(totalRow, t.InexactFloat64())
	}
	totalCell, _ := excelize.CoordinatesToCellName(1, rowNum)
	if err := f.SetSheetRow(salarySheetName, totalCell, &totalRow); err != nil {
		return fmt.Errorf("write totals: %w", err)
	}
	if err := f.SetCellStyle(salarySheetName, totalCell, totalCell, bold); err != nil {
		return err
	}

	firstMoney, _ := excelize.CoordinatesToCellName(6, 4)
	lastMoney, _ := excelize.CoordinatesToCellName(11, rowNum)
	if err := f.SetCellStyle(salarySheetName, firstMoney, lastMoney, money); err != nil {
		return err
	}
	if err := f.SetColWidth(salarySheetName, "A", "B", 20); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write salary sheet: %w", err)
	}
	return nil
}

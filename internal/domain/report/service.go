package report

import "context"

// Document is a rendered report ready to be served as a download.
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ReportService renders stored salary data. It never changes it.
type ReportService interface {
	// Payslip renders one salary record as a PDF.
	Payslip(ctx context.Context, salaryRecordID string) (Document, error)

	// SalarySheet renders every salary record of year/month as an XLSX workbook.
	SalarySheet(ctx context.Context, year, month int) (Document, error)
}

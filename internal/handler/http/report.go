package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	Payslip(w http.ResponseWriter, r *http.Request)
	SalarySheet(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// Payslip implements ReportHandler.
func (h *reportHandlerImpl) Payslip(w http.ResponseWriter, r *http.Request) {
	doc, err := h.reportService.Payslip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, doc.Filename, doc.ContentType, doc.Content)
}

// SalarySheet implements ReportHandler.
func (h *reportHandlerImpl) SalarySheet(w http.ResponseWriter, r *http.Request) {
	year, month, err := periodFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	doc, err := h.reportService.SalarySheet(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, doc.Filename, doc.ContentType, doc.Content)
}

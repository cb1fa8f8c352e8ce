package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SalaryHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	GenerateForEmployee(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Pay(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.SalaryService
	now           Clock
}

func NewSalaryHandler(salaryService salary.SalaryService, now Clock) SalaryHandler {
	return &salaryHandlerImpl{salaryService: salaryService, now: now}
}

// Generate implements SalaryHandler. Per-employee failures are reported in
// the body; the request itself still succeeds.
func (h *salaryHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req salary.GenerateRequest
	if !decodeJSON(w, r, &req, "GenerateSalary") {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.ComputeSalaryBatch(r.Context(), req.Year, req.Month, h.now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salaries generated", result)
}

// GenerateForEmployee implements SalaryHandler.
func (h *salaryHandlerImpl) GenerateForEmployee(w http.ResponseWriter, r *http.Request) {
	var req salary.GenerateRequest
	if !decodeJSON(w, r, &req, "GenerateEmployeeSalary") {
		return
	}

	result, err := h.salaryService.ComputeSalary(r.Context(), chi.URLParam(r, "employeeId"), req.Year, req.Month, h.now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary generated", result)
}

// List implements SalaryHandler.
func (h *salaryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	year, month, err := periodFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.ListRecords(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements SalaryHandler.
func (h *salaryHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.salaryService.GetRecord(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Pay implements SalaryHandler.
func (h *salaryHandlerImpl) Pay(w http.ResponseWriter, r *http.Request) {
	var req salary.PayRequest
	if !decodeJSON(w, r, &req, "PaySalary") {
		return
	}

	result, err := h.salaryService.ApplyPayment(r.Context(), chi.URLParam(r, "id"), req, h.now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment recorded", result)
}

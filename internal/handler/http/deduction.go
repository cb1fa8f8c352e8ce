package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/deduction"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DeductionHandler interface {
	CreateType(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
	CreateDeduction(w http.ResponseWriter, r *http.Request)
	GetDeduction(w http.ResponseWriter, r *http.Request)
	ListDeductions(w http.ResponseWriter, r *http.Request)
	Accrual(w http.ResponseWriter, r *http.Request)
}

type deductionHandlerImpl struct {
	deductionService deduction.DeductionService
}

func NewDeductionHandler(deductionService deduction.DeductionService) DeductionHandler {
	return &deductionHandlerImpl{deductionService: deductionService}
}

// CreateType implements DeductionHandler.
func (h *deductionHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	var req deduction.CreateDeductionTypeRequest
	if !decodeJSON(w, r, &req, "CreateDeductionType") {
		return
	}

	result, err := h.deductionService.CreateType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Deduction type created successfully", result)
}

// ListTypes implements DeductionHandler.
func (h *deductionHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	result, err := h.deductionService.ListTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateDeduction implements DeductionHandler.
func (h *deductionHandlerImpl) CreateDeduction(w http.ResponseWriter, r *http.Request) {
	var req deduction.CreateObligationRequest
	if !decodeJSON(w, r, &req, "CreateDeduction") {
		return
	}

	result, err := h.deductionService.CreateObligation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Deduction created successfully", result)
}

// GetDeduction implements DeductionHandler.
func (h *deductionHandlerImpl) GetDeduction(w http.ResponseWriter, r *http.Request) {
	result, err := h.deductionService.GetObligation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListDeductions implements DeductionHandler.
func (h *deductionHandlerImpl) ListDeductions(w http.ResponseWriter, r *http.Request) {
	result, err := h.deductionService.ListObligations(r.Context(), r.URL.Query().Get("employee_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Accrual implements DeductionHandler.
func (h *deductionHandlerImpl) Accrual(w http.ResponseWriter, r *http.Request) {
	year, month, err := periodFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.deductionService.AccrueDeduction(r.Context(), chi.URLParam(r, "id"), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

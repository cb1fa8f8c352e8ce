package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	Mark(w http.ResponseWriter, r *http.Request)
	ListByDate(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	RecordPunches(w http.ResponseWriter, r *http.Request)
	SyncPunches(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	now               Clock
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, now Clock) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService, now: now}
}

// Mark implements AttendanceHandler.
func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest
	if !decodeJSON(w, r, &req, "MarkAttendance") {
		return
	}

	result, err := h.attendanceService.Mark(r.Context(), req, h.now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance marked", result)
}

// ListByDate implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListByDate(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ListByDate(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Summary implements AttendanceHandler.
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if validator.IsEmpty(employeeID) {
		response.HandleError(w, validator.ValidationErrors{{Field: "employee_id", Message: "is required"}})
		return
	}
	year, month, err := periodFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.attendanceService.Summarize(r.Context(), employeeID, year, month, h.now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.ToMonthSummaryResponse(summary))
}

// RecordPunches implements AttendanceHandler.
func (h *attendanceHandlerImpl) RecordPunches(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordPunchesRequest
	if !decodeJSON(w, r, &req, "RecordPunches") {
		return
	}

	result, err := h.attendanceService.RecordPunches(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punches recorded", result)
}

// SyncPunches implements AttendanceHandler.
func (h *attendanceHandlerImpl) SyncPunches(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.SyncPunches(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punches synced", result)
}

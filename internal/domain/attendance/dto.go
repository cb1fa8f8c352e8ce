package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

type MarkAttendanceRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	IsPresent  bool    `json:"is_present"`
	InTime     *string `json:"in_time,omitempty"`
	OutTime    *string `json:"out_time,omitempty"`
	// Defaults to true when omitted.
	MarkedManually *bool `json:"marked_manually,omitempty"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "is required"})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "invalid date format. Use YYYY-MM-DD"})
	}
	if r.InTime != nil {
		if _, ok := validator.IsValidClock(*r.InTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "in_time", Message: "must be HH:MM"})
		}
	}
	if r.OutTime != nil {
		if _, ok := validator.IsValidClock(*r.OutTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "out_time", Message: "must be HH:MM"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	Date           string  `json:"date"`
	InTime         *string `json:"in_time"`
	OutTime        *string `json:"out_time"`
	MarkedManually bool    `json:"marked_manually"`
	IsPresent      bool    `json:"is_present"`
}

func ToAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		Date:           a.Date.Format(validator.DateLayout),
		InTime:         a.InTime,
		OutTime:        a.OutTime,
		MarkedManually: a.MarkedManually,
		IsPresent:      a.IsPresent,
	}
}

type EmployeeAttendanceResponse struct {
	EmployeeID   string              `json:"employee_id"`
	EmployeeName string              `json:"employee_name"`
	EmployeeCode string              `json:"employee_code"`
	Attendance   *AttendanceResponse `json:"attendance"`
}

type PunchRequest struct {
	EmployeeCode string `json:"employee_code"`
	PunchTime    string `json:"punch_time"` // RFC3339
}

type RecordPunchesRequest struct {
	Punches []PunchRequest `json:"punches"`
}

func (r *RecordPunchesRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Punches) == 0 {
		errs = append(errs, validator.ValidationError{Field: "punches", Message: "at least one punch is required"})
	}
	for i, p := range r.Punches {
		if validator.IsEmpty(p.EmployeeCode) {
			errs = append(errs, validator.ValidationError{Field: fmt.Sprintf("punches[%d].employee_code", i), Message: "is required"})
		}
		if _, err := time.Parse(time.RFC3339, p.PunchTime); err != nil {
			errs = append(errs, validator.ValidationError{Field: fmt.Sprintf("punches[%d].punch_time", i), Message: "must be an RFC3339 timestamp"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordPunchesResponse struct {
	Received      int      `json:"received"`
	Inserted      int      `json:"inserted"`
	RecordsSynced int      `json:"records_synced"`
	SkippedCodes  []string `json:"skipped_codes,omitempty"`
}

type SyncPunchesResponse struct {
	RecordsProcessed int      `json:"records_processed"`
	SkippedCodes     []string `json:"skipped_codes,omitempty"`
}

type MonthSummaryResponse struct {
	EmployeeID    string        `json:"employee_id"`
	Year          int           `json:"year"`
	Month         int           `json:"month"`
	Cutoff        int           `json:"cutoff_day"`
	Present       int           `json:"present"`
	Absent        int           `json:"absent"`
	WeeklyOff     int           `json:"weekly_off"`
	ApprovedLeave int           `json:"approved_leave"`
	Days          []DayResponse `json:"days"`
}

type DayResponse struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

func ToMonthSummaryResponse(s MonthSummary) MonthSummaryResponse {
	days := make([]DayResponse, 0, len(s.Days))
	for _, d := range s.Days {
		days = append(days, DayResponse{Date: d.Date.Format(validator.DateLayout), Status: string(d.Status)})
	}
	return MonthSummaryResponse{
		EmployeeID:    s.EmployeeID,
		Year:          s.Year,
		Month:         s.Month,
		Cutoff:        s.Cutoff,
		Present:       s.Present,
		Absent:        s.Absent,
		WeeklyOff:     s.WeeklyOff,
		ApprovedLeave: s.ApprovedLeave,
		Days:          days,
	}
}

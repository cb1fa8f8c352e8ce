package leave

import (
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

type CreateLeaveTypeRequest struct {
	Name string `json:"name"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	name := strings.TrimSpace(r.Name)
	if name == "" {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	} else if len(name) > 50 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must be at most 50 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveTypeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateLeaveRequest struct {
	EmployeeID  string `json:"employee_id"`
	Date        string `json:"date"`
	LeaveTypeID string `json:"leave_type_id"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{Field: "leave_type_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "invalid date format. Use YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	Date        string `json:"date"`
	LeaveTypeID string `json:"leave_type_id"`
	Approved    bool   `json:"approved"`
}

func ToLeaveResponse(l Leave) LeaveResponse {
	return LeaveResponse{
		ID:          l.ID,
		EmployeeID:  l.EmployeeID,
		Date:        l.Date.Format(validator.DateLayout),
		LeaveTypeID: l.LeaveTypeID,
		Approved:    l.Approved,
	}
}

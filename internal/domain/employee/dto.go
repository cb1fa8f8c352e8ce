package employee

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeCode            string          `json:"employee_code"`
	Name                    string          `json:"name"`
	BasicSalary             decimal.Decimal `json:"basic_salary"`
	HouseRentAllowance      decimal.Decimal `json:"house_rent_allowance"`
	TransportationAllowance decimal.Decimal `json:"transportation_allowance"`
	CostOfLivingAllowance   decimal.Decimal `json:"cost_of_living_allowance"`
	DateOfJoining           string          `json:"date_of_joining"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: "must be non-negative"})
	}
	if r.HouseRentAllowance.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "house_rent_allowance", Message: "must be non-negative"})
	}
	if r.TransportationAllowance.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "transportation_allowance", Message: "must be non-negative"})
	}
	if r.CostOfLivingAllowance.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "cost_of_living_allowance", Message: "must be non-negative"})
	}
	if _, ok := validator.IsValidDate(r.DateOfJoining); !ok {
		errs = append(errs, validator.ValidationError{Field: "date_of_joining", Message: "must be a date in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID                      string          `json:"id"`
	EmployeeCode            string          `json:"employee_code"`
	Name                    string          `json:"name"`
	BasicSalary             decimal.Decimal `json:"basic_salary"`
	HouseRentAllowance      decimal.Decimal `json:"house_rent_allowance"`
	TransportationAllowance decimal.Decimal `json:"transportation_allowance"`
	CostOfLivingAllowance   decimal.Decimal `json:"cost_of_living_allowance"`
	NetSalary               decimal.Decimal `json:"net_salary"`
	DateOfJoining           string          `json:"date_of_joining"`
	Status                  string          `json:"status"`
	IsActive                bool            `json:"is_active"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                      e.ID,
		EmployeeCode:            e.EmployeeCode,
		Name:                    e.Name,
		BasicSalary:             e.BasicSalary,
		HouseRentAllowance:      e.HouseRentAllowance,
		TransportationAllowance: e.TransportationAllowance,
		CostOfLivingAllowance:   e.CostOfLivingAllowance,
		NetSalary:               e.NetSalary(),
		DateOfJoining:           e.DateOfJoining.Format(validator.DateLayout),
		Status:                  string(e.Status),
		IsActive:                e.IsActive,
	}
}

package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                      string
	EmployeeCode            string
	Name                    string
	BasicSalary             decimal.Decimal
	HouseRentAllowance      decimal.Decimal
	TransportationAllowance decimal.Decimal
	CostOfLivingAllowance   decimal.Decimal
	DateOfJoining           time.Time
	Status                  EmploymentStatus
	IsActive                bool
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusWorking    EmploymentStatus = "working"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

// NetSalary is the full fixed monthly package.
func (e Employee) NetSalary() decimal.Decimal {
	return e.BasicSalary.
		Add(e.HouseRentAllowance).
		Add(e.TransportationAllowance).
		Add(e.CostOfLivingAllowance)
}

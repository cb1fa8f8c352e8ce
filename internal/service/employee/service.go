package employee

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	joined, _ := validator.IsValidDate(req.DateOfJoining)

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		EmployeeCode:            strings.TrimSpace(req.EmployeeCode),
		Name:                    strings.TrimSpace(req.Name),
		BasicSalary:             req.BasicSalary.Round(2),
		HouseRentAllowance:      req.HouseRentAllowance.Round(2),
		TransportationAllowance: req.TransportationAllowance.Round(2),
		CostOfLivingAllowance:   req.CostOfLivingAllowance.Round(2),
		DateOfJoining:           joined,
		Status:                  employee.EmploymentStatusWorking,
		IsActive:                true,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Created employee", "employee_id", created.ID, "employee_code", created.EmployeeCode)
	return employee.ToResponse(created), nil
}

// GetByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(e), nil
}

// ListActive implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListActive(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.ToResponse(e))
	}
	return responses, nil
}

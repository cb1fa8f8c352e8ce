package leave

import (
	"context"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	leaveTypeRepo leave.LeaveTypeRepository
	leaveRepo     leave.LeaveRepository
	employeeRepo  employee.EmployeeRepository
}

func NewLeaveService(
	leaveTypeRepo leave.LeaveTypeRepository,
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		leaveTypeRepo: leaveTypeRepo,
		leaveRepo:     leaveRepo,
		employeeRepo:  employeeRepo,
	}
}

// CreateType implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	lt, err := s.leaveTypeRepo.Create(ctx, leave.LeaveType{Name: req.Name})
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}
	return leave.LeaveTypeResponse{ID: lt.ID, Name: lt.Name}, nil
}

// ListTypes implements leave.LeaveService.
func (s *LeaveServiceImpl) ListTypes(ctx context.Context) ([]leave.LeaveTypeResponse, error) {
	types, err := s.leaveTypeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]leave.LeaveTypeResponse, 0, len(types))
	for _, lt := range types {
		out = append(out, leave.LeaveTypeResponse{ID: lt.ID, Name: lt.Name})
	}
	return out, nil
}

// Request implements leave.LeaveService. New leave waits for approval.
func (s *LeaveServiceImpl) Request(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.LeaveResponse{}, err
	}
	if _, err := s.leaveTypeRepo.GetByID(ctx, req.LeaveTypeID); err != nil {
		return leave.LeaveResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	created, err := s.leaveRepo.Create(ctx, leave.Leave{
		EmployeeID:  req.EmployeeID,
		Date:        date,
		LeaveTypeID: req.LeaveTypeID,
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return leave.ToLeaveResponse(created), nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, id string) (leave.LeaveResponse, error) {
	existing, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if existing.Approved {
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyApproved
	}

	approved, err := s.leaveRepo.Approve(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return leave.ToLeaveResponse(approved), nil
}

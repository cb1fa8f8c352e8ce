package deduction

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/deduction"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

type DeductionServiceImpl struct {
	typeRepo       deduction.DeductionTypeRepository
	obligationRepo deduction.ObligationRepository
	employeeRepo   employee.EmployeeRepository
}

func NewDeductionService(
	typeRepo deduction.DeductionTypeRepository,
	obligationRepo deduction.ObligationRepository,
	employeeRepo employee.EmployeeRepository,
) deduction.DeductionService {
	return &DeductionServiceImpl{
		typeRepo:       typeRepo,
		obligationRepo: obligationRepo,
		employeeRepo:   employeeRepo,
	}
}

// CreateType implements deduction.DeductionService.
func (s *DeductionServiceImpl) CreateType(ctx context.Context, req deduction.CreateDeductionTypeRequest) (deduction.DeductionTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return deduction.DeductionTypeResponse{}, err
	}

	t, err := s.typeRepo.Create(ctx, deduction.DeductionType{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		return deduction.DeductionTypeResponse{}, err
	}
	return deduction.ToDeductionTypeResponse(t), nil
}

// ListTypes implements deduction.DeductionService.
func (s *DeductionServiceImpl) ListTypes(ctx context.Context) ([]deduction.DeductionTypeResponse, error) {
	types, err := s.typeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]deduction.DeductionTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, deduction.ToDeductionTypeResponse(t))
	}
	return out, nil
}

// CreateObligation implements deduction.DeductionService.
// Nothing is stored when the obligation fails validation.
func (s *DeductionServiceImpl) CreateObligation(ctx context.Context, req deduction.CreateObligationRequest) (deduction.ObligationResponse, error) {
	if err := req.Validate(); err != nil {
		return deduction.ObligationResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	var typeName string
	if req.DeductionTypeID != nil {
		t, err := s.typeRepo.GetByID(ctx, *req.DeductionTypeID)
		if err != nil {
			return deduction.ObligationResponse{}, err
		}
		typeName = t.Name
	}

	obligation, err := deduction.NewObligation(deduction.NewObligationParams{
		EmployeeID:      req.EmployeeID,
		DeductionTypeID: req.DeductionTypeID,
		TypeName:        typeName,
		Amount:          req.Amount,
		Method:          deduction.Method(req.Method),
		Months:          req.Months,
		OriginDate:      date,
	})
	if err != nil {
		return deduction.ObligationResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return deduction.ObligationResponse{}, err
	}

	created, err := s.obligationRepo.Create(ctx, obligation)
	if err != nil {
		return deduction.ObligationResponse{}, err
	}

	slog.Info("Created deduction obligation",
		"obligation_id", created.ID(), "employee_id", req.EmployeeID, "method", req.Method, "amount", req.Amount.String())
	return deduction.ToObligationResponse(created), nil
}

// GetObligation implements deduction.DeductionService.
func (s *DeductionServiceImpl) GetObligation(ctx context.Context, id string) (deduction.ObligationResponse, error) {
	o, err := s.obligationRepo.GetByID(ctx, id)
	if err != nil {
		return deduction.ObligationResponse{}, err
	}
	return deduction.ToObligationResponse(o), nil
}

// ListObligations implements deduction.DeductionService.
func (s *DeductionServiceImpl) ListObligations(ctx context.Context, employeeID string) ([]deduction.ObligationResponse, error) {
	if validator.IsEmpty(employeeID) {
		return nil, validator.ValidationErrors{{Field: "employee_id", Message: "is required"}}
	}
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	obligations, err := s.obligationRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	out := make([]deduction.ObligationResponse, 0, len(obligations))
	for _, o := range obligations {
		out = append(out, deduction.ToObligationResponse(o))
	}
	return out, nil
}

// AccrueDeduction implements deduction.DeductionService.
func (s *DeductionServiceImpl) AccrueDeduction(ctx context.Context, id string, year, month int) (deduction.AccrualResponse, error) {
	if errs := validator.PeriodErrors(year, month); len(errs) > 0 {
		return deduction.AccrualResponse{}, errs
	}

	o, err := s.obligationRepo.GetByID(ctx, id)
	if err != nil {
		return deduction.AccrualResponse{}, err
	}

	return deduction.AccrualResponse{
		ObligationID: o.ID(),
		Year:         year,
		Month:        month,
		Amount:       o.AmountDueFor(year, month),
	}, nil
}

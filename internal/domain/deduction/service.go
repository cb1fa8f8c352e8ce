package deduction

import "context"

type DeductionService interface {
	CreateType(ctx context.Context, req CreateDeductionTypeRequest) (DeductionTypeResponse, error)
	ListTypes(ctx context.Context) ([]DeductionTypeResponse, error)

	CreateObligation(ctx context.Context, req CreateObligationRequest) (ObligationResponse, error)
	GetObligation(ctx context.Context, id string) (ObligationResponse, error)
	ListObligations(ctx context.Context, employeeID string) ([]ObligationResponse, error)

	// AccrueDeduction returns what a single obligation owes in year/month.
	AccrueDeduction(ctx context.Context, id string, year, month int) (AccrualResponse, error)
}

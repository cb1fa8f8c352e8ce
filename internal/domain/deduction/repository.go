package deduction

import "context"

type DeductionTypeRepository interface {
	Create(ctx context.Context, deductionType DeductionType) (DeductionType, error)
	GetByID(ctx context.Context, id string) (DeductionType, error)
	List(ctx context.Context) ([]DeductionType, error)
}

type ObligationRepository interface {
	Create(ctx context.Context, obligation *Obligation) (*Obligation, error)
	GetByID(ctx context.Context, id string) (*Obligation, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*Obligation, error)

	// ListOpenByEmployee returns the employee's obligations that are not closed, in order.
	ListOpenByEmployee(ctx context.Context, employeeID string, order ReimbursementOrder) ([]*Obligation, error)

	// ListOpenByEmployeeForUpdate is ListOpenByEmployee with the rows locked
	// until the surrounding transaction ends.
	ListOpenByEmployeeForUpdate(ctx context.Context, employeeID string, order ReimbursementOrder) ([]*Obligation, error)

	// Update persists the balance fields of obligation.
	Update(ctx context.Context, obligation *Obligation) error
}

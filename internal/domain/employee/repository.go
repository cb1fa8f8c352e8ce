package employee

import (
	"context"
	"time"
)

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmployeeCode(ctx context.Context, employeeCode string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	// ListActive returns active employees ordered by employee code.
	ListActive(ctx context.Context) ([]Employee, error)
	// ListJoinedBy returns active employees whose joining date is on or before date.
	ListJoinedBy(ctx context.Context, date time.Time) ([]Employee, error)
}

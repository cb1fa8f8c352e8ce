package leave

import (
	"context"
	"time"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
}

// LeaveRepository - interface for leaves table
type LeaveRepository interface {
	Create(ctx context.Context, leave Leave) (Leave, error)
	GetByID(ctx context.Context, id string) (Leave, error)
	Approve(ctx context.Context, id string) (Leave, error)
	// ListApprovedDates returns the dates in [from, to] covered by approved leave.
	ListApprovedDates(ctx context.Context, employeeID string, from, to time.Time) ([]time.Time, error)
}

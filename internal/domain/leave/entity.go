package leave

import "time"

// LeaveType entity
type LeaveType struct {
	ID   string
	Name string
}

// Leave is a single day of leave. Only approved leave counts as a paid day.
type Leave struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	LeaveTypeID string
	Approved    bool
	CreatedAt   time.Time
}

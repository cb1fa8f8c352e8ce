package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Upsert writes the (employee, date) record, replacing times and flags of an existing one.
	Upsert(ctx context.Context, attendance Attendance) (Attendance, error)

	// ListPresentDates returns the dates in [from, to] on which the employee is marked present.
	ListPresentDates(ctx context.Context, employeeID string, from, to time.Time) ([]time.Time, error)

	// ListByDate returns every attendance record of one calendar date.
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)
}

type PunchRepository interface {
	// CreateMany stores punches, ignoring ones already recorded. Returns the number inserted.
	CreateMany(ctx context.Context, punches []Punch) (int, error)

	ListAll(ctx context.Context) ([]Punch, error)

	// ListByCodeOnDate returns the punches of one employee code on one calendar date.
	ListByCodeOnDate(ctx context.Context, employeeCode string, date time.Time) ([]Punch, error)
}

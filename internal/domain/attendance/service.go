package attendance

import (
	"context"
	"time"
)

// Aggregator classifies the days of one employee-month.
type Aggregator interface {
	Summarize(ctx context.Context, employeeID string, year, month int, asOf time.Time) (MonthSummary, error)
}

type AttendanceService interface {
	Aggregator
	Mark(ctx context.Context, req MarkAttendanceRequest, asOf time.Time) (AttendanceResponse, error)
	ListByDate(ctx context.Context, date string) ([]EmployeeAttendanceResponse, error)
	RecordPunches(ctx context.Context, req RecordPunchesRequest) (RecordPunchesResponse, error)
	SyncPunches(ctx context.Context) (SyncPunchesResponse, error)
}

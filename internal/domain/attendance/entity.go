package attendance

import (
	"time"
)

type Attendance struct {
	ID             string
	EmployeeID     string
	Date           time.Time
	InTime         *string // "15:04"
	OutTime        *string
	MarkedManually bool
	IsPresent      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Punch is one raw clock event read from a biometric device.
type Punch struct {
	ID           string
	EmployeeCode string
	PunchTime    time.Time
}

type DayStatus string

const (
	DayStatusPresent       DayStatus = "present"
	DayStatusAbsent        DayStatus = "absent"
	DayStatusWeeklyOff     DayStatus = "weekly_off"
	DayStatusApprovedLeave DayStatus = "approved_leave"
)

type Day struct {
	Date   time.Time
	Status DayStatus
}

// MonthSummary is the classification of days 1..Cutoff of one month.
type MonthSummary struct {
	EmployeeID    string
	Year          int
	Month         int
	Cutoff        int
	Present       int
	Absent        int
	WeeklyOff     int
	ApprovedLeave int
	Days          []Day
}

// PaidDays counts every day that earns salary: absences are the only unpaid days.
func (s MonthSummary) PaidDays() int {
	return s.Present + s.WeeklyOff + s.ApprovedLeave
}

package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	txManager      database.Transactor
	attendanceRepo attendance.AttendanceRepository
	punchRepo      attendance.PunchRepository
	leaveRepo      leave.LeaveRepository
	employeeRepo   employee.EmployeeRepository
	weeklyOff      time.Weekday
}

func NewAttendanceService(
	txManager database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	punchRepo attendance.PunchRepository,
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
	weeklyOff time.Weekday,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		txManager:      txManager,
		attendanceRepo: attendanceRepo,
		punchRepo:      punchRepo,
		leaveRepo:      leaveRepo,
		employeeRepo:   employeeRepo,
		weeklyOff:      weeklyOff,
	}
}

// Summarize implements attendance.Aggregator.
func (s *AttendanceServiceImpl) Summarize(ctx context.Context, employeeID string, year, month int, asOf time.Time) (attendance.MonthSummary, error) {
	if errs := validator.PeriodErrors(year, month); len(errs) > 0 {
		return attendance.MonthSummary{}, errs
	}
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return attendance.MonthSummary{}, err
	}

	cutoff := attendance.Cutoff(year, month, asOf)
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.Month(month), cutoff, 0, 0, 0, 0, time.UTC)

	presentDates, err := s.attendanceRepo.ListPresentDates(ctx, employeeID, from, to)
	if err != nil {
		return attendance.MonthSummary{}, err
	}
	leaveDates, err := s.leaveRepo.ListApprovedDates(ctx, employeeID, from, to)
	if err != nil {
		return attendance.MonthSummary{}, err
	}

	summary := attendance.Classify(year, month, cutoff, s.weeklyOff,
		attendance.DaySet(year, month, presentDates),
		attendance.DaySet(year, month, leaveDates),
	)
	summary.EmployeeID = employeeID
	return summary, nil
}

// Mark implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkAttendanceRequest, asOf time.Time) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	today := dateOf(asOf)
	if date.After(today) {
		return attendance.AttendanceResponse{}, attendance.ErrFutureAttendance
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if date.Before(dateOf(emp.DateOfJoining)) {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceBeforeJoining
	}

	record := attendance.Attendance{
		EmployeeID:     emp.ID,
		Date:           date,
		IsPresent:      req.IsPresent,
		MarkedManually: true,
	}
	if req.MarkedManually != nil {
		record.MarkedManually = *req.MarkedManually
	}

	if req.IsPresent {
		if date.Equal(today) && req.InTime == nil {
			return attendance.AttendanceResponse{}, attendance.ErrInTimeRequired
		}
		if date.Before(today) && (req.InTime == nil || req.OutTime == nil) {
			return attendance.AttendanceResponse{}, attendance.ErrInAndOutTimeRequired
		}
		record.InTime = req.InTime
		record.OutTime = req.OutTime
	}

	saved, err := s.attendanceRepo.Upsert(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToAttendanceResponse(saved), nil
}

// ListByDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByDate(ctx context.Context, dateStr string) ([]attendance.EmployeeAttendanceResponse, error) {
	date, ok := validator.IsValidDate(dateStr)
	if !ok {
		return nil, validator.ValidationErrors{{Field: "date", Message: "invalid date format. Use YYYY-MM-DD"}}
	}

	employees, err := s.employeeRepo.ListJoinedBy(ctx, date)
	if err != nil {
		return nil, err
	}
	records, err := s.attendanceRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	byEmployee := make(map[string]attendance.Attendance, len(records))
	for _, r := range records {
		byEmployee[r.EmployeeID] = r
	}

	out := make([]attendance.EmployeeAttendanceResponse, 0, len(employees))
	for _, e := range employees {
		row := attendance.EmployeeAttendanceResponse{
			EmployeeID:   e.ID,
			EmployeeName: e.Name,
			EmployeeCode: e.EmployeeCode,
		}
		if r, ok := byEmployee[e.ID]; ok {
			resp := attendance.ToAttendanceResponse(r)
			row.Attendance = &resp
		}
		out = append(out, row)
	}
	return out, nil
}

// RecordPunches implements attendance.AttendanceService.
// The days touched by the batch are synced into attendance in the same
// transaction, from every punch stored for those days.
func (s *AttendanceServiceImpl) RecordPunches(ctx context.Context, req attendance.RecordPunchesRequest) (attendance.RecordPunchesResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordPunchesResponse{}, err
	}

	punches := make([]attendance.Punch, 0, len(req.Punches))
	var days []punchDay
	seen := make(map[punchDay]bool)
	for _, p := range req.Punches {
		t, _ := time.Parse(time.RFC3339, p.PunchTime)
		punch := attendance.Punch{
			EmployeeCode: p.EmployeeCode,
			PunchTime:    wallClock(t),
		}
		punches = append(punches, punch)

		k := punchDay{code: punch.EmployeeCode, date: dateOf(punch.PunchTime)}
		if !seen[k] {
			seen[k] = true
			days = append(days, k)
		}
	}

	result := attendance.RecordPunchesResponse{Received: len(punches)}
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		inserted, err := s.punchRepo.CreateMany(ctx, punches)
		if err != nil {
			return err
		}
		result.Inserted = inserted

		var stored []attendance.Punch
		for _, k := range days {
			dayPunches, err := s.punchRepo.ListByCodeOnDate(ctx, k.code, k.date)
			if err != nil {
				return err
			}
			stored = append(stored, dayPunches...)
		}

		synced, err := s.applyPunches(ctx, stored)
		if err != nil {
			return err
		}
		result.RecordsSynced = synced.RecordsProcessed
		result.SkippedCodes = synced.SkippedCodes
		return nil
	})
	if err != nil {
		return attendance.RecordPunchesResponse{}, err
	}
	return result, nil
}

type punchDay struct {
	code string
	date time.Time
}

// SyncPunches implements attendance.AttendanceService.
// Each (employee code, day) becomes one attendance record with the first
// punch as in time and the last as out time.
func (s *AttendanceServiceImpl) SyncPunches(ctx context.Context) (attendance.SyncPunchesResponse, error) {
	punches, err := s.punchRepo.ListAll(ctx)
	if err != nil {
		return attendance.SyncPunchesResponse{}, err
	}

	var result attendance.SyncPunchesResponse
	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		result, err = s.applyPunches(ctx, punches)
		return err
	})
	if err != nil {
		return attendance.SyncPunchesResponse{}, err
	}

	slog.Info("Synced device punches", "records", result.RecordsProcessed, "skipped_codes", len(result.SkippedCodes))
	return result, nil
}

// applyPunches upserts one attendance record per (employee code, day) of
// punches. Unknown employee codes are skipped. Runs inside the caller's
// transaction.
func (s *AttendanceServiceImpl) applyPunches(ctx context.Context, punches []attendance.Punch) (attendance.SyncPunchesResponse, error) {
	type span struct{ first, last time.Time }
	spans := make(map[punchDay]*span)
	var keys []punchDay
	for _, p := range punches {
		k := punchDay{code: p.EmployeeCode, date: dateOf(p.PunchTime)}
		sp, ok := spans[k]
		if !ok {
			spans[k] = &span{first: p.PunchTime, last: p.PunchTime}
			keys = append(keys, k)
			continue
		}
		if p.PunchTime.Before(sp.first) {
			sp.first = p.PunchTime
		}
		if p.PunchTime.After(sp.last) {
			sp.last = p.PunchTime
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].code != keys[j].code {
			return keys[i].code < keys[j].code
		}
		return keys[i].date.Before(keys[j].date)
	})

	result := attendance.SyncPunchesResponse{}
	known := make(map[string]*employee.Employee)
	skipped := make(map[string]bool)

	for _, k := range keys {
		emp, seen := known[k.code]
		if !seen {
			e, err := s.employeeRepo.GetByEmployeeCode(ctx, k.code)
			switch {
			case err == nil:
				emp = &e
			case errors.Is(err, employee.ErrEmployeeNotFound):
				emp = nil
			default:
				return attendance.SyncPunchesResponse{}, err
			}
			known[k.code] = emp
		}
		if emp == nil {
			if !skipped[k.code] {
				skipped[k.code] = true
				result.SkippedCodes = append(result.SkippedCodes, k.code)
				slog.Warn("Skipping punches for unknown employee code", "employee_code", k.code)
			}
			continue
		}

		sp := spans[k]
		in := sp.first.Format(validator.ClockLayout)
		out := sp.last.Format(validator.ClockLayout)
		if _, err := s.attendanceRepo.Upsert(ctx, attendance.Attendance{
			EmployeeID:     emp.ID,
			Date:           k.date,
			InTime:         &in,
			OutTime:        &out,
			IsPresent:      true,
			MarkedManually: false,
		}); err != nil {
			return attendance.SyncPunchesResponse{}, fmt.Errorf("sync punches for %s: %w", k.code, err)
		}
		result.RecordsProcessed++
	}
	return result, nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// wallClock keeps the clock reading of t and drops its zone.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

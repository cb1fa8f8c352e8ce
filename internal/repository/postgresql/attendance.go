package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// TIME columns travel as "HH:MM" text.
const attendanceColumns = `id, employee_id, date, to_char(in_time, 'HH24:MI'), to_char(out_time, 'HH24:MI'),
	marked_manually, is_present, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.InTime, &a.OutTime,
		&a.MarkedManually, &a.IsPresent, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// Upsert implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	if a.ID == "" {
		a.ID = newID()
	}

	query := `
		INSERT INTO attendances (id, employee_id, date, in_time, out_time, marked_manually, is_present)
		VALUES ($1, $2, $3, $4::text::time, $5::text::time, $6, $7)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			in_time = EXCLUDED.in_time,
			out_time = EXCLUDED.out_time,
			marked_manually = EXCLUDED.marked_manually,
			is_present = EXCLUDED.is_present,
			updated_at = NOW()
		RETURNING ` + attendanceColumns

	saved, err := scanAttendance(q.QueryRow(ctx, query,
		a.ID, a.EmployeeID, a.Date, a.InTime, a.OutTime, a.MarkedManually, a.IsPresent,
	))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance for employee %s on %s: %w",
			a.EmployeeID, a.Date.Format("2006-01-02"), err)
	}
	return saved, nil
}

// ListPresentDates implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListPresentDates(ctx context.Context, employeeID string, from, to time.Time) ([]time.Time, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT date FROM attendances
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3 AND is_present = TRUE
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list present dates: %w", err)
	}
	defer rows.Close()

	return collectDates(rows)
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE date = $1`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}
	defer rows.Close()

	var list []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		list = append(list, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance: %w", err)
	}

	return list, nil
}

func collectDates(rows pgx.Rows) ([]time.Time, error) {
	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dates: %w", err)
	}
	return dates, nil
}

type punchRepositoryImpl struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) attendance.PunchRepository {
	return &punchRepositoryImpl{db: db}
}

// CreateMany implements attendance.PunchRepository.
func (r *punchRepositoryImpl) CreateMany(ctx context.Context, punches []attendance.Punch) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO punches (id, employee_code, punch_time)
		VALUES ($1, $2, $3)
		ON CONFLICT (employee_code, punch_time) DO NOTHING
	`

	inserted := 0
	for _, p := range punches {
		if p.ID == "" {
			p.ID = newID()
		}
		tag, err := q.Exec(ctx, query, p.ID, p.EmployeeCode, p.PunchTime)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert punch for %s: %w", p.EmployeeCode, err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

// ListAll implements attendance.PunchRepository.
func (r *punchRepositoryImpl) ListAll(ctx context.Context) ([]attendance.Punch, error) {
	return r.list(ctx, `SELECT id, employee_code, punch_time FROM punches ORDER BY employee_code, punch_time`)
}

// ListByCodeOnDate implements attendance.PunchRepository.
func (r *punchRepositoryImpl) ListByCodeOnDate(ctx context.Context, employeeCode string, date time.Time) ([]attendance.Punch, error) {
	query := `
		SELECT id, employee_code, punch_time FROM punches
		WHERE employee_code = $1 AND punch_time >= $2 AND punch_time < $3
		ORDER BY punch_time
	`
	return r.list(ctx, query, employeeCode, date, date.AddDate(0, 0, 1))
}

func (r *punchRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}
	defer rows.Close()

	var punches []attendance.Punch
	for rows.Next() {
		var p attendance.Punch
		if err := rows.Scan(&p.ID, &p.EmployeeCode, &p.PunchTime); err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		punches = append(punches, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating punches: %w", err)
	}

	return punches, nil
}

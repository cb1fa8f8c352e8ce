package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

const leaveColumns = `id, employee_id, date, leave_type_id, approved, created_at`

func scanLeave(row pgx.Row) (leave.Leave, error) {
	var l leave.Leave
	err := row.Scan(&l.ID, &l.EmployeeID, &l.Date, &l.LeaveTypeID, &l.Approved, &l.CreatedAt)
	return l, err
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, newLeave leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	if newLeave.ID == "" {
		newLeave.ID = newID()
	}

	query := `
		INSERT INTO leaves (id, employee_id, date, leave_type_id, approved)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + leaveColumns

	created, err := scanLeave(q.QueryRow(ctx, query,
		newLeave.ID, newLeave.EmployeeID, newLeave.Date, newLeave.LeaveTypeID, newLeave.Approved,
	))
	if err != nil {
		if isUniqueViolation(err, "uk_leave_employee_date") {
			return leave.Leave{}, leave.ErrLeaveAlreadyExists
		}
		return leave.Leave{}, fmt.Errorf("failed to create leave: %w", err)
	}
	return created, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	l, err := scanLeave(q.QueryRow(ctx, `SELECT `+leaveColumns+` FROM leaves WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to get leave: %w", err)
	}
	return l, nil
}

// Approve implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Approve(ctx context.Context, id string) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE leaves SET approved = TRUE WHERE id = $1 RETURNING ` + leaveColumns

	l, err := scanLeave(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to approve leave: %w", err)
	}
	return l, nil
}

// ListApprovedDates implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListApprovedDates(ctx context.Context, employeeID string, from, to time.Time) ([]time.Time, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT date FROM leaves
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3 AND approved = TRUE
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave dates: %w", err)
	}
	defer rows.Close()

	return collectDates(rows)
}

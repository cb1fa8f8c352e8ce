package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type salaryRepositoryImpl struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepositoryImpl{db: db}
}

const salaryColumns = `s.id, s.employee_id, s.year, s.month, s.present_days, s.absent_days, s.lop_count,
	s.gross_salary, s.total_allowances, s.total_deductions, s.salary_due, s.paid_amount,
	s.balance_amount, s.status, s.paid_date, s.generated_on, e.employee_code, e.name`

const salarySelect = `SELECT ` + salaryColumns + `
	FROM salary_records s
	JOIN employees e ON e.id = s.employee_id`

func scanSalaryRecord(row pgx.Row) (salary.SalaryRecord, error) {
	var r salary.SalaryRecord
	var status string
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.Year, &r.Month, &r.PresentDays, &r.AbsentDays, &r.LOPCount,
		&r.GrossSalary, &r.TotalAllowances, &r.TotalDeductions, &r.SalaryDue, &r.PaidAmount,
		&r.BalanceAmount, &status, &r.PaidDate, &r.GeneratedOn, &r.EmployeeCode, &r.EmployeeName,
	)
	r.Status = salary.Status(status)
	return r, err
}

// Upsert implements salary.SalaryRepository.
// Balance follows the new figures only while nothing has been paid.
func (r *salaryRepositoryImpl) Upsert(ctx context.Context, record salary.SalaryRecord) (salary.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	if record.ID == "" {
		record.ID = newID()
	}

	query := `
		INSERT INTO salary_records (
			id, employee_id, year, month, present_days, absent_days, lop_count,
			gross_salary, total_allowances, total_deductions, salary_due,
			paid_amount, balance_amount, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 0, $12, 'pending')
		ON CONFLICT (employee_id, year, month) DO UPDATE SET
			present_days = EXCLUDED.present_days,
			absent_days = EXCLUDED.absent_days,
			lop_count = EXCLUDED.lop_count,
			gross_salary = EXCLUDED.gross_salary,
			total_allowances = EXCLUDED.total_allowances,
			total_deductions = EXCLUDED.total_deductions,
			salary_due = EXCLUDED.salary_due,
			balance_amount = CASE WHEN salary_records.status = 'pending'
				THEN EXCLUDED.balance_amount ELSE salary_records.balance_amount END,
			generated_on = NOW()
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.Year, record.Month, record.PresentDays, record.AbsentDays, record.LOPCount,
		record.GrossSalary, record.TotalAllowances, record.TotalDeductions, record.SalaryDue,
		record.GrossSalary.Add(record.SalaryDue),
	).Scan(&id)
	if err != nil {
		return salary.SalaryRecord{}, fmt.Errorf("failed to upsert salary record for employee %s %d-%02d: %w",
			record.EmployeeID, record.Year, record.Month, err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) GetByID(ctx context.Context, id string) (salary.SalaryRecord, error) {
	return r.get(ctx, salarySelect+` WHERE s.id = $1`, id)
}

// GetByIDForUpdate implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (salary.SalaryRecord, error) {
	return r.get(ctx, salarySelect+` WHERE s.id = $1 FOR UPDATE OF s`, id)
}

func (r *salaryRepositoryImpl) get(ctx context.Context, query string, id string) (salary.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanSalaryRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.SalaryRecord{}, salary.ErrSalaryRecordNotFound
		}
		return salary.SalaryRecord{}, fmt.Errorf("failed to get salary record %s: %w", id, err)
	}
	return rec, nil
}

// SumPendingGrossExcluding implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) SumPendingGrossExcluding(ctx context.Context, employeeID string, year, month int) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(gross_salary), 0)
		FROM salary_records
		WHERE employee_id = $1 AND status = 'pending' AND NOT (year = $2 AND month = $3)
	`

	var sum decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, year, month).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum pending salary for employee %s: %w", employeeID, err)
	}
	return sum, nil
}

// UpdatePayment implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) UpdatePayment(ctx context.Context, record salary.SalaryRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_records
		SET paid_amount = $1, balance_amount = $2, status = $3, paid_date = $4
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query,
		record.PaidAmount, record.BalanceAmount, string(record.Status), record.PaidDate, record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment of salary record %s: %w", record.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return salary.ErrSalaryRecordNotFound
	}
	return nil
}

// List implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) List(ctx context.Context, year, month int) ([]salary.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, salarySelect+` WHERE s.year = $1 AND s.month = $2 ORDER BY e.employee_code`, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	var records []salary.SalaryRecord
	for rows.Next() {
		rec, err := scanSalaryRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary record: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating salary records: %w", err)
	}

	return records, nil
}

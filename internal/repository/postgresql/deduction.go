package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/deduction"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type deductionTypeRepositoryImpl struct {
	db *database.DB
}

func NewDeductionTypeRepository(db *database.DB) deduction.DeductionTypeRepository {
	return &deductionTypeRepositoryImpl{db: db}
}

// Create implements deduction.DeductionTypeRepository.
func (r *deductionTypeRepositoryImpl) Create(ctx context.Context, t deduction.DeductionType) (deduction.DeductionType, error) {
	q := GetQuerier(ctx, r.db)

	if t.ID == "" {
		t.ID = newID()
	}

	var created deduction.DeductionType
	err := q.QueryRow(ctx,
		`INSERT INTO deduction_types (id, name, description) VALUES ($1, $2, $3) RETURNING id, name, description`,
		t.ID, t.Name, t.Description,
	).Scan(&created.ID, &created.Name, &created.Description)
	if err != nil {
		return deduction.DeductionType{}, fmt.Errorf("failed to create deduction type: %w", err)
	}
	return created, nil
}

// GetByID implements deduction.DeductionTypeRepository.
func (r *deductionTypeRepositoryImpl) GetByID(ctx context.Context, id string) (deduction.DeductionType, error) {
	q := GetQuerier(ctx, r.db)

	var t deduction.DeductionType
	err := q.QueryRow(ctx, `SELECT id, name, description FROM deduction_types WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Description)
	if err != nil {
		if err == pgx.ErrNoRows {
			return deduction.DeductionType{}, deduction.ErrDeductionTypeNotFound
		}
		return deduction.DeductionType{}, fmt.Errorf("failed to get deduction type: %w", err)
	}
	return t, nil
}

// List implements deduction.DeductionTypeRepository.
func (r *deductionTypeRepositoryImpl) List(ctx context.Context) ([]deduction.DeductionType, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, description FROM deduction_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list deduction types: %w", err)
	}
	defer rows.Close()

	var types []deduction.DeductionType
	for rows.Next() {
		var t deduction.DeductionType
		if err := rows.Scan(&t.ID, &t.Name, &t.Description); err != nil {
			return nil, fmt.Errorf("failed to scan deduction type: %w", err)
		}
		types = append(types, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deduction types: %w", err)
	}

	return types, nil
}

type obligationRepositoryImpl struct {
	db *database.DB
}

func NewObligationRepository(db *database.DB) deduction.ObligationRepository {
	return &obligationRepositoryImpl{db: db}
}

const obligationSelect = `
	SELECT o.id, o.employee_id, o.deduction_type_id, COALESCE(dt.name, ''), o.amount, o.method,
		o.months, o.origin_date, o.reimbursed_amount, o.remaining_amount, o.remaining_installments,
		o.is_closed, o.created_at, o.updated_at
	FROM deduction_obligations o
	LEFT JOIN deduction_types dt ON dt.id = o.deduction_type_id
`

func scanObligation(row pgx.Row) (*deduction.Obligation, error) {
	var s deduction.State
	var method string
	var months *int
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.DeductionTypeID, &s.TypeName, &s.Amount, &method,
		&months, &s.OriginDate, &s.ReimbursedAmount, &s.RemainingAmount, &s.RemainingInstallments,
		&s.IsClosed, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Method = deduction.Method(method)
	if months != nil {
		s.Months = *months
	}
	return deduction.Restore(s), nil
}

func orderClause(order deduction.ReimbursementOrder) string {
	if order == deduction.OrderCreated {
		return ` ORDER BY o.created_at, o.id`
	}
	return ` ORDER BY o.origin_date, o.created_at, o.id`
}

// Create implements deduction.ObligationRepository.
func (r *obligationRepositoryImpl) Create(ctx context.Context, obligation *deduction.Obligation) (*deduction.Obligation, error) {
	q := GetQuerier(ctx, r.db)

	s := obligation.State()
	if s.ID == "" {
		s.ID = newID()
	}

	query := `
		INSERT INTO deduction_obligations (
			id, employee_id, deduction_type_id, amount, method, months, origin_date,
			reimbursed_amount, remaining_amount, remaining_installments, is_closed
		) VALUES ($1, $2, $3, $4, $5, NULLIF($6, 0), $7, $8, $9, $10, $11)
	`

	_, err := q.Exec(ctx, query,
		s.ID, s.EmployeeID, s.DeductionTypeID, s.Amount, string(s.Method), s.Months, s.OriginDate,
		s.ReimbursedAmount, s.RemainingAmount, s.RemainingInstallments, s.IsClosed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create deduction obligation: %w", err)
	}

	return r.GetByID(ctx, s.ID)
}

// GetByID implements deduction.ObligationRepository.
func (r *obligationRepositoryImpl) GetByID(ctx context.Context, id string) (*deduction.Obligation, error) {
	q := GetQuerier(ctx, r.db)

	o, err := scanObligation(q.QueryRow(ctx, obligationSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, deduction.ErrObligationNotFound
		}
		return nil, fmt.Errorf("failed to get deduction obligation: %w", err)
	}
	return o, nil
}

// ListByEmployee implements deduction.ObligationRepository.
func (r *obligationRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]*deduction.Obligation, error) {
	return r.list(ctx, obligationSelect+` WHERE o.employee_id = $1`+orderClause(deduction.OrderOldestFirst), employeeID)
}

// ListOpenByEmployee implements deduction.ObligationRepository.
func (r *obligationRepositoryImpl) ListOpenByEmployee(ctx context.Context, employeeID string, order deduction.ReimbursementOrder) ([]*deduction.Obligation, error) {
	return r.list(ctx, obligationSelect+` WHERE o.employee_id = $1 AND o.is_closed = FALSE`+orderClause(order), employeeID)
}

// ListOpenByEmployeeForUpdate implements deduction.ObligationRepository.
func (r *obligationRepositoryImpl) ListOpenByEmployeeForUpdate(ctx context.Context, employeeID string, order deduction.ReimbursementOrder) ([]*deduction.Obligation, error) {
	// The type join is outer, so only the obligation rows can be locked.
	query := obligationSelect + ` WHERE o.employee_id = $1 AND o.is_closed = FALSE` + orderClause(order) + ` FOR UPDATE OF o`
	return r.list(ctx, query, employeeID)
}

// Update implements deduction.ObligationRepository.
func (r *obligationRepositoryImpl) Update(ctx context.Context, obligation *deduction.Obligation) error {
	q := GetQuerier(ctx, r.db)

	s := obligation.State()
	query := `
		UPDATE deduction_obligations
		SET reimbursed_amount = $1, remaining_amount = $2, remaining_installments = $3,
			is_closed = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, s.ReimbursedAmount, s.RemainingAmount, s.RemainingInstallments, s.IsClosed, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update deduction obligation %s: %w", s.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return deduction.ErrObligationNotFound
	}
	return nil
}

func (r *obligationRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]*deduction.Obligation, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list deduction obligations: %w", err)
	}
	defer rows.Close()

	var obligations []*deduction.Obligation
	for rows.Next() {
		o, err := scanObligation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deduction obligation: %w", err)
		}
		obligations = append(obligations, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deduction obligations: %w", err)
	}

	return obligations, nil
}

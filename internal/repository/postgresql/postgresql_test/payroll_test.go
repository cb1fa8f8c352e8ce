package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/deduction"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createEmployee(t *testing.T, db *database.DB, code string) employee.Employee {
	t.Helper()
	emp, err := postgresql.NewEmployeeRepository(db).Create(context.Background(), employee.Employee{
		EmployeeCode:            code,
		Name:                    "Employee " + code,
		BasicSalary:             decimal.NewFromInt(3000),
		HouseRentAllowance:      decimal.NewFromInt(500),
		TransportationAllowance: decimal.NewFromInt(200),
		CostOfLivingAllowance:   decimal.NewFromInt(100),
		DateOfJoining:           time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:                  employee.EmploymentStatusWorking,
		IsActive:                true,
	})
	require.NoError(t, err)
	return emp
}

func TestEmployeeRepository_DuplicateCode(t *testing.T) {
	setup := NewTestDatabase(t)
	createEmployee(t, setup.DB, "E001")

	_, err := postgresql.NewEmployeeRepository(setup.DB).Create(context.Background(), employee.Employee{
		EmployeeCode:  "E001",
		Name:          "Dup",
		DateOfJoining: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:        employee.EmploymentStatusWorking,
		IsActive:      true,
	})
	assert.True(t, errors.Is(err, employee.ErrEmployeeCodeExists))
}

func TestWithTransaction_RollsBack(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)
	boom := errors.New("boom")

	var createdID string
	err := postgresql.NewTxManager(setup.DB).WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := repo.Create(ctx, employee.Employee{
			EmployeeCode:  "E900",
			Name:          "Rolled back",
			DateOfJoining: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			Status:        employee.EmploymentStatusWorking,
			IsActive:      true,
		})
		if err != nil {
			return err
		}
		createdID = emp.ID
		return boom
	})

	assert.True(t, errors.Is(err, boom))
	_, err = repo.GetByID(ctx, createdID)
	assert.True(t, errors.Is(err, employee.ErrEmployeeNotFound))
}

func TestSalaryRepository_UpsertKeepsPayment(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	emp := createEmployee(t, setup.DB, "E001")
	repo := postgresql.NewSalaryRepository(setup.DB)

	first, err := repo.Upsert(ctx, salary.SalaryRecord{
		EmployeeID:      emp.ID,
		Year:            2024,
		Month:           6,
		PresentDays:     23,
		AbsentDays:      2,
		LOPCount:        2,
		GrossSalary:     decimal.RequireFromString("3546.67"),
		TotalAllowances: decimal.NewFromInt(800),
		TotalDeductions: decimal.Zero,
		SalaryDue:       decimal.Zero,
	})
	require.NoError(t, err)
	assert.Equal(t, salary.StatusPending, first.Status)
	assert.True(t, first.BalanceAmount.Equal(decimal.RequireFromString("3546.67")))
	assert.Equal(t, "E001", first.EmployeeCode)

	paidOn := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	first.PaidAmount = decimal.NewFromInt(1000)
	first.BalanceAmount = decimal.RequireFromString("2546.67")
	first.Status = salary.StatusPartiallyPaid
	first.PaidDate = &paidOn
	require.NoError(t, repo.UpdatePayment(ctx, first))

	second, err := repo.Upsert(ctx, salary.SalaryRecord{
		EmployeeID:  emp.ID,
		Year:        2024,
		Month:       6,
		PresentDays: 24,
		AbsentDays:  1,
		LOPCount:    1,
		GrossSalary: decimal.RequireFromString("3673.33"),
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, second.AbsentDays)
	assert.True(t, second.GrossSalary.Equal(decimal.RequireFromString("3673.33")))
	assert.True(t, second.PaidAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, second.BalanceAmount.Equal(decimal.RequireFromString("2546.67")))
	assert.Equal(t, salary.StatusPartiallyPaid, second.Status)
	require.NotNil(t, second.PaidDate)

	pending, err := repo.SumPendingGrossExcluding(ctx, emp.ID, 2024, 7)
	require.NoError(t, err)
	assert.True(t, pending.IsZero())
}

func TestObligationRepository_Lifecycle(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	emp := createEmployee(t, setup.DB, "E001")

	loan, err := postgresql.NewDeductionTypeRepository(setup.DB).Create(ctx, deduction.DeductionType{Name: "Loan"})
	require.NoError(t, err)

	repo := postgresql.NewObligationRepository(setup.DB)
	o, err := deduction.NewObligation(deduction.NewObligationParams{
		EmployeeID:      emp.ID,
		DeductionTypeID: &loan.ID,
		Amount:          decimal.NewFromInt(300),
		Method:          deduction.MethodInstallments,
		Months:          3,
		OriginDate:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	created, err := repo.Create(ctx, o)
	require.NoError(t, err)
	assert.Equal(t, "Loan", created.State().TypeName)

	err = postgresql.NewTxManager(setup.DB).WithinTransaction(ctx, func(ctx context.Context) error {
		open, err := repo.ListOpenByEmployeeForUpdate(ctx, emp.ID, deduction.OrderOldestFirst)
		if err != nil {
			return err
		}
		require.Len(t, open, 1)
		for i := 0; i < 3; i++ {
			open[0].Apply(decimal.NewFromInt(100))
		}
		return repo.Update(ctx, open[0])
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, created.ID())
	require.NoError(t, err)
	s := stored.State()
	assert.True(t, s.IsClosed)
	assert.True(t, s.RemainingAmount.IsZero())
	assert.True(t, s.ReimbursedAmount.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 0, s.RemainingInstallments)

	open, err := repo.ListOpenByEmployee(ctx, emp.ID, deduction.OrderCreated)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestPunchRepository_IgnoresDuplicates(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewPunchRepository(setup.DB)

	punches := []attendance.Punch{
		{EmployeeCode: "E001", PunchTime: time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)},
		{EmployeeCode: "E001", PunchTime: time.Date(2024, 6, 10, 17, 0, 0, 0, time.UTC)},
	}
	inserted, err := repo.CreateMany(ctx, punches)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	inserted, err = repo.CreateMany(ctx, punches)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPunchRepository_ListByCodeOnDate(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewPunchRepository(setup.DB)

	_, err := repo.CreateMany(ctx, []attendance.Punch{
		{EmployeeCode: "E001", PunchTime: time.Date(2024, 6, 9, 23, 59, 0, 0, time.UTC)},
		{EmployeeCode: "E001", PunchTime: time.Date(2024, 6, 10, 17, 0, 0, 0, time.UTC)},
		{EmployeeCode: "E001", PunchTime: time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)},
		{EmployeeCode: "E001", PunchTime: time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)},
		{EmployeeCode: "E002", PunchTime: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)

	day, err := repo.ListByCodeOnDate(ctx, "E001", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, 8, day[0].PunchTime.Hour())
	assert.Equal(t, 17, day[1].PunchTime.Hour())
}

package deduction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/deduction"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/payroll-backend-go/internal/service/servicetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup() (deduction.DeductionService, *servicetest.DeductionTypes, *servicetest.Obligations) {
	employees := servicetest.NewEmployees(employee.Employee{
		ID:            "emp-1",
		EmployeeCode:  "E001",
		DateOfJoining: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:      true,
	})
	types := servicetest.NewDeductionTypes()
	obligations := servicetest.NewObligations()
	return NewDeductionService(types, obligations, employees), types, obligations
}

func TestDeductionService_CreateObligation_Installments(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup()

	dt, err := svc.CreateType(ctx, deduction.CreateDeductionTypeRequest{Name: " Advance "})
	require.NoError(t, err)
	assert.Equal(t, "Advance", dt.Name)

	resp, err := svc.CreateObligation(ctx, deduction.CreateObligationRequest{
		EmployeeID:      "emp-1",
		DeductionTypeID: &dt.ID,
		Amount:          decimal.NewFromInt(1200),
		Method:          "installments",
		Months:          12,
		Date:            "2024-03-15",
	})
	require.NoError(t, err)

	assert.Equal(t, "Advance", resp.DeductionTypeName)
	assert.True(t, resp.RemainingAmount.Equal(decimal.NewFromInt(1200)))
	assert.True(t, resp.ReimbursedAmount.IsZero())
	assert.True(t, resp.InstallmentAmount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 12, resp.RemainingInstallments)
	assert.False(t, resp.IsClosed)
}

func TestDeductionService_CreateObligation_InstallmentsWithoutMonthsNotStored(t *testing.T) {
	ctx := context.Background()
	svc, _, obligations := setup()

	_, err := svc.CreateObligation(ctx, deduction.CreateObligationRequest{
		EmployeeID: "emp-1",
		Amount:     decimal.NewFromInt(1200),
		Method:     "installments",
		Date:       "2024-03-15",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, deduction.ErrInstallmentMonthsRequired))
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
	assert.Equal(t, 0, obligations.Len())
}

func TestDeductionService_CreateObligation_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, obligations := setup()

	missingType := "nope"
	_, err := svc.CreateObligation(ctx, deduction.CreateObligationRequest{
		EmployeeID:      "emp-1",
		DeductionTypeID: &missingType,
		Amount:          decimal.NewFromInt(100),
		Method:          "next_month",
		Date:            "2024-03-15",
	})
	assert.True(t, errors.Is(err, deduction.ErrDeductionTypeNotFound))

	_, err = svc.CreateObligation(ctx, deduction.CreateObligationRequest{
		EmployeeID: "ghost",
		Amount:     decimal.NewFromInt(100),
		Method:     "next_month",
		Date:       "2024-03-15",
	})
	assert.True(t, errors.Is(err, employee.ErrEmployeeNotFound))
	assert.Equal(t, 0, obligations.Len())
}

func TestDeductionService_CreateObligation_BadDate(t *testing.T) {
	svc, _, _ := setup()

	_, err := svc.CreateObligation(context.Background(), deduction.CreateObligationRequest{
		EmployeeID: "emp-1",
		Amount:     decimal.NewFromInt(100),
		Method:     "annual",
		Date:       "15/03/2024",
	})

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "date")
}

func TestDeductionService_AccrueDeduction(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup()
	dt, err := svc.CreateType(ctx, deduction.CreateDeductionTypeRequest{Name: "Loan"})
	require.NoError(t, err)

	created, err := svc.CreateObligation(ctx, deduction.CreateObligationRequest{
		EmployeeID:      "emp-1",
		DeductionTypeID: &dt.ID,
		Amount:          decimal.NewFromInt(1200),
		Method:          "installments",
		Months:          12,
		Date:            "2024-03-01",
	})
	require.NoError(t, err)

	cases := []struct {
		year, month int
		want        int64
	}{
		{2024, 5, 100},
		{2025, 2, 100},
		{2025, 3, 0},
	}
	for _, c := range cases {
		got, err := svc.AccrueDeduction(ctx, created.ID, c.year, c.month)
		require.NoError(t, err)
		assert.True(t, got.Amount.Equal(decimal.NewFromInt(c.want)), "%d-%02d: %s", c.year, c.month, got.Amount)
	}

	_, err = svc.AccrueDeduction(ctx, "missing", 2024, 5)
	assert.True(t, errors.Is(err, deduction.ErrObligationNotFound))

	_, err = svc.AccrueDeduction(ctx, created.ID, 2024, 0)
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}

func TestDeductionService_ListObligations(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup()

	for _, date := range []string{"2024-05-01", "2024-02-01"} {
		_, err := svc.CreateObligation(ctx, deduction.CreateObligationRequest{
			EmployeeID: "emp-1",
			Amount:     decimal.NewFromInt(50),
			Method:     "next_month",
			Date:       date,
		})
		require.NoError(t, err)
	}

	list, err := svc.ListObligations(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2024-02-01", list[0].Date)

	_, err = svc.ListObligations(ctx, "ghost")
	assert.True(t, errors.Is(err, employee.ErrEmployeeNotFound))
}

package salary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/deduction"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	attendanceservice "github.com/cmlabs-hris/payroll-backend-go/internal/service/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/service/servicetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var asOf = time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	employees   *servicetest.Employees
	attendance  *servicetest.Attendance
	leaves      *servicetest.Leaves
	obligations *servicetest.Obligations
	salaries    *servicetest.Salaries
	service     salary.SalaryService
}

func newEmployee(id, code string) employee.Employee {
	return employee.Employee{
		ID:                      id,
		EmployeeCode:            code,
		Name:                    "Employee " + code,
		BasicSalary:             dec("3000"),
		HouseRentAllowance:      dec("500"),
		TransportationAllowance: dec("200"),
		CostOfLivingAllowance:   dec("100"),
		DateOfJoining:           day(2020, 1, 1),
		Status:                  employee.EmploymentStatusWorking,
		IsActive:                true,
	}
}

func newFixture(t *testing.T, aggregator func(attendance.Aggregator) attendance.Aggregator, emps ...employee.Employee) *fixture {
	t.Helper()
	f := &fixture{
		employees:   servicetest.NewEmployees(emps...),
		attendance:  servicetest.NewAttendance(),
		leaves:      servicetest.NewLeaves(),
		obligations: servicetest.NewObligations(),
	}
	f.salaries = servicetest.NewSalaries(f.employees)

	var agg attendance.Aggregator = attendanceservice.NewAttendanceService(
		servicetest.PassthroughTx{}, f.attendance, &servicetest.Punches{}, f.leaves, f.employees, time.Sunday,
	)
	if aggregator != nil {
		agg = aggregator(agg)
	}

	f.service = NewSalaryService(servicetest.PassthroughTx{}, f.salaries, f.employees, f.obligations, agg, deduction.OrderOldestFirst)
	return f
}

// presentInJune marks every day of June 2024 present except the given days.
func (f *fixture) presentInJune(employeeID string, except ...int) {
	skip := map[int]bool{}
	for _, d := range except {
		skip[d] = true
	}
	for d := 1; d <= 30; d++ {
		if !skip[d] {
			f.attendance.Present(employeeID, day(2024, 6, d))
		}
	}
}

func (f *fixture) addObligation(t *testing.T, employeeID, typeName string, method deduction.Method, amount string, months int, origin time.Time) string {
	t.Helper()
	typeID := "type-" + typeName
	o, err := deduction.NewObligation(deduction.NewObligationParams{
		EmployeeID:      employeeID,
		DeductionTypeID: &typeID,
		TypeName:        typeName,
		Amount:          dec(amount),
		Method:          method,
		Months:          months,
		OriginDate:      origin,
	})
	require.NoError(t, err)
	created, err := f.obligations.Create(context.Background(), o)
	require.NoError(t, err)
	return created.ID()
}

// ===== COMPUTE =====

func TestSalaryService_ComputeSalary_TwoAbsences(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, newEmployee("emp-1", "E001"))
	f.presentInJune("emp-1", 4, 5)

	res, err := f.service.ComputeSalary(ctx, "emp-1", 2024, 6, asOf)
	require.NoError(t, err)

	assert.Equal(t, 30, res.DaysInMonth)
	assert.Equal(t, 30, res.CutoffDay)
	assert.Equal(t, 23, res.PresentDays)
	assert.Equal(t, 5, res.WeeklyOffDays)
	assert.Equal(t, 2, res.AbsentDays)
	assert.Equal(t, 2, res.LOPCount)
	assert.Equal(t, 28, res.PaidDays)
	assert.True(t, res.GrossSalary.Equal(dec("3546.67")), "gross = %s", res.GrossSalary)
	assert.True(t, res.SalaryDue.IsZero())
	assert.Equal(t, string(salary.StatusPending), res.Status)
	assert.True(t, res.PaidAmount.IsZero())
	assert.True(t, res.BalanceAmount.Equal(dec("3546.67")))
	assert.Equal(t, "E001", res.EmployeeCode)
	assert.NotEmpty(t, res.RecordID)
}

func TestSalaryService_ComputeSalary_RunningMonthUsesToday(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, newEmployee("emp-1", "E001"))
	for d := 1; d <= 10; d++ {
		f.attendance.Present("emp-1", day(2024, 7, d))
	}

	res, err := f.service.ComputeSalary(ctx, "emp-1", 2024, 7, asOf)
	require.NoError(t, err)

	assert.Equal(t, 10, res.CutoffDay)
	assert.Equal(t, 31, res.DaysInMonth)
	assert.Equal(t, 10, res.PaidDays)
	assert.Equal(t, 0, res.AbsentDays)
}

func TestSalaryService_ComputeSalary_AppliesDeductionBuckets(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, newEmployee("emp-1", "E001"))
	f.presentInJune("emp-1")
	f.addObligation(t, "emp-1", "Advance", deduction.MethodNextMonth, "500", 0, day(2024, 5, 20))
	f.addObligation(t, "emp-1", "Loan", deduction.MethodInstallments, "1200", 12, day(2024, 3, 1))

	res, err := f.service.ComputeSalary(ctx, "emp-1", 2024, 6, asOf)
	require.NoError(t, err)

	assert.True(t, res.AdvanceDeduction.Equal(dec("500")))
	assert.True(t, res.OtherDeduction.Equal(dec("100")))
	assert.True(t, res.TotalDeductions.Equal(dec("600")))
	assert.True(t, res.GrossSalary.Equal(dec("3200")), "gross = %s", res.GrossSalary)
}

func TestSalaryService_ComputeSalary_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, newEmployee("emp-1", "E001"))
	f.presentInJune("emp-1", 4)

	first, err := f.service.ComputeSalary(ctx, "emp-1", 2024, 6, asOf)
	require.NoError(t, err)
	second, err := f.service.ComputeSalary(ctx, "emp-1", 2024, 6, asOf)
	require.NoError(t, err)

	assert.Equal(t, first.RecordID, second.RecordID)
	assert.True(t, first.GrossSalary.Equal(second.GrossSalary))
	assert.True(t, second.PaidAmount.IsZero())
	assert.Equal(t, string(salary.StatusPending), second.Status)
}

func TestSalaryService_ComputeSalary_KeepsPaymentState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, newEmployee("emp-1", "E001"))
	f.presentInJune("emp-1")

	first, err := f.service.ComputeSalary(ctx, "emp-1", 2024, 6, asOf)
	require.NoError(t, err)
	_, err = f.service.ApplyPayment(ctx, first.RecordID, salary.PayRequest{Amount: dec("1000")}, asOf)
	require.NoError(t, err)

	// An absence recorded later changes the figures but not the payment.
	f.attendance.Upsert(ctx, attendance.Attendance{EmployeeID: "emp-1", Date: day(2024, 6, 4), IsPresent: false})
	again, err := f.service.ComputeSalary(ctx, "emp-1", 2024, 6, asOf)
	require.NoError(t, err)

	assert.Equal(t, 1, again.AbsentDays)
	assert.True(t, again.PaidAmount.Equal(dec("1000")))
	assert.Equal(t, string(salary.StatusPartiallyPaid), again.Status)
	assert.True(t, again.BalanceAmount.Equal(dec("2800")))
	require.NotNil(t, again.PaidDate)
}

func TestSalaryService_ComputeSalary_CarriesPendingDue(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, newEmployee("emp-1", "E001"))
	f.salaries.Put(salary.SalaryRecord{
		ID: "may", EmployeeID: "emp-1", Year: 2024, Month: 5,
		GrossSalary: dec("1500"), SalaryDue: dec("0"), PaidAmount: dec("0"), BalanceAmount: dec("1500"),
		Status: salary.StatusPending,
	})
	f.salaries.Put(salary.SalaryRecord{
		ID: "april", EmployeeID: "emp-1", Year: 2024, Month: 4,
		GrossSalary: dec("3800"), SalaryDue: dec("0"), PaidAmount: dec("3800"), BalanceAmount: dec("0"),
		Status: salary.StatusPaid,
	})
	f.presentInJune("emp-1")

	res, err := f.service.ComputeSalary(ctx, "emp-1", 2024, 6, asOf)
	require.NoError(t, err)

	assert.True(t, res.SalaryDue.Equal(dec("1500")))
	assert.True(t, res.TotalOwed.Equal(dec("5300")))
	assert.True(t, res.BalanceAmount.Equal(dec("5300")))
}

func TestSalaryService_ComputeSalary_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, newEmployee("emp-1", "E001"))

	_, err := f.service.ComputeSalary(ctx, "missing", 2024, 6, asOf)
	assert.True(t, errors.Is(err, employee.ErrEmployeeNotFound))

	_, err = f.service.ComputeSalary(ctx, "emp-1", 2024, 13, asOf)
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}

type failingAggregator struct {
	attendance.Aggregator
	failFor string
}

func (a failingAggregator) Summarize(ctx context.Context, employeeID string, year, month int, asOf time.Time) (attendance.MonthSummary, error) {
	if employeeID == a.failFor {
		return attendance.MonthSummary{}, errors.New("corrupt attendance")
	}
	return a.Aggregator.Summarize(ctx, employeeID, year, month, asOf)
}

func TestSalaryService_ComputeSalaryBatch_IsolatesFailures(t *testing.T) {
	ctx := context.Background()
	inactive := newEmployee("emp-3", "E003")
	inactive.IsActive = false
	f := newFixture(t,
		func(a attendance.Aggregator) attendance.Aggregator {
			return failingAggregator{Aggregator: a, failFor: "emp-2"}
		},
		newEmployee("emp-1", "E001"), newEmployee("emp-2", "E002"), inactive,
	)
	f.presentInJune("emp-1")

	batch, err := f.service.ComputeSalaryBatch(ctx, 2024, 6, asOf)
	require.NoError(t, err)

	require.Len(t, batch.Results, 1)
	assert.Equal(t, "emp-1", batch.Results[0].EmployeeID)
	require.Len(t, batch.Failures, 1)
	assert.Equal(t, "emp-2", batch.Failures[0].EmployeeID)
	assert.Contains(t, batch.Failures[0].Error, "corrupt attendance")

	records, err := f.service.ListRecords(ctx, 2024, 6)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

// ===== PAYMENT =====

func TestSalaryService_ApplyPayment_Overpayment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, newEmployee("emp-1", "E001"))
	f.presentInJune("emp-1")
	res, err := f.service.ComputeSalary(ctx, "emp-1", 2024, 6, asOf)
	require.NoError(t, err)

	paid, err := f.service.ApplyPayment(ctx, res.RecordID, salary.PayRequest{Amount: dec("10000")}, asOf)
	require.NoError(t, err)

	assert.Equal(t, string(salary.StatusPaid), paid.Record.Status)
	assert.True(t, paid.Record.BalanceAmount.IsZero())
	assert.True(t, paid.Record.PaidAmount.Equal(dec("10000")))
	require.NotNil(t, paid.Record.PaidDate)
	assert.Equal(t, "2024-07-10", *paid.Record.PaidDate)
}

func TestSalaryService_ApplyPayment_ReimbursesOldestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, newEmployee("emp-1", "E001"))
	newer := f.addObligation(t, "emp-1", "Loan", deduction.MethodNextMonth, "300", 0, day(2024, 6, 1))
	older := f.addObligation(t, "emp-1", "Advance", deduction.MethodInstallments, "1200", 12, day(2024, 2, 1))
	f.salaries.Put(salary.SalaryRecord{
		ID: "rec", EmployeeID: "emp-1", Year: 2024, Month: 6,
		GrossSalary: dec("3000"), SalaryDue: dec("0"), PaidAmount: dec("0"), BalanceAmount: dec("3000"),
		Status: salary.StatusPending,
	})

	out, err := f.service.ApplyPayment(ctx, "rec", salary.PayRequest{Amount: dec("250")}, asOf)
	require.NoError(t, err)

	require.Len(t, out.Reimbursements, 2)
	assert.Equal(t, older, out.Reimbursements[0].ObligationID)
	assert.True(t, out.Reimbursements[0].Applied.Equal(dec("100")))
	assert.Equal(t, newer, out.Reimbursements[1].ObligationID)
	assert.True(t, out.Reimbursements[1].Applied.Equal(dec("150")))

	olderState := f.obligations.State(older)
	assert.True(t, olderState.RemainingAmount.Equal(dec("1100")))
	assert.Equal(t, 11, olderState.RemainingInstallments)
	newerState := f.obligations.State(newer)
	assert.True(t, newerState.RemainingAmount.Equal(dec("150")))
	assert.True(t, newerState.ReimbursedAmount.Add(newerState.RemainingAmount).Equal(newerState.Amount))

	assert.Equal(t, string(salary.StatusPartiallyPaid), out.Record.Status)
	assert.True(t, out.Record.BalanceAmount.Equal(dec("2750")))
}

func TestSalaryService_ApplyPayment_SubCentLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, newEmployee("emp-1", "E001"))
	id := f.addObligation(t, "emp-1", "Advance", deduction.MethodNextMonth, "50", 0, day(2024, 5, 1))
	f.salaries.Put(salary.SalaryRecord{
		ID: "rec", EmployeeID: "emp-1", Year: 2024, Month: 6,
		GrossSalary: dec("100.01"), SalaryDue: dec("0"), PaidAmount: dec("0"), BalanceAmount: dec("100.01"),
		Status: salary.StatusPending,
	})
	obligationBefore := f.obligations.State(id)

	_, err := f.service.ApplyPayment(ctx, "rec", salary.PayRequest{Amount: dec("100.005")}, asOf)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, obligationBefore, f.obligations.State(id))

	record, err := f.service.GetRecord(ctx, "rec")
	require.NoError(t, err)
	assert.Equal(t, string(salary.StatusPending), record.Status)
	assert.True(t, record.PaidAmount.IsZero())
}

func TestSalaryService_ApplyPayment_CreatedOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, newEmployee("emp-1", "E001"))
	first := f.addObligation(t, "emp-1", "Loan", deduction.MethodNextMonth, "300", 0, day(2024, 6, 1))
	f.addObligation(t, "emp-1", "Advance", deduction.MethodNextMonth, "300", 0, day(2024, 2, 1))
	f.salaries.Put(salary.SalaryRecord{
		ID: "rec", EmployeeID: "emp-1", Year: 2024, Month: 6,
		GrossSalary: dec("3000"), SalaryDue: dec("0"), PaidAmount: dec("0"), BalanceAmount: dec("3000"),
		Status: salary.StatusPending,
	})
	svc := NewSalaryService(servicetest.PassthroughTx{}, f.salaries, f.employees, f.obligations, nil, deduction.OrderCreated)

	out, err := svc.ApplyPayment(ctx, "rec", salary.PayRequest{Amount: dec("100")}, asOf)
	require.NoError(t, err)

	require.Len(t, out.Reimbursements, 1)
	assert.Equal(t, first, out.Reimbursements[0].ObligationID)
}

func TestSalaryService_ApplyPayment_ClosedObligationsUntouched(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, newEmployee("emp-1", "E001"))
	id := f.addObligation(t, "emp-1", "Loan", deduction.MethodNextMonth, "100", 0, day(2024, 5, 1))
	f.salaries.Put(salary.SalaryRecord{
		ID: "rec", EmployeeID: "emp-1", Year: 2024, Month: 6,
		GrossSalary: dec("3000"), SalaryDue: dec("0"), PaidAmount: dec("0"), BalanceAmount: dec("3000"),
		Status: salary.StatusPending,
	})

	_, err := f.service.ApplyPayment(ctx, "rec", salary.PayRequest{Amount: dec("500")}, asOf)
	require.NoError(t, err)
	require.True(t, f.obligations.State(id).IsClosed)
	closedState := f.obligations.State(id)

	out, err := f.service.ApplyPayment(ctx, "rec", salary.PayRequest{Amount: dec("500")}, asOf)
	require.NoError(t, err)

	assert.Empty(t, out.Reimbursements)
	assert.Equal(t, closedState, f.obligations.State(id))
}

func TestSalaryService_ApplyPayment_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, newEmployee("emp-1", "E001"))

	_, err := f.service.ApplyPayment(ctx, "missing", salary.PayRequest{Amount: dec("10")}, asOf)
	assert.True(t, errors.Is(err, salary.ErrSalaryRecordNotFound))

	_, err = f.service.ApplyPayment(ctx, "missing", salary.PayRequest{Amount: dec("-10")}, asOf)
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}

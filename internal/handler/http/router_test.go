package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/deduction"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/salary"
	attendanceService "github.com/cmlabs-hris/payroll-backend-go/internal/service/attendance"
	deductionService "github.com/cmlabs-hris/payroll-backend-go/internal/service/deduction"
	employeeService "github.com/cmlabs-hris/payroll-backend-go/internal/service/employee"
	leaveService "github.com/cmlabs-hris/payroll-backend-go/internal/service/leave"
	reportService "github.com/cmlabs-hris/payroll-backend-go/internal/service/report"
	salaryService "github.com/cmlabs-hris/payroll-backend-go/internal/service/salary"
	"github.com/cmlabs-hris/payroll-backend-go/internal/service/servicetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 7, 10, 9, 30, 0, 0, time.UTC)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	employees := servicetest.NewEmployees()
	attendances := servicetest.NewAttendance()
	leaves := servicetest.NewLeaves()
	obligations := servicetest.NewObligations()
	salaries := servicetest.NewSalaries(employees)
	tx := servicetest.PassthroughTx{}
	now := func() time.Time { return testNow }

	attendanceSvc := attendanceService.NewAttendanceService(tx, attendances, &servicetest.Punches{}, leaves, employees, time.Sunday)

	return NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), []string{"*"}, Handlers{
		Employee:   NewEmployeeHandler(employeeService.NewEmployeeService(employees)),
		Attendance: NewAttendanceHandler(attendanceSvc, now),
		Leave:      NewLeaveHandler(leaveService.NewLeaveService(servicetest.NewLeaveTypes(), leaves, employees)),
		Deduction:  NewDeductionHandler(deductionService.NewDeductionService(servicetest.NewDeductionTypes(), obligations, employees)),
		Salary:     NewSalaryHandler(salaryService.NewSalaryService(tx, salaries, employees, obligations, attendanceSvc, deduction.OrderOldestFirst), now),
		Report:     NewReportHandler(reportService.NewReportService(salaries, employees, "Acme")),
	})
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func createEmployee(t *testing.T, h http.Handler, code string) employee.EmployeeResponse {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/v1/employees", map[string]any{
		"employee_code":            code,
		"name":                     "Employee " + code,
		"basic_salary":             "3000",
		"house_rent_allowance":     "500",
		"transportation_allowance": "200",
		"cost_of_living_allowance": "100",
		"date_of_joining":          "2024-01-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var emp employee.EmployeeResponse
	decode(t, rec, &emp)
	return emp
}

func TestRouter_Healthz(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_EmployeeErrors(t *testing.T) {
	h := newTestServer(t)
	createEmployee(t, h, "E001")

	rec := do(t, h, http.MethodPost, "/api/v1/employees", map[string]any{
		"employee_code": "E001", "name": "Dup", "date_of_joining": "2024-01-01",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/employees", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decode(t, rec, nil)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "employee_code")

	rec = do(t, h, http.MethodGet, "/api/v1/employees/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/employees", bytes.NewBufferString("{"))
	bad := httptest.NewRecorder()
	h.ServeHTTP(bad, req)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestRouter_AttendanceRules(t *testing.T) {
	h := newTestServer(t)
	emp := createEmployee(t, h, "E001")

	rec := do(t, h, http.MethodPost, "/api/v1/attendance/mark", map[string]any{
		"employee_id": emp.ID, "date": "2024-07-11", "is_present": true, "in_time": "09:00",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/attendance/mark", map[string]any{
		"employee_id": emp.ID, "date": "2024-07-10", "is_present": true, "in_time": "09:00",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/v1/attendance/summary?employee_id="+emp.ID+"&year=2024&month=7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary attendance.MonthSummaryResponse
	decode(t, rec, &summary)
	assert.Equal(t, 10, summary.Cutoff)
	assert.Equal(t, 1, summary.Present)
	assert.Equal(t, 1, summary.WeeklyOff)
	assert.Equal(t, 8, summary.Absent)

	rec = do(t, h, http.MethodGet, "/api/v1/attendance/summary?employee_id="+emp.ID+"&year=2024&month=13", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_InstallmentsWithoutMonths(t *testing.T) {
	h := newTestServer(t)
	emp := createEmployee(t, h, "E001")

	rec := do(t, h, http.MethodPost, "/api/v1/deductions", map[string]any{
		"employee_id": emp.ID, "amount": "1200", "method": "installments", "date": "2024-03-01",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decode(t, rec, nil)
	assert.Contains(t, env.Error.Details, "months")

	rec = do(t, h, http.MethodGet, "/api/v1/deductions?employee_id="+emp.ID, nil)
	var list []deduction.ObligationResponse
	decode(t, rec, &list)
	assert.Empty(t, list)
}

func TestRouter_PayrollFlow(t *testing.T) {
	h := newTestServer(t)
	emp := createEmployee(t, h, "E001")

	var punches []map[string]string
	for d := 1; d <= 30; d++ {
		for _, clock := range []string{"09:00", "17:00"} {
			punches = append(punches, map[string]string{
				"employee_code": "E001",
				"punch_time":    fmt.Sprintf("2024-06-%02dT%s:00Z", d, clock),
			})
		}
	}
	rec := do(t, h, http.MethodPost, "/api/v1/attendance/punches", map[string]any{"punches": punches})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var recorded attendance.RecordPunchesResponse
	decode(t, rec, &recorded)
	assert.Equal(t, 60, recorded.Inserted)
	assert.Equal(t, 30, recorded.RecordsSynced)

	rec = do(t, h, http.MethodPost, "/api/v1/attendance/punches/sync", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var synced attendance.SyncPunchesResponse
	decode(t, rec, &synced)
	assert.Equal(t, 30, synced.RecordsProcessed)

	rec = do(t, h, http.MethodPost, "/api/v1/deduction-types", map[string]any{"name": "Advance"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var advance deduction.DeductionTypeResponse
	decode(t, rec, &advance)

	rec = do(t, h, http.MethodPost, "/api/v1/deductions", map[string]any{
		"employee_id": emp.ID, "deduction_type_id": advance.ID, "amount": "500", "method": "next_month", "date": "2024-05-20",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var obligation deduction.ObligationResponse
	decode(t, rec, &obligation)

	rec = do(t, h, http.MethodGet, "/api/v1/deductions/"+obligation.ID+"/accrual?year=2024&month=6", nil)
	var accrual deduction.AccrualResponse
	decode(t, rec, &accrual)
	assert.True(t, accrual.Amount.Equal(decimal.NewFromInt(500)))

	rec = do(t, h, http.MethodPost, "/api/v1/salaries/generate", map[string]any{"year": 2024, "month": 6})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var batch salary.BatchResult
	decode(t, rec, &batch)
	require.Len(t, batch.Results, 1)
	assert.Empty(t, batch.Failures)

	result := batch.Results[0]
	assert.Equal(t, 0, result.AbsentDays)
	assert.True(t, result.AdvanceDeduction.Equal(decimal.NewFromInt(500)))
	assert.True(t, result.GrossSalary.Equal(decimal.NewFromInt(3300)), result.GrossSalary.String())
	assert.Equal(t, "pending", result.Status)

	rec = do(t, h, http.MethodPatch, "/api/v1/salaries/"+result.RecordID+"/pay", map[string]any{"amount": "1000"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var paid salary.PaymentResult
	decode(t, rec, &paid)

	assert.Equal(t, "partially_paid", paid.Record.Status)
	assert.True(t, paid.Record.BalanceAmount.Equal(decimal.NewFromInt(2300)))
	require.NotNil(t, paid.Record.PaidDate)
	assert.Equal(t, "2024-07-10", *paid.Record.PaidDate)
	require.Len(t, paid.Reimbursements, 1)
	assert.True(t, paid.Reimbursements[0].Closed)

	rec = do(t, h, http.MethodPatch, "/api/v1/salaries/"+result.RecordID+"/pay", map[string]any{"amount": "-1"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodPatch, "/api/v1/salaries/"+result.RecordID+"/pay", map[string]any{"amount": "0.005"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/salaries?year=2024&month=6", nil)
	var records []salary.SalaryRecordResponse
	decode(t, rec, &records)
	require.Len(t, records, 1)
	assert.Equal(t, "E001", records[0].EmployeeCode)

	rec = do(t, h, http.MethodGet, "/api/v1/salaries/"+result.RecordID+"/payslip.pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	rec = do(t, h, http.MethodGet, "/api/v1/salaries/sheet.xlsx?year=2024&month=6", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "salary-sheet-2024-06.xlsx")

	rec = do(t, h, http.MethodGet, "/api/v1/salaries/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

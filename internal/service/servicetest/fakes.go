// Package servicetest provides in-memory repositories for service tests.
package servicetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/deduction"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
)

// PassthroughTx runs fn directly on ctx.
type PassthroughTx struct{}

func (PassthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type idGen struct {
	mu  sync.Mutex
	seq int
}

func (g *idGen) next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("%s-%d", prefix, g.seq)
}

// ===== EMPLOYEES =====

type Employees struct {
	ids  idGen
	byID map[string]employee.Employee
}

func NewEmployees(list ...employee.Employee) *Employees {
	e := &Employees{byID: map[string]employee.Employee{}}
	for _, emp := range list {
		e.byID[emp.ID] = emp
	}
	return e
}

func (e *Employees) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := e.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (e *Employees) GetByEmployeeCode(ctx context.Context, code string) (employee.Employee, error) {
	for _, emp := range e.byID {
		if emp.EmployeeCode == code {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (e *Employees) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	if _, err := e.GetByEmployeeCode(ctx, emp.EmployeeCode); err == nil {
		return employee.Employee{}, employee.ErrEmployeeCodeExists
	}
	if emp.ID == "" {
		emp.ID = e.ids.next("emp")
	}
	e.byID[emp.ID] = emp
	return emp, nil
}

func (e *Employees) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return e.filter(func(emp employee.Employee) bool { return emp.IsActive }), nil
}

func (e *Employees) ListJoinedBy(ctx context.Context, date time.Time) ([]employee.Employee, error) {
	return e.filter(func(emp employee.Employee) bool {
		return emp.IsActive && !emp.DateOfJoining.After(date)
	}), nil
}

func (e *Employees) filter(keep func(employee.Employee) bool) []employee.Employee {
	var out []employee.Employee
	for _, emp := range e.byID {
		if keep(emp) {
			out = append(out, emp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeCode < out[j].EmployeeCode })
	return out
}

// ===== ATTENDANCE =====

type Attendance struct {
	ids     idGen
	records map[string]attendance.Attendance // employeeID|date
}

func NewAttendance() *Attendance {
	return &Attendance{records: map[string]attendance.Attendance{}}
}

func attendanceKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (a *Attendance) Upsert(ctx context.Context, rec attendance.Attendance) (attendance.Attendance, error) {
	key := attendanceKey(rec.EmployeeID, rec.Date)
	if existing, ok := a.records[key]; ok {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	} else if rec.ID == "" {
		rec.ID = a.ids.next("att")
	}
	a.records[key] = rec
	return rec, nil
}

// Present marks the employee present on each date.
func (a *Attendance) Present(employeeID string, dates ...time.Time) {
	for _, d := range dates {
		a.Upsert(context.Background(), attendance.Attendance{EmployeeID: employeeID, Date: d, IsPresent: true})
	}
}

func (a *Attendance) Get(employeeID string, date time.Time) (attendance.Attendance, bool) {
	rec, ok := a.records[attendanceKey(employeeID, date)]
	return rec, ok
}

func (a *Attendance) Len() int {
	return len(a.records)
}

func (a *Attendance) ListPresentDates(ctx context.Context, employeeID string, from, to time.Time) ([]time.Time, error) {
	var dates []time.Time
	for _, rec := range a.records {
		if rec.EmployeeID == employeeID && rec.IsPresent && !rec.Date.Before(from) && !rec.Date.After(to) {
			dates = append(dates, rec.Date)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

func (a *Attendance) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range a.records {
		if rec.Date.Equal(date) {
			out = append(out, rec)
		}
	}
	return out, nil
}

type Punches struct {
	ids     idGen
	punches []attendance.Punch
}

func (p *Punches) CreateMany(ctx context.Context, punches []attendance.Punch) (int, error) {
	inserted := 0
	for _, np := range punches {
		dup := false
		for _, existing := range p.punches {
			if existing.EmployeeCode == np.EmployeeCode && existing.PunchTime.Equal(np.PunchTime) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		np.ID = p.ids.next("punch")
		p.punches = append(p.punches, np)
		inserted++
	}
	return inserted, nil
}

func (p *Punches) ListAll(ctx context.Context) ([]attendance.Punch, error) {
	return append([]attendance.Punch(nil), p.punches...), nil
}

func (p *Punches) ListByCodeOnDate(ctx context.Context, employeeCode string, date time.Time) ([]attendance.Punch, error) {
	var out []attendance.Punch
	for _, punch := range p.punches {
		if punch.EmployeeCode == employeeCode && !punch.PunchTime.Before(date) && punch.PunchTime.Before(date.AddDate(0, 0, 1)) {
			out = append(out, punch)
		}
	}
	return out, nil
}

// ===== LEAVE =====

type Leaves struct {
	ids  idGen
	byID map[string]leave.Leave
}

func NewLeaves() *Leaves {
	return &Leaves{byID: map[string]leave.Leave{}}
}

func (l *Leaves) Create(ctx context.Context, lv leave.Leave) (leave.Leave, error) {
	for _, existing := range l.byID {
		if existing.EmployeeID == lv.EmployeeID && existing.Date.Equal(lv.Date) {
			return leave.Leave{}, leave.ErrLeaveAlreadyExists
		}
	}
	lv.ID = l.ids.next("leave")
	l.byID[lv.ID] = lv
	return lv, nil
}

func (l *Leaves) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	lv, ok := l.byID[id]
	if !ok {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	return lv, nil
}

func (l *Leaves) Approve(ctx context.Context, id string) (leave.Leave, error) {
	lv, ok := l.byID[id]
	if !ok {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	lv.Approved = true
	l.byID[id] = lv
	return lv, nil
}

func (l *Leaves) ListApprovedDates(ctx context.Context, employeeID string, from, to time.Time) ([]time.Time, error) {
	var dates []time.Time
	for _, lv := range l.byID {
		if lv.EmployeeID == employeeID && lv.Approved && !lv.Date.Before(from) && !lv.Date.After(to) {
			dates = append(dates, lv.Date)
		}
	}
	return dates, nil
}

type LeaveTypes struct {
	ids  idGen
	byID map[string]leave.LeaveType
}

func NewLeaveTypes() *LeaveTypes {
	return &LeaveTypes{byID: map[string]leave.LeaveType{}}
}

func (l *LeaveTypes) Create(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	for _, existing := range l.byID {
		if existing.Name == lt.Name {
			return leave.LeaveType{}, leave.ErrLeaveTypeNameExists
		}
	}
	lt.ID = l.ids.next("lt")
	l.byID[lt.ID] = lt
	return lt, nil
}

func (l *LeaveTypes) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	lt, ok := l.byID[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (l *LeaveTypes) List(ctx context.Context) ([]leave.LeaveType, error) {
	var out []leave.LeaveType
	for _, lt := range l.byID {
		out = append(out, lt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ===== DEDUCTIONS =====

type DeductionTypes struct {
	ids  idGen
	byID map[string]deduction.DeductionType
}

func NewDeductionTypes() *DeductionTypes {
	return &DeductionTypes{byID: map[string]deduction.DeductionType{}}
}

func (d *DeductionTypes) Create(ctx context.Context, t deduction.DeductionType) (deduction.DeductionType, error) {
	if t.ID == "" {
		t.ID = d.ids.next("dtype")
	}
	d.byID[t.ID] = t
	return t, nil
}

func (d *DeductionTypes) GetByID(ctx context.Context, id string) (deduction.DeductionType, error) {
	t, ok := d.byID[id]
	if !ok {
		return deduction.DeductionType{}, deduction.ErrDeductionTypeNotFound
	}
	return t, nil
}

func (d *DeductionTypes) List(ctx context.Context) ([]deduction.DeductionType, error) {
	var out []deduction.DeductionType
	for _, t := range d.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Obligations stores obligation states. Creation times advance by one
// second per insert so creation order is observable.
type Obligations struct {
	ids    idGen
	clock  time.Time
	states map[string]deduction.State
}

func NewObligations() *Obligations {
	return &Obligations{
		clock:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		states: map[string]deduction.State{},
	}
}

func (o *Obligations) Create(ctx context.Context, ob *deduction.Obligation) (*deduction.Obligation, error) {
	s := ob.State()
	if s.ID == "" {
		s.ID = o.ids.next("obl")
	}
	o.clock = o.clock.Add(time.Second)
	s.CreatedAt = o.clock
	o.states[s.ID] = s
	return deduction.Restore(s), nil
}

func (o *Obligations) GetByID(ctx context.Context, id string) (*deduction.Obligation, error) {
	s, ok := o.states[id]
	if !ok {
		return nil, deduction.ErrObligationNotFound
	}
	return deduction.Restore(s), nil
}

func (o *Obligations) ListByEmployee(ctx context.Context, employeeID string) ([]*deduction.Obligation, error) {
	return o.list(employeeID, false, deduction.OrderOldestFirst), nil
}

func (o *Obligations) ListOpenByEmployee(ctx context.Context, employeeID string, order deduction.ReimbursementOrder) ([]*deduction.Obligation, error) {
	return o.list(employeeID, true, order), nil
}

func (o *Obligations) ListOpenByEmployeeForUpdate(ctx context.Context, employeeID string, order deduction.ReimbursementOrder) ([]*deduction.Obligation, error) {
	return o.list(employeeID, true, order), nil
}

func (o *Obligations) Update(ctx context.Context, ob *deduction.Obligation) error {
	s := ob.State()
	if _, ok := o.states[s.ID]; !ok {
		return deduction.ErrObligationNotFound
	}
	o.states[s.ID] = s
	return nil
}

// State returns the stored state of id.
func (o *Obligations) State(id string) deduction.State {
	return o.states[id]
}

func (o *Obligations) Len() int {
	return len(o.states)
}

func (o *Obligations) list(employeeID string, openOnly bool, order deduction.ReimbursementOrder) []*deduction.Obligation {
	var states []deduction.State
	for _, s := range o.states {
		if s.EmployeeID != employeeID || (openOnly && s.IsClosed) {
			continue
		}
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool {
		a, b := states[i], states[j]
		if order == deduction.OrderOldestFirst && !a.OriginDate.Equal(b.OriginDate) {
			return a.OriginDate.Before(b.OriginDate)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	out := make([]*deduction.Obligation, 0, len(states))
	for _, s := range states {
		out = append(out, deduction.Restore(s))
	}
	return out
}

// ===== SALARY =====

type Salaries struct {
	ids       idGen
	employees *Employees
	byID      map[string]salary.SalaryRecord
}

func NewSalaries(employees *Employees) *Salaries {
	return &Salaries{employees: employees, byID: map[string]salary.SalaryRecord{}}
}

// Put stores r as is.
func (s *Salaries) Put(r salary.SalaryRecord) {
	s.byID[r.ID] = r
}

func (s *Salaries) Upsert(ctx context.Context, r salary.SalaryRecord) (salary.SalaryRecord, error) {
	for id, existing := range s.byID {
		if existing.EmployeeID != r.EmployeeID || existing.Year != r.Year || existing.Month != r.Month {
			continue
		}
		existing.PresentDays = r.PresentDays
		existing.AbsentDays = r.AbsentDays
		existing.LOPCount = r.LOPCount
		existing.GrossSalary = r.GrossSalary
		existing.TotalAllowances = r.TotalAllowances
		existing.TotalDeductions = r.TotalDeductions
		existing.SalaryDue = r.SalaryDue
		if existing.Status == salary.StatusPending {
			existing.BalanceAmount = r.GrossSalary.Add(r.SalaryDue)
		}
		s.byID[id] = existing
		return s.GetByID(ctx, id)
	}

	r.ID = s.ids.next("sal")
	r.PaidAmount = decimal.Zero
	r.BalanceAmount = r.GrossSalary.Add(r.SalaryDue)
	r.Status = salary.StatusPending
	r.PaidDate = nil
	s.byID[r.ID] = r
	return s.GetByID(ctx, r.ID)
}

func (s *Salaries) GetByID(ctx context.Context, id string) (salary.SalaryRecord, error) {
	r, ok := s.byID[id]
	if !ok {
		return salary.SalaryRecord{}, salary.ErrSalaryRecordNotFound
	}
	if emp, err := s.employees.GetByID(ctx, r.EmployeeID); err == nil {
		r.EmployeeCode = emp.EmployeeCode
		r.EmployeeName = emp.Name
	}
	return r, nil
}

func (s *Salaries) GetByIDForUpdate(ctx context.Context, id string) (salary.SalaryRecord, error) {
	return s.GetByID(ctx, id)
}

func (s *Salaries) SumPendingGrossExcluding(ctx context.Context, employeeID string, year, month int) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, r := range s.byID {
		if r.EmployeeID != employeeID || r.Status != salary.StatusPending {
			continue
		}
		if r.Year == year && r.Month == month {
			continue
		}
		sum = sum.Add(r.GrossSalary)
	}
	return sum, nil
}

func (s *Salaries) UpdatePayment(ctx context.Context, r salary.SalaryRecord) error {
	existing, ok := s.byID[r.ID]
	if !ok {
		return salary.ErrSalaryRecordNotFound
	}
	existing.PaidAmount = r.PaidAmount
	existing.BalanceAmount = r.BalanceAmount
	existing.Status = r.Status
	existing.PaidDate = r.PaidDate
	s.byID[r.ID] = existing
	return nil
}

func (s *Salaries) List(ctx context.Context, year, month int) ([]salary.SalaryRecord, error) {
	var out []salary.SalaryRecord
	for id, r := range s.byID {
		if r.Year == year && r.Month == month {
			rec, _ := s.GetByID(ctx, id)
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeCode < out[j].EmployeeCode })
	return out, nil
}

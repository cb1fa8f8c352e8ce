package deduction

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Obligation is money an employee owes, recovered from salary payments.
// Its balance only changes through Apply.
type Obligation struct {
	s State
}

type NewObligationParams struct {
	ID              string
	EmployeeID      string
	DeductionTypeID *string
	TypeName        string
	Amount          decimal.Decimal
	Method          Method
	Months          int
	OriginDate      time.Time
}

// NewObligation validates p and returns an open obligation with nothing
// reimbursed yet. An installment obligation without a positive month count
// fails with ErrInstallmentMonthsRequired.
func NewObligation(p NewObligationParams) (*Obligation, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(p.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !p.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than zero"})
	}
	if p.OriginDate.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "is required"})
	}

	monthsInvalid := false
	switch {
	case !p.Method.IsValid():
		errs = append(errs, validator.ValidationError{
			Field:   "method",
			Message: fmt.Sprintf("must be one of %s, %s, %s", MethodNextMonth, MethodInstallments, MethodAnnual),
		})
	case p.Method == MethodInstallments && p.Months <= 0:
		monthsInvalid = true
		errs = append(errs, validator.ValidationError{Field: "months", Message: "must be greater than zero for installment deductions"})
	case p.Method != MethodInstallments && p.Months != 0:
		errs = append(errs, validator.ValidationError{Field: "months", Message: "is only allowed for installment deductions"})
	case p.Method == MethodInstallments && p.Amount.IsPositive() &&
		p.Amount.Round(2).Div(decimal.NewFromInt(int64(p.Months))).Round(2).IsZero():
		errs = append(errs, validator.ValidationError{Field: "months", Message: "leaves an installment below 0.01"})
	}

	if len(errs) > 0 {
		if monthsInvalid {
			return nil, fmt.Errorf("%w: %w", ErrInstallmentMonthsRequired, errs)
		}
		return nil, errs
	}

	amount := p.Amount.Round(2)
	origin := p.OriginDate
	return &Obligation{s: State{
		ID:                    p.ID,
		EmployeeID:            p.EmployeeID,
		DeductionTypeID:       p.DeductionTypeID,
		TypeName:              p.TypeName,
		Amount:                amount,
		Method:                p.Method,
		Months:                p.Months,
		OriginDate:            time.Date(origin.Year(), origin.Month(), origin.Day(), 0, 0, 0, 0, time.UTC),
		ReimbursedAmount:      decimal.Zero,
		RemainingAmount:       amount,
		RemainingInstallments: p.Months,
	}}, nil
}

// Restore rebuilds an obligation from its stored state.
func Restore(s State) *Obligation {
	return &Obligation{s: s}
}

// State returns a copy of the obligation's current state.
func (o *Obligation) State() State {
	return o.s
}

func (o *Obligation) ID() string {
	return o.s.ID
}

func (o *Obligation) IsClosed() bool {
	return o.s.IsClosed
}

// IsAdvance reports whether the obligation belongs to the advance bucket.
func (o *Obligation) IsAdvance() bool {
	return strings.EqualFold(strings.TrimSpace(o.s.TypeName), "advance")
}

// InstallmentAmount is the scheduled share of one month, rounded to cents.
// Zero for methods other than installments.
func (o *Obligation) InstallmentAmount() decimal.Decimal {
	if o.s.Method != MethodInstallments || o.s.Months <= 0 {
		return decimal.Zero
	}
	return o.s.Amount.Div(decimal.NewFromInt(int64(o.s.Months))).Round(2)
}

// AmountDueFor returns what the obligation accrues in year/month. It is the
// scheduled amount and does not account for reimbursements already applied.
func (o *Obligation) AmountDueFor(year, month int) decimal.Decimal {
	if o.s.DeductionTypeID == nil || o.s.IsClosed || !o.s.RemainingAmount.IsPositive() {
		return decimal.Zero
	}

	diff := monthIndex(year, month) - monthIndex(o.s.OriginDate.Year(), int(o.s.OriginDate.Month()))

	switch o.s.Method {
	case MethodNextMonth:
		if diff == 1 {
			return o.s.Amount
		}
	case MethodInstallments:
		if diff >= 0 && diff < o.s.Months {
			return o.InstallmentAmount()
		}
	case MethodAnnual:
		if month == 12 {
			return o.s.Amount
		}
	}
	return decimal.Zero
}

// Apply reimburses up to payment against the obligation and returns the
// amount actually taken. Installment obligations take at most one
// installment per call while installments remain; once the counter runs
// out, whatever is left is taken like any other method. A closed
// obligation, or a non-positive payment, takes nothing and is left untouched.
func (o *Obligation) Apply(payment decimal.Decimal) decimal.Decimal {
	if o.s.IsClosed || !payment.IsPositive() {
		return decimal.Zero
	}

	var applied decimal.Decimal
	if o.s.Method == MethodInstallments && o.s.RemainingInstallments > 0 {
		applied = decimal.Min(o.InstallmentAmount(), o.s.RemainingAmount, payment)
		o.s.RemainingInstallments--
	} else {
		applied = decimal.Min(o.s.RemainingAmount, payment)
	}
	if applied.IsNegative() {
		applied = decimal.Zero
	}

	o.s.ReimbursedAmount = o.s.ReimbursedAmount.Add(applied)
	o.s.RemainingAmount = o.s.RemainingAmount.Sub(applied)

	if !o.s.RemainingAmount.IsPositive() {
		o.s.IsClosed = true
		o.s.RemainingAmount = decimal.Zero
		o.s.RemainingInstallments = 0
	}

	return applied
}

func monthIndex(year, month int) int {
	return year*12 + month - 1
}

package deduction

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Accrual is the deduction owed for one employee-month, split by bucket.
type Accrual struct {
	Advance decimal.Decimal
	Other   decimal.Decimal
}

func (a Accrual) Total() decimal.Decimal {
	return a.Advance.Add(a.Other)
}

// Accrue sums what each obligation owes in year/month into the advance and
// other buckets.
func Accrue(obligations []*Obligation, year, month int) Accrual {
	acc := Accrual{Advance: decimal.Zero, Other: decimal.Zero}
	for _, o := range obligations {
		due := o.AmountDueFor(year, month)
		if due.IsZero() {
			continue
		}
		if o.IsAdvance() {
			acc.Advance = acc.Advance.Add(due)
		} else {
			acc.Other = acc.Other.Add(due)
		}
	}
	return acc
}

// Reimbursement records what one Apply call took from a payment.
type Reimbursement struct {
	ObligationID    string
	Applied         decimal.Decimal
	RemainingAmount decimal.Decimal
	Closed          bool
}

// Reimburse walks obligations in the given order, applying what is left of
// payment to each, and stops once nothing is left. It returns one entry per
// obligation that was applied to; those obligations must be persisted.
func Reimburse(obligations []*Obligation, payment decimal.Decimal) []Reimbursement {
	var out []Reimbursement

	pool := payment
	for _, o := range obligations {
		if !pool.IsPositive() {
			break
		}
		applied := o.Apply(pool)
		pool = pool.Sub(applied)

		s := o.State()
		out = append(out, Reimbursement{
			ObligationID:    s.ID,
			Applied:         applied,
			RemainingAmount: s.RemainingAmount,
			Closed:          s.IsClosed,
		})
	}

	return out
}

// ReimbursementOrder decides which open obligations a payment reaches first.
type ReimbursementOrder string

const (
	// OrderOldestFirst sorts by origin date, then creation time.
	OrderOldestFirst ReimbursementOrder = "oldest_first"
	// OrderCreated sorts by creation time only.
	OrderCreated ReimbursementOrder = "created"
)

func ParseReimbursementOrder(s string) (ReimbursementOrder, error) {
	switch ReimbursementOrder(s) {
	case OrderOldestFirst, OrderCreated:
		return ReimbursementOrder(s), nil
	case "":
		return OrderOldestFirst, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidReimbursementOrder, s)
}

package deduction

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeductionType is the category of an obligation. The name decides the
// accrual bucket: "advance" or anything else.
type DeductionType struct {
	ID          string
	Name        string
	Description string
}

type Method string

const (
	// MethodNextMonth accrues the full amount in the month after the origin month.
	MethodNextMonth Method = "next_month"
	// MethodInstallments spreads the amount evenly over Months months starting at the origin month.
	MethodInstallments Method = "installments"
	// MethodAnnual accrues the full amount every December.
	MethodAnnual Method = "annual"
)

func (m Method) IsValid() bool {
	switch m {
	case MethodNextMonth, MethodInstallments, MethodAnnual:
		return true
	}
	return false
}

// State is the persisted form of an Obligation. Repositories load and save
// it; everything else reads it through Obligation.State.
type State struct {
	ID                    string
	EmployeeID            string
	DeductionTypeID       *string
	TypeName              string
	Amount                decimal.Decimal
	Method                Method
	Months                int
	OriginDate            time.Time
	ReimbursedAmount      decimal.Decimal
	RemainingAmount       decimal.Decimal
	RemainingInstallments int
	IsClosed              bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

package deduction

import "errors"

var (
	ErrObligationNotFound        = errors.New("deduction obligation not found")
	ErrDeductionTypeNotFound     = errors.New("deduction type not found")
	ErrInstallmentMonthsRequired = errors.New("installment deductions need a positive number of months")
	ErrInvalidReimbursementOrder = errors.New("invalid reimbursement order")
)

package salary

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// paymentErrors rejects negative amounts and amounts finer than a cent.
func paymentErrors(amount decimal.Decimal) validator.ValidationErrors {
	var errs validator.ValidationErrors
	switch {
	case amount.IsNegative():
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must not be negative"})
	case !amount.Equal(amount.Round(2)):
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must not have more than two decimal places"})
	}
	return errs
}

// ApplyPayment adds amount to the record and settles its status and balance
// against the total owed. Every call stamps the paid date, including a zero
// payment.
func ApplyPayment(r *SalaryRecord, amount decimal.Decimal, asOf time.Time) error {
	if errs := paymentErrors(amount); len(errs) > 0 {
		return errs
	}

	r.PaidAmount = r.PaidAmount.Add(amount)

	owed := r.TotalOwed()
	if r.PaidAmount.GreaterThanOrEqual(owed) {
		r.Status = StatusPaid
		r.BalanceAmount = decimal.Zero
	} else {
		r.Status = StatusPartiallyPaid
		r.BalanceAmount = owed.Sub(r.PaidAmount)
	}

	paid := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	r.PaidDate = &paid
	return nil
}

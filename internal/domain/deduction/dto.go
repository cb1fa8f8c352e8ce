package deduction

import (
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateDeductionTypeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r *CreateDeductionTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	name := strings.TrimSpace(r.Name)
	if name == "" {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	} else if len(name) > 100 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must be at most 100 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DeductionTypeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func ToDeductionTypeResponse(t DeductionType) DeductionTypeResponse {
	return DeductionTypeResponse{ID: t.ID, Name: t.Name, Description: t.Description}
}

// CreateObligationRequest carries the raw input. Field-level rules live in
// NewObligation; Validate only checks what must parse first.
type CreateObligationRequest struct {
	EmployeeID      string          `json:"employee_id"`
	DeductionTypeID *string         `json:"deduction_type_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"method"`
	Months          int             `json:"months,omitempty"`
	Date            string          `json:"date"`
}

func (r *CreateObligationRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "invalid date format. Use YYYY-MM-DD"})
	}
	if r.DeductionTypeID != nil && validator.IsEmpty(*r.DeductionTypeID) {
		errs = append(errs, validator.ValidationError{Field: "deduction_type_id", Message: "must not be blank"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ObligationResponse struct {
	ID                    string          `json:"id"`
	EmployeeID            string          `json:"employee_id"`
	DeductionTypeID       *string         `json:"deduction_type_id"`
	DeductionTypeName     string          `json:"deduction_type_name,omitempty"`
	Amount                decimal.Decimal `json:"amount"`
	Method                string          `json:"method"`
	Months                int             `json:"months"`
	InstallmentAmount     decimal.Decimal `json:"installment_amount"`
	Date                  string          `json:"date"`
	ReimbursedAmount      decimal.Decimal `json:"reimbursed_amount"`
	RemainingAmount       decimal.Decimal `json:"remaining_amount"`
	RemainingInstallments int             `json:"remaining_installments"`
	IsClosed              bool            `json:"is_closed"`
}

func ToObligationResponse(o *Obligation) ObligationResponse {
	s := o.State()
	return ObligationResponse{
		ID:                    s.ID,
		EmployeeID:            s.EmployeeID,
		DeductionTypeID:       s.DeductionTypeID,
		DeductionTypeName:     s.TypeName,
		Amount:                s.Amount,
		Method:                string(s.Method),
		Months:                s.Months,
		InstallmentAmount:     o.InstallmentAmount(),
		Date:                  s.OriginDate.Format(validator.DateLayout),
		ReimbursedAmount:      s.ReimbursedAmount,
		RemainingAmount:       s.RemainingAmount,
		RemainingInstallments: s.RemainingInstallments,
		IsClosed:              s.IsClosed,
	}
}

type AccrualResponse struct {
	ObligationID string          `json:"obligation_id"`
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	Amount       decimal.Decimal `json:"amount"`
}

type ReimbursementResponse struct {
	ObligationID    string          `json:"obligation_id"`
	Applied         decimal.Decimal `json:"applied"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Closed          bool            `json:"closed"`
}

func ToReimbursementResponses(rs []Reimbursement) []ReimbursementResponse {
	out := make([]ReimbursementResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, ReimbursementResponse{
			ObligationID:    r.ObligationID,
			Applied:         r.Applied,
			RemainingAmount: r.RemainingAmount,
			Closed:          r.Closed,
		})
	}
	return out
}

package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

// Clock returns the instant a request is evaluated at.
type Clock func() time.Time

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, op string) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// periodFromQuery reads ?year=&month= and reports field errors for both.
func periodFromQuery(r *http.Request) (int, int, error) {
	q := r.URL.Query()
	var errs validator.ValidationErrors

	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a number"})
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be a number"})
	}
	if len(errs) > 0 {
		return 0, 0, errs
	}
	if errs := validator.PeriodErrors(year, month); len(errs) > 0 {
		return 0, 0, errs
	}
	return year, month, nil
}

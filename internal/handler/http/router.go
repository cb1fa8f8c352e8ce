package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type Handlers struct {
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Deduction  DeductionHandler
	Salary     SalaryHandler
	Report     ReportHandler
}

func NewRouter(logger *slog.Logger, allowedOrigins []string, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.Employee.ListEmployees)
			r.Post("/", h.Employee.CreateEmployee)
			r.Get("/{id}", h.Employee.GetEmployee)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/mark", h.Attendance.Mark)
			r.Get("/by-date", h.Attendance.ListByDate)
			r.Get("/summary", h.Attendance.Summary)
			r.Post("/punches", h.Attendance.RecordPunches)
			r.Post("/punches/sync", h.Attendance.SyncPunches)
		})

		r.Route("/leave-types", func(r chi.Router) {
			r.Get("/", h.Leave.ListTypes)
			r.Post("/", h.Leave.CreateType)
		})
		r.Route("/leaves", func(r chi.Router) {
			r.Post("/", h.Leave.CreateLeave)
			r.Post("/{id}/approve", h.Leave.ApproveLeave)
		})

		r.Route("/deduction-types", func(r chi.Router) {
			r.Get("/", h.Deduction.ListTypes)
			r.Post("/", h.Deduction.CreateType)
		})
		r.Route("/deductions", func(r chi.Router) {
			r.Get("/", h.Deduction.ListDeductions)
			r.Post("/", h.Deduction.CreateDeduction)
			r.Get("/{id}", h.Deduction.GetDeduction)
			r.Get("/{id}/accrual", h.Deduction.Accrual)
		})

		r.Route("/salaries", func(r chi.Router) {
			r.Get("/", h.Salary.List)
			r.Post("/generate", h.Salary.Generate)
			r.Post("/generate/{employeeId}", h.Salary.GenerateForEmployee)
			r.Get("/sheet.xlsx", h.Report.SalarySheet)
			r.Get("/{id}", h.Salary.Get)
			r.Patch("/{id}/pay", h.Salary.Pay)
			r.Get("/{id}/payslip.pdf", h.Report.Payslip)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})
	return r
}

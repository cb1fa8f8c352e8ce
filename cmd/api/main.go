package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/payroll-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/payroll-backend-go/internal/service/attendance"
	deductionService "github.com/cmlabs-hris/payroll-backend-go/internal/service/deduction"
	employeeService "github.com/cmlabs-hris/payroll-backend-go/internal/service/employee"
	leaveService "github.com/cmlabs-hris/payroll-backend-go/internal/service/leave"
	reportService "github.com/cmlabs-hris/payroll-backend-go/internal/service/report"
	salaryService "github.com/cmlabs-hris/payroll-backend-go/internal/service/salary"
	"github.com/go-chi/httplog/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-cmlabs"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
	})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("Error applying migrations", "error", err)
		os.Exit(1)
	}

	txManager := postgresql.NewTxManager(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	punchRepo := postgresql.NewPunchRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	deductionTypeRepo := postgresql.NewDeductionTypeRepository(db)
	obligationRepo := postgresql.NewObligationRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)

	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		txManager,
		attendanceRepo,
		punchRepo,
		leaveRepo,
		employeeRepo,
		cfg.Payroll.WeeklyOffDay,
	)
	leaveSvc := leaveService.NewLeaveService(leaveTypeRepo, leaveRepo, employeeRepo)
	deductionSvc := deductionService.NewDeductionService(deductionTypeRepo, obligationRepo, employeeRepo)
	salarySvc := salaryService.NewSalaryService(
		txManager,
		salaryRepo,
		employeeRepo,
		obligationRepo,
		attendanceSvc,
		cfg.Payroll.ReimbursementOrder,
	)
	reportSvc := reportService.NewReportService(salaryRepo, employeeRepo, cfg.Export.CompanyName)

	scheduler := cron.NewScheduler()
	scheduler.AddJob(cron.PunchSyncJob(attendanceSvc, cfg.Payroll.PunchSyncInterval))
	scheduler.Start(ctx)
	defer scheduler.Wait()

	router := appHTTP.NewRouter(logger, cfg.App.AllowedOrigins, appHTTP.Handlers{
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, time.Now),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Deduction:  appHTTP.NewDeductionHandler(deductionSvc),
		Salary:     appHTTP.NewSalaryHandler(salarySvc, time.Now),
		Report:     appHTTP.NewReportHandler(reportSvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	}()

	slog.Info("Server running", "addr", server.Addr, "reimbursement_order", cfg.Payroll.ReimbursementOrder, "weekly_off", cfg.Payroll.WeeklyOffDay.String())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}

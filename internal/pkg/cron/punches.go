package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
)

// PunchSyncJob folds stored device punches into attendance records.
func PunchSyncJob(svc attendance.AttendanceService, interval time.Duration) Job {
	return Job{
		Name:     "sync_device_punches",
		Interval: interval,
		Fn: func(ctx context.Context) error {
			result, err := svc.SyncPunches(ctx)
			if err != nil {
				return err
			}
			if len(result.SkippedCodes) > 0 {
				slog.Warn("Cron: punches left unmatched", "skipped_codes", result.SkippedCodes)
			}
			return nil
		},
	}
}

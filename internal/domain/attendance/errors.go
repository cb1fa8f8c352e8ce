package attendance

import "errors"

var (
	ErrAttendanceNotFound      = errors.New("attendance record not found")
	ErrFutureAttendance        = errors.New("cannot mark attendance for a future date")
	ErrAttendanceBeforeJoining = errors.New("cannot mark attendance before employee's date of joining")
	ErrInTimeRequired          = errors.New("in time is required for today's attendance")
	ErrInAndOutTimeRequired    = errors.New("both in and out time are required for past attendance")
)

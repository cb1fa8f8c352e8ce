package leave

import "errors"

var (
	ErrLeaveNotFound        = errors.New("leave not found")
	ErrLeaveTypeNotFound    = errors.New("leave type not found")
	ErrLeaveTypeNameExists  = errors.New("leave type name already exists")
	ErrLeaveAlreadyExists   = errors.New("leave already recorded for this date")
	ErrLeaveAlreadyApproved = errors.New("leave already approved")
)

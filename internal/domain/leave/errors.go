package leave

import "errors"

var (
	ErrLeaveNotFound         = errors.New("leave request not found")
	ErrInvalidDateRange      = errors.New("end date must not be before from date")
	ErrHalfDaySingleDate     = errors.New("half-day leave must start and end on the same date")
	ErrHalfDayPeriodRequired = errors.New("half-day period is required for half-day leave")
	ErrInsufficientBalance   = errors.New("insufficient leave balance")
	ErrAlreadyReviewed       = errors.New("leave request has already been reviewed")
)

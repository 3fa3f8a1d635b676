package shift

import "errors"

var (
	ErrShiftNotFound     = errors.New("shift not found")
	ErrDisplayNameExists = errors.New("shift display name already exists")
	ErrShiftInUse        = errors.New("shift is still assigned to employees")
	ErrCheckInTooEarly   = errors.New("too early to check in")
	ErrShiftOver         = errors.New("shift has already ended")
)

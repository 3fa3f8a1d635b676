package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrNoShiftAssigned    = errors.New("no shift assigned to employee")
	ErrOnApprovedLeave    = errors.New("employee is on approved leave for this date")
	ErrAlreadyCheckedIn   = errors.New("already checked in for this shift day")
	ErrNotCheckedIn       = errors.New("not checked in yet")
	ErrAlreadyCheckedOut  = errors.New("already checked out")
)

package response

import (
	"errors"
	"net/http"

	"github.com/techqilla/ems-backend-go/internal/domain/attendance"
	"github.com/techqilla/ems-backend-go/internal/domain/auth"
	"github.com/techqilla/ems-backend-go/internal/domain/department"
	"github.com/techqilla/ems-backend-go/internal/domain/employee"
	"github.com/techqilla/ems-backend-go/internal/domain/leave"
	"github.com/techqilla/ems-backend-go/internal/domain/salary"
	"github.com/techqilla/ems-backend-go/internal/domain/shift"
	"github.com/techqilla/ems-backend-go/internal/domain/user"
	"github.com/techqilla/ems-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth / user domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrWrongCurrentPassword):
		BadRequest(w, "Current password is incorrect", nil)
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Department domain errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, department.ErrDepartmentNameExists):
		Conflict(w, "Department name already exists")
	case errors.Is(err, department.ErrDepartmentInUse):
		Conflict(w, "Department has employees assigned and cannot be deleted")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrDisplayNameExists):
		Conflict(w, "Shift display name already exists")
	case errors.Is(err, shift.ErrShiftInUse):
		Conflict(w, "Shift has employees assigned and cannot be deleted")
	case errors.Is(err, shift.ErrCheckInTooEarly):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, shift.ErrShiftOver):
		BadRequest(w, err.Error(), nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee account is inactive")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrNoShiftAssigned):
		BadRequest(w, "No shift assigned to employee", nil)
	case errors.Is(err, attendance.ErrOnApprovedLeave):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in for this shift")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "Not checked in yet", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out for this shift")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before from date", nil)
	case errors.Is(err, leave.ErrHalfDaySingleDate):
		BadRequest(w, "Half-day leave must cover a single date", nil)
	case errors.Is(err, leave.ErrHalfDayPeriodRequired):
		BadRequest(w, "Half-day period is required for half-day leave", nil)
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrAlreadyReviewed):
		Conflict(w, "Leave request already reviewed")

	// Salary domain errors
	case errors.Is(err, salary.ErrSalaryNotFound):
		NotFound(w, "Salary record not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

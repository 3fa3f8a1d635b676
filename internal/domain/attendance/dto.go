package attendance

import (
	"time"

	"github.com/techqilla/ems-backend-go/internal/pkg/validator"
)

type AttendanceResponse struct {
	ID            string   `json:"id"`
	EmployeeID    string   `json:"employee_id"`
	EmployeeName  string   `json:"employee_name,omitempty"`
	EmployeeCode  string   `json:"employee_code,omitempty"`
	ShiftName     string   `json:"shift_name,omitempty"`
	Date          string   `json:"date"`
	Status        string   `json:"status"`
	CheckIn       *string  `json:"check_in"`
	CheckOut      *string  `json:"check_out"`
	WorkingHours  *float64 `json:"working_hours"`
	IsLate        bool     `json:"is_late"`
	LateByMinutes int      `json:"late_by_minutes"`
	LeaveID       *string  `json:"leave_id,omitempty"`
	Remarks       *string  `json:"remarks,omitempty"`
	IsManualEntry bool     `json:"is_manual_entry"`
	MarkedBy      *string  `json:"marked_by,omitempty"`
}

type TodayResponse struct {
	Date       string              `json:"date"`
	Attendance *AttendanceResponse `json:"attendance"`
}

type CheckInResponse struct {
	Attendance AttendanceResponse `json:"attendance"`
	Message    string             `json:"message"`
}

type MarkAttendanceRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	CheckIn    *string `json:"check_in"`
	CheckOut   *string `json:"check_out"`
	Remarks    *string `json:"remarks"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if !validator.IsInSlice(r.Status, ValidStatuses()) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, absent, half-day, leave, late",
		})
	}
	if r.CheckIn != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be an ISO8601 timestamp",
			})
		}
	}
	if r.CheckOut != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be an ISO8601 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HistoryFilter struct {
	EmployeeID string
	From       *time.Time
	To         *time.Time
	Status     string
	Page       int
	Limit      int
}

type ListFilter struct {
	Date         time.Time
	DepartmentID string
	Status       string
	Search       string
	Page         int
	Limit        int
}

type HistoryResponse struct {
	Items      []AttendanceResponse `json:"items"`
	Pagination Pagination           `json:"pagination"`
}

type Pagination struct {
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalItems int    `json:"total_items"`
	TotalPages int    `json:"total_pages"`
	Showing    string `json:"showing"`
}

type StatsResponse struct {
	TotalDays       int     `json:"total_days"`
	PresentDays     int     `json:"present_days"`
	AbsentDays      int     `json:"absent_days"`
	HalfDays        int     `json:"half_days"`
	LeaveDays       int     `json:"leave_days"`
	LateDays        int     `json:"late_days"`
	AvgWorkingHours float64 `json:"avg_working_hours"`
}

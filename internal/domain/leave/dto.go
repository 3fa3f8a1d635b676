package leave

import (
	"time"

	"github.com/techqilla/ems-backend-go/internal/pkg/validator"
)

type ApplyLeaveRequest struct {
	Type          string  `json:"type"`
	FromDate      string  `json:"from_date"`
	EndDate       string  `json:"end_date"`
	IsHalfDay     bool    `json:"is_half_day"`
	HalfDayPeriod *string `json:"half_day_period"`
	Reason        string  `json:"reason"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Type, ValidTypes()) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: sick, casual",
		})
	}
	if _, ok := validator.IsValidDate(r.FromDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "from_date",
			Message: "from_date must be in YYYY-MM-DD format",
		})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if r.IsHalfDay {
		if r.HalfDayPeriod == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "half_day_period",
				Message: "half_day_period is required for half-day leave",
			})
		} else if !validator.IsInSlice(*r.HalfDayPeriod, ValidHalfDayPeriods()) {
			errs = append(errs, validator.ValidationError{
				Field:   "half_day_period",
				Message: "half_day_period must be one of: morning, afternoon",
			})
		}
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReviewLeaveRequest struct {
	ID            string  `json:"-"`
	Status        string  `json:"status"`
	AdminComments *string `json:"admin_comments"`
}

func (r *ReviewLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, []string{string(StatusApproved), string(StatusRejected)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: approved, rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	EmployeeCode   string  `json:"employee_code,omitempty"`
	DepartmentName string  `json:"department_name,omitempty"`
	Type           string  `json:"type"`
	FromDate       string  `json:"from_date"`
	EndDate        string  `json:"end_date"`
	TotalDays      float64 `json:"total_days"`
	IsHalfDay      bool    `json:"is_half_day"`
	HalfDayPeriod  *string `json:"half_day_period,omitempty"`
	Reason         string  `json:"reason"`
	Status         string  `json:"status"`
	AdminComments  *string `json:"admin_comments,omitempty"`
	ReviewedBy     *string `json:"reviewed_by,omitempty"`
	ReviewedDate   *string `json:"reviewed_date,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

type TypeBalance struct {
	Allowed   float64 `json:"allowed"`
	Used      float64 `json:"used"`
	Remaining float64 `json:"remaining"`
}

type BalanceResponse struct {
	Year   int         `json:"year"`
	Sick   TypeBalance `json:"sick"`
	Casual TypeBalance `json:"casual"`
}

type MonthUsage struct {
	Month  string  `json:"month"`
	Sick   float64 `json:"sick"`
	Casual float64 `json:"casual"`
}

type BreakdownResponse struct {
	Year   int          `json:"year"`
	Months []MonthUsage `json:"months"`
}

type ListFilter struct {
	EmployeeID   string
	Status       string
	Type         string
	DepartmentID string
	Year         *int
	Page         int
	Limit        int
}

type ListResponse struct {
	Items      []LeaveResponse `json:"items"`
	Pagination Pagination      `json:"pagination"`
}

type Pagination struct {
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalItems int    `json:"total_items"`
	TotalPages int    `json:"total_pages"`
	Showing    string `json:"showing"`
}

// UsedDays is the pending plus approved day total per type, keyed by
// leave type, for a calendar year.
type UsedDays map[Type]float64

// YearRange returns the inclusive bounds of a calendar year in loc.
func YearRange(year int, loc *time.Location) (time.Time, time.Time) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, loc)
	return from, to
}

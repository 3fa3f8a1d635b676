package shift

import "github.com/techqilla/ems-backend-go/internal/pkg/validator"

type CreateShiftRequest struct {
	Name         string   `json:"name"`
	DisplayName  string   `json:"display_name"`
	StartTime    string   `json:"start_time"`
	EndTime      string   `json:"end_time"`
	GraceMinutes *int     `json:"grace_minutes"`
	MinimumHours *float64 `json:"minimum_hours"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Name, ValidNames()) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must be one of: Morning, Night, General",
		})
	}
	if validator.IsEmpty(r.DisplayName) {
		errs = append(errs, validator.ValidationError{
			Field:   "display_name",
			Message: "display_name is required",
		})
	}
	if len(r.DisplayName) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "display_name",
			Message: "display_name must not exceed 100 characters",
		})
	}
	if !validator.IsValidClockTime(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be a 24-hour HH:MM time",
		})
	}
	if !validator.IsValidClockTime(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be a 24-hour HH:MM time",
		})
	}
	if r.GraceMinutes != nil && (*r.GraceMinutes < 0 || *r.GraceMinutes > 60) {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_minutes",
			Message: "grace_minutes must be between 0 and 60",
		})
	}
	if r.MinimumHours != nil && (*r.MinimumHours <= 0 || *r.MinimumHours > 24) {
		errs = append(errs, validator.ValidationError{
			Field:   "minimum_hours",
			Message: "minimum_hours must be between 0 and 24",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateShiftRequest struct {
	ID           string   `json:"-"`
	Name         *string  `json:"name"`
	DisplayName  *string  `json:"display_name"`
	StartTime    *string  `json:"start_time"`
	EndTime      *string  `json:"end_time"`
	GraceMinutes *int     `json:"grace_minutes"`
	MinimumHours *float64 `json:"minimum_hours"`
	IsActive     *bool    `json:"is_active"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && !validator.IsInSlice(*r.Name, ValidNames()) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must be one of: Morning, Night, General",
		})
	}
	if r.DisplayName != nil && validator.IsEmpty(*r.DisplayName) {
		errs = append(errs, validator.ValidationError{
			Field:   "display_name",
			Message: "display_name must not be empty",
		})
	}
	if r.StartTime != nil && !validator.IsValidClockTime(*r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be a 24-hour HH:MM time",
		})
	}
	if r.EndTime != nil && !validator.IsValidClockTime(*r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be a 24-hour HH:MM time",
		})
	}
	if r.GraceMinutes != nil && (*r.GraceMinutes < 0 || *r.GraceMinutes > 60) {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_minutes",
			Message: "grace_minutes must be between 0 and 60",
		})
	}
	if r.MinimumHours != nil && (*r.MinimumHours <= 0 || *r.MinimumHours > 24) {
		errs = append(errs, validator.ValidationError{
			Field:   "minimum_hours",
			Message: "minimum_hours must be between 0 and 24",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DisplayName     string  `json:"display_name"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	GraceMinutes    int     `json:"grace_minutes"`
	MinimumHours    float64 `json:"minimum_hours"`
	IsCrossMidnight bool    `json:"is_cross_midnight"`
	IsActive        bool    `json:"is_active"`
	EmployeeCount   int     `json:"employee_count"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type ShiftStatsResponse struct {
	TotalShifts      int            `json:"total_shifts"`
	ActiveShifts     int            `json:"active_shifts"`
	EmployeesByShift map[string]int `json:"employees_by_shift"`
}

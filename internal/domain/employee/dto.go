package employee

import "github.com/techqilla/ems-backend-go/internal/pkg/validator"

type CreateEmployeeRequest struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	Role          string  `json:"role"`
	EmployeeCode  string  `json:"employee_code"`
	Phone         *string `json:"phone"`
	Gender        *string `json:"gender"`
	DateOfBirth   *string `json:"date_of_birth"`
	DateOfJoining string  `json:"date_of_joining"`
	Designation   string  `json:"designation"`
	DepartmentID  string  `json:"department_id"`
	ShiftID       string  `json:"shift_id"`
	BaseSalary    float64 `json:"base_salary"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters long",
		})
	}
	if r.Role != "" && !validator.IsInSlice(r.Role, []string{"admin", "employee"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: admin, employee",
		})
	}
	if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code must be 3-20 uppercase letters, digits, or dashes",
		})
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must be a valid phone number",
		})
	}
	if r.DateOfBirth != nil {
		if _, ok := validator.IsValidDate(*r.DateOfBirth); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date_of_birth",
				Message: "date_of_birth must be in YYYY-MM-DD format",
			})
		}
	}
	if _, ok := validator.IsValidDate(r.DateOfJoining); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date_of_joining",
			Message: "date_of_joining must be in YYYY-MM-DD format",
		})
	}
	if validator.IsEmpty(r.Designation) {
		errs = append(errs, validator.ValidationError{
			Field:   "designation",
			Message: "designation is required",
		})
	}
	if validator.IsEmpty(r.DepartmentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "department_id",
			Message: "department_id is required",
		})
	}
	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required",
		})
	}
	if r.BaseSalary < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID           string   `json:"-"`
	Name         *string  `json:"name"`
	Phone        *string  `json:"phone"`
	Gender       *string  `json:"gender"`
	DateOfBirth  *string  `json:"date_of_birth"`
	Designation  *string  `json:"designation"`
	DepartmentID *string  `json:"department_id"`
	ShiftID      *string  `json:"shift_id"`
	BaseSalary   *float64 `json:"base_salary"`
	IsActive     *bool    `json:"is_active"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must be a valid phone number",
		})
	}
	if r.DateOfBirth != nil {
		if _, ok := validator.IsValidDate(*r.DateOfBirth); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date_of_birth",
				Message: "date_of_birth must be in YYYY-MM-DD format",
			})
		}
	}
	if r.BaseSalary != nil && *r.BaseSalary < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	EmployeeCode   string  `json:"employee_code"`
	Phone          *string `json:"phone"`
	Gender         *string `json:"gender"`
	DateOfBirth    *string `json:"date_of_birth"`
	DateOfJoining  string  `json:"date_of_joining"`
	Designation    string  `json:"designation"`
	DepartmentID   string  `json:"department_id"`
	DepartmentName string  `json:"department_name"`
	ShiftID        string  `json:"shift_id"`
	ShiftName      string  `json:"shift_name"`
	BaseSalary     float64 `json:"base_salary"`
	ProfileImage   *string `json:"profile_image"`
	IsActive       bool    `json:"is_active"`
	CreatedAt      string  `json:"created_at"`
}

type ListFilter struct {
	DepartmentID string
	ShiftID      string
	Search       string
	IsActive     *bool
	Page         int
	Limit        int
}

type ListResponse struct {
	Items      []EmployeeResponse `json:"items"`
	Pagination Pagination         `json:"pagination"`
}

type Pagination struct {
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalItems int    `json:"total_items"`
	TotalPages int    `json:"total_pages"`
	Showing    string `json:"showing"`
}

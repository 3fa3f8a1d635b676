package salary

import "github.com/techqilla/ems-backend-go/internal/pkg/validator"

type AddSalaryRequest struct {
	EmployeeID  string  `json:"employee_id"`
	BasicSalary float64 `json:"basic_salary"`
	Allowances  float64 `json:"allowances"`
	Deductions  float64 `json:"deductions"`
	PayDate     string  `json:"pay_date"`
}

func (r *AddSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.BasicSalary <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "basic_salary",
			Message: "basic_salary must be greater than zero",
		})
	}
	if r.Allowances < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "allowances",
			Message: "allowances must not be negative",
		})
	}
	if r.Deductions < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "deductions",
			Message: "deductions must not be negative",
		})
	}
	if _, ok := validator.IsValidDate(r.PayDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "pay_date",
			Message: "pay_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SalaryResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	EmployeeCode string  `json:"employee_code,omitempty"`
	BasicSalary  float64 `json:"basic_salary"`
	Allowances   float64 `json:"allowances"`
	Deductions   float64 `json:"deductions"`
	NetSalary    float64 `json:"net_salary"`
	PayDate      string  `json:"pay_date"`
	CreatedAt    string  `json:"created_at"`
}

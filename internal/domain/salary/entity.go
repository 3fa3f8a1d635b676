package salary

import "time"

type Salary struct {
	ID          string
	EmployeeID  string
	BasicSalary float64
	Allowances  float64
	Deductions  float64
	NetSalary   float64
	PayDate     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO / Join
	EmployeeName string
	EmployeeCode string
}

// Net computes the payable amount.
func Net(basic, allowances, deductions float64) float64 {
	return basic + allowances - deductions
}

package salary

import "errors"

var (
	ErrSalaryNotFound = errors.New("salary record not found")
)

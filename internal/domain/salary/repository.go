package salary

import "context"

type SalaryRepository interface {
	Create(ctx context.Context, s Salary) (Salary, error)
	GetByID(ctx context.Context, id string) (Salary, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Salary, error)
}

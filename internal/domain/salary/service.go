package salary

import "context"

type SalaryService interface {
	Add(ctx context.Context, req AddSalaryRequest) (SalaryResponse, error)
	History(ctx context.Context, employeeID string) ([]SalaryResponse, error)
	MyHistory(ctx context.Context) ([]SalaryResponse, error)
}

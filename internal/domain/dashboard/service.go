package dashboard

import "context"

type DashboardService interface {
	AdminSummary(ctx context.Context) (AdminSummary, error)
	EmployeeSummary(ctx context.Context) (EmployeeSummary, error)
}

package dashboard

import (
	"context"
	"time"
)

type DashboardRepository interface {
	AdminSummary(ctx context.Context, today time.Time) (AdminSummary, error)
	EmployeeSummary(ctx context.Context, employeeID string, now time.Time) (EmployeeSummary, error)
}

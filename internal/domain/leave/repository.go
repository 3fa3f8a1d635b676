package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	Create(ctx context.Context, l Leave) (Leave, error)
	GetByID(ctx context.Context, id string) (Leave, error)
	List(ctx context.Context, filter ListFilter) ([]Leave, int, error)

	// UpdateStatus transitions a pending request and stamps the review
	// metadata. Returns ErrAlreadyReviewed when the request is no
	// longer pending.
	UpdateStatus(ctx context.Context, id string, status Status, adminComments *string, reviewedBy string, reviewedDate time.Time) (Leave, error)

	// UsedDaysInYear sums total_days of pending and approved requests
	// per type whose from_date falls in the given year.
	UsedDaysInYear(ctx context.Context, employeeID string, year int) (UsedDays, error)

	// MonthlyUsedDays sums approved total_days per type per month of
	// the given year, keyed by month number.
	MonthlyUsedDays(ctx context.Context, employeeID string, year int) (map[int]map[Type]float64, error)
}

package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	GetByID(ctx context.Context, id string) (Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)

	// CheckIn inserts the record for (employee, date) or claims an
	// existing one that has no check-in yet. Returns
	// ErrAlreadyCheckedIn when the slot is taken, regardless of which
	// concurrent caller got there first.
	CheckIn(ctx context.Context, a Attendance) (Attendance, error)

	UpdateCheckout(ctx context.Context, id string, checkOut time.Time, workingHours float64, status Status) (Attendance, error)

	// Upsert overwrites the full record for (employee, date). Used by
	// leave reconciliation and manual admin marking.
	Upsert(ctx context.Context, a Attendance) (Attendance, error)

	// DeleteLeaveGenerated removes non-manual leave and half-day rows
	// for the employee in the inclusive date range and reports how many
	// were removed.
	DeleteLeaveGenerated(ctx context.Context, employeeID string, from, to time.Time) (int64, error)

	// ListOpenSince returns records checked in at or before cutoff that
	// have no checkout yet.
	ListOpenSince(ctx context.Context, cutoff time.Time) ([]Attendance, error)

	ListByEmployee(ctx context.Context, filter HistoryFilter) ([]Attendance, int, error)
	ListByDate(ctx context.Context, filter ListFilter) ([]Attendance, int, error)
	StatsByEmployee(ctx context.Context, employeeID string, from, to time.Time) (StatsResponse, error)
}

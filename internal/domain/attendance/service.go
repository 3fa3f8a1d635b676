package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	CheckIn(ctx context.Context) (CheckInResponse, error)
	CheckOut(ctx context.Context) (AttendanceResponse, error)
	Today(ctx context.Context) (TodayResponse, error)
	History(ctx context.Context, filter HistoryFilter) (HistoryResponse, error)
	Stats(ctx context.Context, employeeID string, from, to time.Time) (StatsResponse, error)

	// Admin operations
	Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)
	ListByDate(ctx context.Context, filter ListFilter) (HistoryResponse, error)
}

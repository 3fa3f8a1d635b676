package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/techqilla/ems-backend-go/internal/domain/attendance"
	"github.com/techqilla/ems-backend-go/internal/domain/employee"
)

// openSessionMaxAge is how long a check-in may stay open before the
// sweep force-closes it.
const openSessionMaxAge = 11 * time.Hour

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	loc            *time.Location
	now            func() time.Time
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	loc *time.Location,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		loc:            loc,
		now:            time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_checkout_open_sessions", 10*time.Minute, j.AutoCheckoutOpenSessions)
}

// AutoCheckoutOpenSessions closes attendance records whose check-in is
// older than openSessionMaxAge and that were never checked out. Each
// record is closed independently so one failure does not stall the
// rest of the sweep.
func (j *AttendanceJobs) AutoCheckoutOpenSessions(ctx context.Context) error {
	now := j.now().In(j.loc)
	cutoff := now.Add(-openSessionMaxAge)

	open, err := j.attendanceRepo.ListOpenSince(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list open attendance sessions: %w", err)
	}
	if len(open) == 0 {
		return nil
	}

	slog.Info("Cron: auto-closing open attendance sessions", "count", len(open))

	closed := 0
	for _, record := range open {
		if record.CheckIn == nil {
			continue
		}

		e, err := j.employeeRepo.GetByID(ctx, record.EmployeeID)
		if err != nil {
			slog.Error("Cron: failed to load employee for auto-checkout", "attendance_id", record.ID, "employee_id", record.EmployeeID, "error", err)
			continue
		}

		if e.Shift == nil {
			slog.Error("Cron: employee has no shift, skipping auto-checkout", "attendance_id", record.ID, "employee_id", record.EmployeeID)
			continue
		}

		workingHours := attendance.RoundHours(now.Sub(*record.CheckIn).Hours())
		status := attendance.ResolveCheckoutStatus(workingHours, e.Shift.MinimumHours, record.IsLate)

		if _, err := j.attendanceRepo.UpdateCheckout(ctx, record.ID, now, workingHours, status); err != nil {
			slog.Error("Cron: failed to auto-checkout", "attendance_id", record.ID, "error", err)
			continue
		}
		closed++
	}

	slog.Info("Cron: auto-checkout sweep finished", "closed", closed, "total", len(open))
	return nil
}

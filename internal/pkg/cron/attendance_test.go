package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techqilla/ems-backend-go/internal/domain/attendance"
	"github.com/techqilla/ems-backend-go/internal/domain/employee"
	"github.com/techqilla/ems-backend-go/internal/domain/shift"
)

type stubAttendanceRepo struct {
	attendance.AttendanceRepository
	open      []attendance.Attendance
	checkouts map[string]attendance.Status
}

func (s *stubAttendanceRepo) ListOpenSince(ctx context.Context, cutoff time.Time) ([]attendance.Attendance, error) {
	var matched []attendance.Attendance
	for _, a := range s.open {
		if a.CheckIn != nil && !a.CheckIn.After(cutoff) && a.CheckOut == nil {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

func (s *stubAttendanceRepo) UpdateCheckout(ctx context.Context, id string, checkOut time.Time, workingHours float64, status attendance.Status) (attendance.Attendance, error) {
	if s.checkouts == nil {
		s.checkouts = make(map[string]attendance.Status)
	}
	s.checkouts[id] = status
	return attendance.Attendance{ID: id}, nil
}

type stubEmployeeRepo struct {
	employee.EmployeeRepository
	employees map[string]employee.Employee
}

func (s *stubEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func TestAutoCheckoutOpenSessions(t *testing.T) {
	now := time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC)
	staleCheckIn := now.Add(-12 * time.Hour)
	freshCheckIn := now.Add(-2 * time.Hour)

	attendanceRepo := &stubAttendanceRepo{
		open: []attendance.Attendance{
			{ID: "stale", EmployeeID: "emp-1", CheckIn: &staleCheckIn},
			{ID: "fresh", EmployeeID: "emp-1", CheckIn: &freshCheckIn},
		},
	}
	employeeRepo := &stubEmployeeRepo{
		employees: map[string]employee.Employee{
			"emp-1": {
				ID:       "emp-1",
				IsActive: true,
				Shift:    &shift.Shift{ID: "shift-day", StartTime: "09:00", EndTime: "18:00", MinimumHours: 8},
			},
		},
	}

	jobs := NewAttendanceJobs(attendanceRepo, employeeRepo, time.UTC)
	jobs.now = func() time.Time { return now }

	require.NoError(t, jobs.AutoCheckoutOpenSessions(context.Background()))

	// 12 hours worked clears the 8 hour minimum.
	assert.Equal(t, attendance.StatusPresent, attendanceRepo.checkouts["stale"])
	_, freshClosed := attendanceRepo.checkouts["fresh"]
	assert.False(t, freshClosed)
}

func TestAutoCheckoutSkipsEmployeeWithoutShift(t *testing.T) {
	now := time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC)
	staleCheckIn := now.Add(-12 * time.Hour)

	attendanceRepo := &stubAttendanceRepo{
		open: []attendance.Attendance{
			{ID: "stale", EmployeeID: "emp-unassigned", CheckIn: &staleCheckIn},
		},
	}
	employeeRepo := &stubEmployeeRepo{
		employees: map[string]employee.Employee{
			"emp-unassigned": {ID: "emp-unassigned", IsActive: true},
		},
	}

	jobs := NewAttendanceJobs(attendanceRepo, employeeRepo, time.UTC)
	jobs.now = func() time.Time { return now }

	require.NoError(t, jobs.AutoCheckoutOpenSessions(context.Background()))

	// Without a shift there is no minimum to measure against, so the
	// record is left for an admin to mark.
	assert.Empty(t, attendanceRepo.checkouts)
}

func TestAutoCheckoutKeepsLateStatus(t *testing.T) {
	now := time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC)
	staleCheckIn := now.Add(-11 * time.Hour)

	attendanceRepo := &stubAttendanceRepo{
		open: []attendance.Attendance{
			{ID: "stale-late", EmployeeID: "emp-1", CheckIn: &staleCheckIn, IsLate: true},
		},
	}
	employeeRepo := &stubEmployeeRepo{
		employees: map[string]employee.Employee{
			"emp-1": {
				ID:       "emp-1",
				IsActive: true,
				Shift:    &shift.Shift{ID: "shift-day", StartTime: "09:00", EndTime: "18:00", MinimumHours: 8},
			},
		},
	}

	jobs := NewAttendanceJobs(attendanceRepo, employeeRepo, time.UTC)
	jobs.now = func() time.Time { return now }

	require.NoError(t, jobs.AutoCheckoutOpenSessions(context.Background()))

	assert.Equal(t, attendance.StatusLate, attendanceRepo.checkouts["stale-late"])
}

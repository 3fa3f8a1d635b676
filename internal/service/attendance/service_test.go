package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techqilla/ems-backend-go/internal/domain/attendance"
	"github.com/techqilla/ems-backend-go/internal/domain/employee"
	"github.com/techqilla/ems-backend-go/internal/domain/shift"
)

// fakeAttendanceRepo keeps records in memory, keyed the same way the
// attendances table is: one row per (employee, date).
type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func recordKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	for _, a := range f.records {
		if a.ID == id {
			return a, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	a, ok := f.records[recordKey(employeeID, date)]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (f *fakeAttendanceRepo) CheckIn(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	key := recordKey(a.EmployeeID, a.Date)
	if existing, ok := f.records[key]; ok {
		if existing.CheckIn != nil || existing.LeaveID != nil {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		a.ID = existing.ID
	}
	f.records[key] = a
	return a, nil
}

func (f *fakeAttendanceRepo) UpdateCheckout(ctx context.Context, id string, checkOut time.Time, workingHours float64, status attendance.Status) (attendance.Attendance, error) {
	for key, a := range f.records {
		if a.ID == id {
			a.CheckOut = &checkOut
			a.WorkingHours = &workingHours
			a.Status = status
			f.records[key] = a
			return a, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	f.records[recordKey(a.EmployeeID, a.Date)] = a
	return a, nil
}

func (f *fakeAttendanceRepo) DeleteLeaveGenerated(ctx context.Context, employeeID string, from, to time.Time) (int64, error) {
	var deleted int64
	for key, a := range f.records {
		if a.EmployeeID != employeeID || a.IsManualEntry {
			continue
		}
		if a.Status != attendance.StatusLeave && a.Status != attendance.StatusHalfDay {
			continue
		}
		if a.Date.Before(from) || a.Date.After(to) {
			continue
		}
		delete(f.records, key)
		deleted++
	}
	return deleted, nil
}

func (f *fakeAttendanceRepo) ListOpenSince(ctx context.Context, cutoff time.Time) ([]attendance.Attendance, error) {
	var open []attendance.Attendance
	for _, a := range f.records {
		if a.CheckIn != nil && !a.CheckIn.After(cutoff) && a.CheckOut == nil {
			open = append(open, a)
		}
	}
	return open, nil
}

func (f *fakeAttendanceRepo) ListByEmployee(ctx context.Context, filter attendance.HistoryFilter) ([]attendance.Attendance, int, error) {
	var items []attendance.Attendance
	for _, a := range f.records {
		if a.EmployeeID == filter.EmployeeID {
			items = append(items, a)
		}
	}
	return items, len(items), nil
}

func (f *fakeAttendanceRepo) ListByDate(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, int, error) {
	var items []attendance.Attendance
	for _, a := range f.records {
		if a.Date.Equal(filter.Date) {
			items = append(items, a)
		}
	}
	return items, len(items), nil
}

func (f *fakeAttendanceRepo) StatsByEmployee(ctx context.Context, employeeID string, from, to time.Time) (attendance.StatsResponse, error) {
	return attendance.StatsResponse{}, nil
}

// fakeEmployeeRepo serves the lookups the attendance service performs.
type fakeEmployeeRepo struct {
	byUserID map[string]employee.Employee
	byID     map[string]employee.Employee
}

func newFakeEmployeeRepo(employees ...employee.Employee) *fakeEmployeeRepo {
	f := &fakeEmployeeRepo{
		byUserID: make(map[string]employee.Employee),
		byID:     make(map[string]employee.Employee),
	}
	for _, e := range employees {
		f.byUserID[e.UserID] = e
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	e, ok := f.byUserID[userID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, int, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) ListActiveByShift(ctx context.Context, shiftID string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func (f *fakeEmployeeRepo) UpdateProfileImage(ctx context.Context, id string, imageURL string) error {
	return nil
}

func authedContext(t *testing.T, userID string) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"type":    "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func dayShiftEmployee() employee.Employee {
	return employee.Employee{
		ID:       "emp-1",
		UserID:   "user-1",
		IsActive: true,
		Shift: &shift.Shift{
			ID:           "shift-day",
			Name:         shift.NameMorning,
			StartTime:    "09:00",
			EndTime:      "18:00",
			GraceMinutes: 15,
			MinimumHours: 8,
			IsActive:     true,
		},
	}
}

func nightShiftEmployee() employee.Employee {
	e := dayShiftEmployee()
	e.Shift = &shift.Shift{
		ID:           "shift-night",
		Name:         shift.NameNight,
		StartTime:    "22:00",
		EndTime:      "06:00",
		GraceMinutes: 15,
		MinimumHours: 8,
		IsActive:     true,
	}
	return e
}

func newTestService(attendanceRepo *fakeAttendanceRepo, employeeRepo *fakeEmployeeRepo, now time.Time) *AttendanceServiceImpl {
	svc := NewAttendanceService(attendanceRepo, employeeRepo, time.UTC).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return now }
	return svc
}

func TestCheckIn_OnTime(t *testing.T) {
	repo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo(dayShiftEmployee())
	now := time.Date(2026, 3, 2, 9, 10, 0, 0, time.UTC)
	svc := newTestService(repo, empRepo, now)

	resp, err := svc.CheckIn(authedContext(t, "user-1"))

	require.NoError(t, err)
	assert.Equal(t, "Checked in on time", resp.Message)
	assert.Equal(t, string(attendance.StatusPresent), resp.Attendance.Status)
	assert.False(t, resp.Attendance.IsLate)
	assert.Equal(t, "2026-03-02", resp.Attendance.Date)
}

func TestCheckIn_Late(t *testing.T) {
	repo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo(dayShiftEmployee())
	now := time.Date(2026, 3, 2, 9, 37, 30, 0, time.UTC)
	svc := newTestService(repo, empRepo, now)

	resp, err := svc.CheckIn(authedContext(t, "user-1"))

	require.NoError(t, err)
	assert.Equal(t, "Checked in late by 37 minutes", resp.Message)
	assert.Equal(t, string(attendance.StatusLate), resp.Attendance.Status)
	assert.True(t, resp.Attendance.IsLate)
	assert.Equal(t, 37, resp.Attendance.LateByMinutes)
}

func TestCheckIn_TooEarly(t *testing.T) {
	repo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo(dayShiftEmployee())
	now := time.Date(2026, 3, 2, 7, 59, 59, 0, time.UTC)
	svc := newTestService(repo, empRepo, now)

	_, err := svc.CheckIn(authedContext(t, "user-1"))

	assert.ErrorIs(t, err, shift.ErrCheckInTooEarly)
}

func TestCheckIn_AfterShiftEnd(t *testing.T) {
	repo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo(dayShiftEmployee())
	now := time.Date(2026, 3, 2, 18, 0, 1, 0, time.UTC)
	svc := newTestService(repo, empRepo, now)

	_, err := svc.CheckIn(authedContext(t, "user-1"))

	assert.ErrorIs(t, err, shift.ErrShiftOver)
}

func TestCheckIn_Twice(t *testing.T) {
	repo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo(dayShiftEmployee())
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, empRepo, now)

	_, err := svc.CheckIn(authedContext(t, "user-1"))
	require.NoError(t, err)

	_, err = svc.CheckIn(authedContext(t, "user-1"))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckIn_OnApprovedLeave(t *testing.T) {
	repo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo(dayShiftEmployee())
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, empRepo, now)

	leaveID := "leave-1"
	_, err := repo.Upsert(context.Background(), attendance.Attendance{
		ID:         "att-leave",
		EmployeeID: "emp-1",
		Date:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Status:     attendance.StatusLeave,
		LeaveID:    &leaveID,
	})
	require.NoError(t, err)

	_, err = svc.CheckIn(authedContext(t, "user-1"))
	assert.ErrorIs(t, err, attendance.ErrOnApprovedLeave)
	// The rejection names the day and what it is marked as.
	assert.Contains(t, err.Error(), "2026-03-02")
	assert.Contains(t, err.Error(), string(attendance.StatusLeave))
}

func TestCheckIn_NoShift(t *testing.T) {
	e := dayShiftEmployee()
	e.Shift = nil
	repo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo(e)
	svc := newTestService(repo, empRepo, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	_, err := svc.CheckIn(authedContext(t, "user-1"))

	assert.ErrorIs(t, err, attendance.ErrNoShiftAssigned)
}

func TestCheckIn_InactiveEmployee(t *testing.T) {
	e := dayShiftEmployee()
	e.IsActive = false
	repo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo(e)
	svc := newTestService(repo, empRepo, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	_, err := svc.CheckIn(authedContext(t, "user-1"))

	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

// A night worker checking in after midnight must land on the previous
// calendar day's record.
func TestCheckIn_NightShiftAfterMidnight(t *testing.T) {
	repo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo(nightShiftEmployee())
	now := time.Date(2026, 3, 3, 1, 30, 0, 0, time.UTC)
	svc := newTestService(repo, empRepo, now)

	resp, err := svc.CheckIn(authedContext(t, "user-1"))

	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", resp.Attendance.Date)
	assert.True(t, resp.Attendance.IsLate)
}

func TestCheckOut_Success(t *testing.T) {
	repo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo(dayShiftEmployee())

	checkInAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, empRepo, checkInAt)
	_, err := svc.CheckIn(authedContext(t, "user-1"))
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2026, 3, 2, 17, 30, 0, 0, time.UTC) }
	resp, err := svc.CheckOut(authedContext(t, "user-1"))

	require.NoError(t, err)
	require.NotNil(t, resp.WorkingHours)
	assert.Equal(t, 8.5, *resp.WorkingHours)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
}

func TestCheckOut_ShortSessionIsHalfDay(t *testing.T) {
	repo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo(dayShiftEmployee())

	checkInAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, empRepo, checkInAt)
	_, err := svc.CheckIn(authedContext(t, "user-1"))
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC) }
	resp, err := svc.CheckOut(authedContext(t, "user-1"))

	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusHalfDay), resp.Status)
}

func TestCheckOut_LateCheckInKeepsLateStatus(t *testing.T) {
	repo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo(dayShiftEmployee())

	checkInAt := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	svc := newTestService(repo, empRepo, checkInAt)
	_, err := svc.CheckIn(authedContext(t, "user-1"))
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2026, 3, 2, 17, 45, 0, 0, time.UTC) }
	resp, err := svc.CheckOut(authedContext(t, "user-1"))

	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusLate), resp.Status)
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	repo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo(dayShiftEmployee())
	svc := newTestService(repo, empRepo, time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC))

	_, err := svc.CheckOut(authedContext(t, "user-1"))

	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOut_Twice(t *testing.T) {
	repo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo(dayShiftEmployee())

	svc := newTestService(repo, empRepo, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	_, err := svc.CheckIn(authedContext(t, "user-1"))
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2026, 3, 2, 17, 30, 0, 0, time.UTC) }
	_, err = svc.CheckOut(authedContext(t, "user-1"))
	require.NoError(t, err)

	_, err = svc.CheckOut(authedContext(t, "user-1"))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestToday_NoRecordYet(t *testing.T) {
	repo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo(dayShiftEmployee())
	svc := newTestService(repo, empRepo, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))

	resp, err := svc.Today(authedContext(t, "user-1"))

	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", resp.Date)
	assert.Nil(t, resp.Attendance)
}

func TestMark_UsesLiteralDate(t *testing.T) {
	repo := newFakeAttendanceRepo()
	empRepo := newFakeEmployeeRepo(dayShiftEmployee())
	svc := newTestService(repo, empRepo, time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))

	resp, err := svc.Mark(authedContext(t, "admin-user"), attendance.MarkAttendanceRequest{
		EmployeeID: "emp-1",
		Date:       "2026-02-27",
		Status:     string(attendance.StatusAbsent),
	})

	require.NoError(t, err)
	assert.Equal(t, "2026-02-27", resp.Date)
	assert.Equal(t, string(attendance.StatusAbsent), resp.Status)
	assert.True(t, resp.IsManualEntry)
	require.NotNil(t, resp.MarkedBy)
	assert.Equal(t, "admin-user", *resp.MarkedBy)
}

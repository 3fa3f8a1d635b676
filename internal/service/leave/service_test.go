package leave

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techqilla/ems-backend-go/internal/domain/attendance"
	"github.com/techqilla/ems-backend-go/internal/domain/employee"
	"github.com/techqilla/ems-backend-go/internal/domain/leave"
	"github.com/techqilla/ems-backend-go/internal/pkg/email"
)

type fakeLeaveRepo struct {
	leaves map[string]leave.Leave
	used   leave.UsedDays
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{
		leaves: make(map[string]leave.Leave),
		used:   leave.UsedDays{},
	}
}

func (f *fakeLeaveRepo) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	f.leaves[l.ID] = l
	f.used[l.Type] += l.TotalDays
	return l, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	l, ok := f.leaves[id]
	if !ok {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	return l, nil
}

func (f *fakeLeaveRepo) List(ctx context.Context, filter leave.ListFilter) ([]leave.Leave, int, error) {
	var items []leave.Leave
	for _, l := range f.leaves {
		if filter.EmployeeID != "" && l.EmployeeID != filter.EmployeeID {
			continue
		}
		items = append(items, l)
	}
	return items, len(items), nil
}

func (f *fakeLeaveRepo) UpdateStatus(ctx context.Context, id string, status leave.Status, adminComments *string, reviewedBy string, reviewedDate time.Time) (leave.Leave, error) {
	l, ok := f.leaves[id]
	if !ok {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	if l.Status != leave.StatusPending {
		return leave.Leave{}, leave.ErrAlreadyReviewed
	}
	l.Status = status
	l.AdminComments = adminComments
	l.ReviewedBy = &reviewedBy
	l.ReviewedDate = &reviewedDate
	f.leaves[id] = l
	return l, nil
}

func (f *fakeLeaveRepo) UsedDaysInYear(ctx context.Context, employeeID string, year int) (leave.UsedDays, error) {
	return f.used, nil
}

func (f *fakeLeaveRepo) MonthlyUsedDays(ctx context.Context, employeeID string, year int) (map[int]map[leave.Type]float64, error) {
	return map[int]map[leave.Type]float64{
		3: {leave.TypeSick: 2},
	}, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	e, ok := f.employees[userID]
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

// fakeAttendanceRepo records the reconciliation writes.
type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func attendanceKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	a, ok := f.records[attendanceKey(employeeID, date)]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (f *fakeAttendanceRepo) CheckIn(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	return a, nil
}

func (f *fakeAttendanceRepo) UpdateCheckout(ctx context.Context, id string, checkOut time.Time, workingHours float64, status attendance.Status) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	key := attendanceKey(a.EmployeeID, a.Date)
	if existing, ok := f.records[key]; ok {
		a.ID = existing.ID
	}
	f.records[key] = a
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
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByEmployee(ctx context.Context, filter attendance.HistoryFilter) ([]attendance.Attendance, int, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) ListByDate(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, int, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) StatsByEmployee(ctx context.Context, employeeID string, from, to time.Time) (attendance.StatsResponse, error) {
	return attendance.StatsResponse{}, nil
}

type fakeEmailService struct {
	applications  []string
	statusUpdates []string
}

func (f *fakeEmailService) SendLeaveApplication(to string, data email.LeaveApplicationData) error {
	f.applications = append(f.applications, to)
	return nil
}

func (f *fakeEmailService) SendLeaveStatusUpdate(to string, data email.LeaveStatusData) error {
	f.statusUpdates = append(f.statusUpdates, to)
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

func testEmployee() employee.Employee {
	return employee.Employee{
		ID:            "emp-1",
		UserID:        "user-1",
		Email:         "employee@example.com",
		IsActive:      true,
		DateOfJoining: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
	}
}

func newTestService(leaveRepo *fakeLeaveRepo, attendanceRepo *fakeAttendanceRepo, emailSvc *fakeEmailService, now time.Time) *LeaveServiceImpl {
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{"user-1": testEmployee()}}
	svc := NewLeaveService(nil, leaveRepo, empRepo, attendanceRepo, emailSvc, "admin@example.com", time.UTC).(*LeaveServiceImpl)
	svc.now = func() time.Time { return now }
	return svc
}

func TestApply_Success(t *testing.T) {
	leaveRepo := newFakeLeaveRepo()
	emailSvc := &fakeEmailService{}
	svc := newTestService(leaveRepo, newFakeAttendanceRepo(), emailSvc, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	resp, err := svc.Apply(authedContext(t, "user-1"), leave.ApplyLeaveRequest{
		Type:     "sick",
		FromDate: "2026-03-10",
		EndDate:  "2026-03-11",
		Reason:   "fever",
	})

	require.NoError(t, err)
	assert.Equal(t, 2.0, resp.TotalDays)
	assert.Equal(t, string(leave.StatusPending), resp.Status)
	assert.Equal(t, []string{"admin@example.com"}, emailSvc.applications)
}

func TestApply_HalfDayMustBeSingleDate(t *testing.T) {
	svc := newTestService(newFakeLeaveRepo(), newFakeAttendanceRepo(), &fakeEmailService{}, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	period := "morning"
	_, err := svc.Apply(authedContext(t, "user-1"), leave.ApplyLeaveRequest{
		Type:          "casual",
		FromDate:      "2026-03-10",
		EndDate:       "2026-03-11",
		IsHalfDay:     true,
		HalfDayPeriod: &period,
		Reason:        "errand",
	})

	assert.ErrorIs(t, err, leave.ErrHalfDaySingleDate)
}

func TestApply_InvalidDateRange(t *testing.T) {
	svc := newTestService(newFakeLeaveRepo(), newFakeAttendanceRepo(), &fakeEmailService{}, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	_, err := svc.Apply(authedContext(t, "user-1"), leave.ApplyLeaveRequest{
		Type:     "sick",
		FromDate: "2026-03-11",
		EndDate:  "2026-03-10",
		Reason:   "fever",
	})

	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestApply_InsufficientBalance(t *testing.T) {
	leaveRepo := newFakeLeaveRepo()
	// Joined June 2024, so the March allowance is 3 days per type.
	leaveRepo.used[leave.TypeSick] = 2.5
	svc := newTestService(leaveRepo, newFakeAttendanceRepo(), &fakeEmailService{}, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	_, err := svc.Apply(authedContext(t, "user-1"), leave.ApplyLeaveRequest{
		Type:     "sick",
		FromDate: "2026-03-10",
		EndDate:  "2026-03-10",
		Reason:   "fever",
	})

	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestBalance(t *testing.T) {
	leaveRepo := newFakeLeaveRepo()
	leaveRepo.used[leave.TypeSick] = 1.5
	svc := newTestService(leaveRepo, newFakeAttendanceRepo(), &fakeEmailService{}, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	resp, err := svc.Balance(authedContext(t, "user-1"))

	require.NoError(t, err)
	assert.Equal(t, 2026, resp.Year)
	assert.Equal(t, 3.0, resp.Sick.Allowed)
	assert.Equal(t, 1.5, resp.Sick.Used)
	assert.Equal(t, 1.5, resp.Sick.Remaining)
	assert.Equal(t, 0.0, resp.Casual.Used)
}

func TestBreakdown(t *testing.T) {
	svc := newTestService(newFakeLeaveRepo(), newFakeAttendanceRepo(), &fakeEmailService{}, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	resp, err := svc.Breakdown(authedContext(t, "user-1"))

	require.NoError(t, err)
	require.Len(t, resp.Months, 12)
	assert.Equal(t, "March", resp.Months[2].Month)
	assert.Equal(t, 2.0, resp.Months[2].Sick)
	assert.Equal(t, 0.0, resp.Months[0].Sick)
}

func TestMarkLeaveAttendance_WritesEveryCalendarDate(t *testing.T) {
	attendanceRepo := newFakeAttendanceRepo()
	svc := newTestService(newFakeLeaveRepo(), attendanceRepo, &fakeEmailService{}, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	approved := leave.Leave{
		ID:         "leave-1",
		EmployeeID: "emp-1",
		FromDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		Status:     leave.StatusApproved,
	}
	require.NoError(t, svc.markLeaveAttendance(context.Background(), approved))

	assert.Len(t, attendanceRepo.records, 3)
	for _, record := range attendanceRepo.records {
		assert.Equal(t, attendance.StatusLeave, record.Status)
		require.NotNil(t, record.LeaveID)
		assert.Equal(t, "leave-1", *record.LeaveID)
		assert.False(t, record.IsManualEntry)
	}
}

func TestMarkLeaveAttendance_Idempotent(t *testing.T) {
	attendanceRepo := newFakeAttendanceRepo()
	svc := newTestService(newFakeLeaveRepo(), attendanceRepo, &fakeEmailService{}, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	approved := leave.Leave{
		ID:         "leave-1",
		EmployeeID: "emp-1",
		FromDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		Status:     leave.StatusApproved,
	}
	require.NoError(t, svc.markLeaveAttendance(context.Background(), approved))
	require.NoError(t, svc.markLeaveAttendance(context.Background(), approved))

	assert.Len(t, attendanceRepo.records, 2)
}

func TestMarkLeaveAttendance_HalfDay(t *testing.T) {
	attendanceRepo := newFakeAttendanceRepo()
	svc := newTestService(newFakeLeaveRepo(), attendanceRepo, &fakeEmailService{}, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	approved := leave.Leave{
		ID:         "leave-1",
		EmployeeID: "emp-1",
		FromDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		IsHalfDay:  true,
		Status:     leave.StatusApproved,
	}
	require.NoError(t, svc.markLeaveAttendance(context.Background(), approved))

	require.Len(t, attendanceRepo.records, 1)
	for _, record := range attendanceRepo.records {
		assert.Equal(t, attendance.StatusHalfDay, record.Status)
	}
}

// Rejecting a leave must only remove the rows the approval generated;
// manually marked rows in the same range survive.
func TestRejectionCleanupSparesManualRows(t *testing.T) {
	attendanceRepo := newFakeAttendanceRepo()
	svc := newTestService(newFakeLeaveRepo(), attendanceRepo, &fakeEmailService{}, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	approved := leave.Leave{
		ID:         "leave-1",
		EmployeeID: "emp-1",
		FromDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		Status:     leave.StatusApproved,
	}
	require.NoError(t, svc.markLeaveAttendance(context.Background(), approved))

	_, err := attendanceRepo.Upsert(context.Background(), attendance.Attendance{
		ID:            "manual-1",
		EmployeeID:    "emp-1",
		Date:          time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		Status:        attendance.StatusLeave,
		IsManualEntry: true,
	})
	require.NoError(t, err)

	deleted, err := attendanceRepo.DeleteLeaveGenerated(context.Background(), "emp-1", approved.FromDate, approved.EndDate)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	remaining, err := attendanceRepo.GetByEmployeeAndDate(context.Background(), "emp-1", time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, remaining.IsManualEntry)
}

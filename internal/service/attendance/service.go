package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/techqilla/ems-backend-go/internal/domain/attendance"
	"github.com/techqilla/ems-backend-go/internal/domain/employee"
	"github.com/techqilla/ems-backend-go/internal/domain/shift"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	loc *time.Location
	now func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	loc *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		loc:                  loc,
		now:                  time.Now,
	}
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}

func mapAttendanceToResponse(a attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		EmployeeName:  a.EmployeeName,
		EmployeeCode:  a.EmployeeCode,
		ShiftName:     a.ShiftName,
		Date:          a.Date.Format("2006-01-02"),
		Status:        string(a.Status),
		CheckIn:       timePtrToString(a.CheckIn),
		CheckOut:      timePtrToString(a.CheckOut),
		WorkingHours:  a.WorkingHours,
		IsLate:        a.IsLate,
		LateByMinutes: a.LateByMinutes,
		LeaveID:       a.LeaveID,
		Remarks:       a.Remarks,
		IsManualEntry: a.IsManualEntry,
		MarkedBy:      a.MarkedBy,
	}
}

func (s *AttendanceServiceImpl) currentEmployee(ctx context.Context) (employee.Employee, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return employee.Employee{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	e, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return employee.Employee{}, err
	}
	if !e.IsActive {
		return employee.Employee{}, employee.ErrEmployeeInactive
	}

	return e, nil
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context) (attendance.CheckInResponse, error) {
	e, err := s.currentEmployee(ctx)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}
	if e.Shift == nil {
		return attendance.CheckInResponse{}, attendance.ErrNoShiftAssigned
	}

	now := s.now().In(s.loc)
	shiftDay := shift.ResolveShiftDay(now, *e.Shift)

	window, err := e.Shift.WindowFor(shiftDay)
	if err != nil {
		return attendance.CheckInResponse{}, fmt.Errorf("shift %s has invalid times: %w", e.Shift.ID, err)
	}
	if err := e.Shift.ValidateCheckIn(now, window); err != nil {
		return attendance.CheckInResponse{}, err
	}

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, e.ID, shiftDay)
	if err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.CheckInResponse{}, err
	}
	if err == nil {
		if existing.LeaveID != nil {
			return attendance.CheckInResponse{}, fmt.Errorf("%w: %s is marked %s", attendance.ErrOnApprovedLeave, shiftDay.Format("2006-01-02"), existing.Status)
		}
		if existing.CheckIn != nil {
			return attendance.CheckInResponse{}, attendance.ErrAlreadyCheckedIn
		}
	}

	isLate, lateBy := window.LateStatus(now)
	status := attendance.StatusPresent
	message := "Checked in on time"
	if isLate {
		status = attendance.StatusLate
		message = fmt.Sprintf("Checked in late by %d minutes", lateBy)
	}

	created, err := s.AttendanceRepository.CheckIn(ctx, attendance.Attendance{
		ID:            uuid.New().String(),
		EmployeeID:    e.ID,
		Date:          shiftDay,
		Status:        status,
		CheckIn:       &now,
		IsLate:        isLate,
		LateByMinutes: lateBy,
	})
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	return attendance.CheckInResponse{
		Attendance: mapAttendanceToResponse(created),
		Message:    message,
	}, nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	e, err := s.currentEmployee(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if e.Shift == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoShiftAssigned
	}

	now := s.now().In(s.loc)
	shiftDay := shift.ResolveShiftDay(now, *e.Shift)

	record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, e.ID, shiftDay)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.AttendanceResponse{}, err
	}
	if record.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if record.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	workingHours := attendance.RoundHours(now.Sub(*record.CheckIn).Hours())
	status := attendance.ResolveCheckoutStatus(workingHours, e.Shift.MinimumHours, record.IsLate)

	updated, err := s.AttendanceRepository.UpdateCheckout(ctx, record.ID, now, workingHours, status)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(updated), nil
}

// Today implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Today(ctx context.Context) (attendance.TodayResponse, error) {
	e, err := s.currentEmployee(ctx)
	if err != nil {
		return attendance.TodayResponse{}, err
	}
	if e.Shift == nil {
		return attendance.TodayResponse{}, attendance.ErrNoShiftAssigned
	}

	now := s.now().In(s.loc)
	shiftDay := shift.ResolveShiftDay(now, *e.Shift)

	resp := attendance.TodayResponse{Date: shiftDay.Format("2006-01-02")}

	record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, e.ID, shiftDay)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return resp, nil
		}
		return attendance.TodayResponse{}, err
	}

	mapped := mapAttendanceToResponse(record)
	if record.CheckIn != nil && record.CheckOut == nil {
		// Live elapsed hours for an open session; never persisted.
		elapsed := now.Sub(*record.CheckIn).Hours()
		mapped.WorkingHours = &elapsed
	}
	resp.Attendance = &mapped
	return resp, nil
}

// History implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) History(ctx context.Context, filter attendance.HistoryFilter) (attendance.HistoryResponse, error) {
	if filter.EmployeeID == "" {
		e, err := s.currentEmployee(ctx)
		if err != nil {
			return attendance.HistoryResponse{}, err
		}
		filter.EmployeeID = e.ID
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 31
	}

	records, total, err := s.AttendanceRepository.ListByEmployee(ctx, filter)
	if err != nil {
		return attendance.HistoryResponse{}, err
	}

	return buildHistoryResponse(records, filter.Page, filter.Limit, total), nil
}

func buildHistoryResponse(records []attendance.Attendance, page, limit, total int) attendance.HistoryResponse {
	items := make([]attendance.AttendanceResponse, 0, len(records))
	for _, a := range records {
		items = append(items, mapAttendanceToResponse(a))
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	start := 0
	end := 0
	if len(items) > 0 {
		start = (page-1)*limit + 1
		end = start + len(items) - 1
	}

	return attendance.HistoryResponse{
		Items: items,
		Pagination: attendance.Pagination{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: totalPages,
			Showing:    fmt.Sprintf("showing %d-%d of %d", start, end, total),
		},
	}
}

// Stats implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Stats(ctx context.Context, employeeID string, from, to time.Time) (attendance.StatsResponse, error) {
	if employeeID == "" {
		e, err := s.currentEmployee(ctx)
		if err != nil {
			return attendance.StatsResponse{}, err
		}
		employeeID = e.ID
	}

	return s.AttendanceRepository.StatsByEmployee(ctx, employeeID, from, to)
}

// Mark implements attendance.AttendanceService.
//
// Admin marking writes the record as given, without shift-window
// computation, and keeps the date as the literal calendar date.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	markedBy, ok := claims["user_id"].(string)
	if !ok || markedBy == "" {
		return attendance.AttendanceResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, _ := time.ParseInLocation("2006-01-02", req.Date, s.loc)

	record := attendance.Attendance{
		ID:            uuid.New().String(),
		EmployeeID:    req.EmployeeID,
		Date:          date,
		Status:        attendance.Status(req.Status),
		Remarks:       req.Remarks,
		IsManualEntry: true,
		MarkedBy:      &markedBy,
	}

	if req.CheckIn != nil {
		t, _ := time.Parse(time.RFC3339, *req.CheckIn)
		t = t.In(s.loc)
		record.CheckIn = &t
	}
	if req.CheckOut != nil {
		t, _ := time.Parse(time.RFC3339, *req.CheckOut)
		t = t.In(s.loc)
		record.CheckOut = &t
	}
	if record.CheckIn != nil && record.CheckOut != nil {
		wh := attendance.RoundHours(record.CheckOut.Sub(*record.CheckIn).Hours())
		record.WorkingHours = &wh
	}

	upserted, err := s.AttendanceRepository.Upsert(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(upserted), nil
}

// ListByDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByDate(ctx context.Context, filter attendance.ListFilter) (attendance.HistoryResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if filter.Date.IsZero() {
		now := s.now().In(s.loc)
		filter.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	}

	records, total, err := s.AttendanceRepository.ListByDate(ctx, filter)
	if err != nil {
		return attendance.HistoryResponse{}, err
	}

	return buildHistoryResponse(records, filter.Page, filter.Limit, total), nil
}

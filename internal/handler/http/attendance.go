package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/techqilla/ems-backend-go/internal/domain/attendance"
	"github.com/techqilla/ems-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	Mark(w http.ResponseWriter, r *http.Request)
	ListByDate(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	loc               *time.Location
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, loc *time.Location) AttendanceHandler {
	return &AttendanceHandlerImpl{
		attendanceService: attendanceService,
		loc:               loc,
	}
}

// CheckIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	checkInResponse, err := h.attendanceService.CheckIn(r.Context())
	if err != nil {
		slog.Error("CheckIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, checkInResponse.Message, checkInResponse.Attendance)
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	attendanceResponse, err := h.attendanceService.CheckOut(r.Context())
	if err != nil {
		slog.Error("CheckOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", attendanceResponse)
}

// Today implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	todayResponse, err := h.attendanceService.Today(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, todayResponse)
}

// History implements AttendanceHandler.
func (h *AttendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := attendance.HistoryFilter{
		EmployeeID: query.Get("employee_id"),
		Status:     query.Get("status"),
		Page:       parseIntQuery(query.Get("page"), 1),
		Limit:      parseIntQuery(query.Get("limit"), 31),
	}
	if from, ok := h.parseDateQuery(query.Get("from")); ok {
		filter.From = &from
	}
	if to, ok := h.parseDateQuery(query.Get("to")); ok {
		filter.To = &to
	}

	historyResponse, err := h.attendanceService.History(r.Context(), filter)
	if err != nil {
		slog.Error("Attendance history service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, historyResponse)
}

// Stats implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// Default to month-to-date when no range is given.
	now := time.Now().In(h.loc)
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, h.loc)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.loc)

	if parsed, ok := h.parseDateQuery(query.Get("from")); ok {
		from = parsed
	}
	if parsed, ok := h.parseDateQuery(query.Get("to")); ok {
		to = parsed
	}

	statsResponse, err := h.attendanceService.Stats(r.Context(), query.Get("employee_id"), from, to)
	if err != nil {
		slog.Error("Attendance stats service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, statsResponse)
}

// Mark implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var markReq attendance.MarkAttendanceRequest

	if err := json.NewDecoder(r.Body).Decode(&markReq); err != nil {
		slog.Error("Mark attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := markReq.Validate(); err != nil {
		slog.Error("Mark attendance validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	attendanceResponse, err := h.attendanceService.Mark(r.Context(), markReq)
	if err != nil {
		slog.Error("Mark attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance marked successfully", attendanceResponse)
}

// ListByDate implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListByDate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := attendance.ListFilter{
		DepartmentID: query.Get("department_id"),
		Status:       query.Get("status"),
		Search:       query.Get("search"),
		Page:         parseIntQuery(query.Get("page"), 1),
		Limit:        parseIntQuery(query.Get("limit"), 50),
	}
	if date, ok := h.parseDateQuery(query.Get("date")); ok {
		filter.Date = date
	}

	listResponse, err := h.attendanceService.ListByDate(r.Context(), filter)
	if err != nil {
		slog.Error("List attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, listResponse)
}

func (h *AttendanceHandlerImpl) parseDateQuery(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	parsed, err := time.ParseInLocation("2006-01-02", value, h.loc)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

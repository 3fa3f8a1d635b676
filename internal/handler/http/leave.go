package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/techqilla/ems-backend-go/internal/domain/leave"
	"github.com/techqilla/ems-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	MyLeaves(w http.ResponseWriter, r *http.Request)
	Balance(w http.ResponseWriter, r *http.Request)
	Breakdown(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
	}
}

// Apply implements LeaveHandler.
func (h *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var applyReq leave.ApplyLeaveRequest

	if err := json.NewDecoder(r.Body).Decode(&applyReq); err != nil {
		slog.Error("Apply leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := applyReq.Validate(); err != nil {
		slog.Error("Apply leave validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	leaveResponse, err := h.leaveService.Apply(r.Context(), applyReq)
	if err != nil {
		slog.Error("Apply leave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", leaveResponse)
}

// GetByID implements LeaveHandler.
func (h *LeaveHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	leaveResponse, err := h.leaveService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaveResponse)
}

// MyLeaves implements LeaveHandler.
func (h *LeaveHandlerImpl) MyLeaves(w http.ResponseWriter, r *http.Request) {
	listResponse, err := h.leaveService.MyLeaves(r.Context(), h.parseListFilter(r))
	if err != nil {
		slog.Error("My leaves service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, listResponse)
}

// Balance implements LeaveHandler.
func (h *LeaveHandlerImpl) Balance(w http.ResponseWriter, r *http.Request) {
	balanceResponse, err := h.leaveService.Balance(r.Context())
	if err != nil {
		slog.Error("Leave balance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, balanceResponse)
}

// Breakdown implements LeaveHandler.
func (h *LeaveHandlerImpl) Breakdown(w http.ResponseWriter, r *http.Request) {
	breakdownResponse, err := h.leaveService.Breakdown(r.Context())
	if err != nil {
		slog.Error("Leave breakdown service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, breakdownResponse)
}

// List implements LeaveHandler.
func (h *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := h.parseListFilter(r)
	filter.EmployeeID = r.URL.Query().Get("employee_id")

	listResponse, err := h.leaveService.List(r.Context(), filter)
	if err != nil {
		slog.Error("List leaves service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, listResponse)
}

// Review implements LeaveHandler.
func (h *LeaveHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	var reviewReq leave.ReviewLeaveRequest

	if err := json.NewDecoder(r.Body).Decode(&reviewReq); err != nil {
		slog.Error("Review leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	reviewReq.ID = chi.URLParam(r, "id")

	if err := reviewReq.Validate(); err != nil {
		slog.Error("Review leave validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	leaveResponse, err := h.leaveService.Review(r.Context(), reviewReq)
	if err != nil {
		slog.Error("Review leave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request reviewed successfully", leaveResponse)
}

func (h *LeaveHandlerImpl) parseListFilter(r *http.Request) leave.ListFilter {
	query := r.URL.Query()

	filter := leave.ListFilter{
		Status:       query.Get("status"),
		Type:         query.Get("type"),
		DepartmentID: query.Get("department_id"),
		Page:         parseIntQuery(query.Get("page"), 1),
		Limit:        parseIntQuery(query.Get("limit"), 20),
	}
	if yearParam := query.Get("year"); yearParam != "" {
		if year := parseIntQuery(yearParam, 0); year > 0 {
			filter.Year = &year
		}
	}
	return filter
}

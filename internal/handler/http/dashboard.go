package http

import (
	"log/slog"
	"net/http"

	"github.com/techqilla/ems-backend-go/internal/domain/dashboard"
	"github.com/techqilla/ems-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	AdminSummary(w http.ResponseWriter, r *http.Request)
	EmployeeSummary(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{
		dashboardService: dashboardService,
	}
}

// AdminSummary implements DashboardHandler.
func (h *DashboardHandlerImpl) AdminSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardService.AdminSummary(r.Context())
	if err != nil {
		slog.Error("Admin dashboard service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// EmployeeSummary implements DashboardHandler.
func (h *DashboardHandlerImpl) EmployeeSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardService.EmployeeSummary(r.Context())
	if err != nil {
		slog.Error("Employee dashboard service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

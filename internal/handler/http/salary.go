package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/techqilla/ems-backend-go/internal/domain/salary"
	"github.com/techqilla/ems-backend-go/internal/handler/http/response"
)

type SalaryHandler interface {
	Add(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	MyHistory(w http.ResponseWriter, r *http.Request)
}

type SalaryHandlerImpl struct {
	salaryService salary.SalaryService
}

func NewSalaryHandler(salaryService salary.SalaryService) SalaryHandler {
	return &SalaryHandlerImpl{
		salaryService: salaryService,
	}
}

// Add implements SalaryHandler.
func (h *SalaryHandlerImpl) Add(w http.ResponseWriter, r *http.Request) {
	var addReq salary.AddSalaryRequest

	if err := json.NewDecoder(r.Body).Decode(&addReq); err != nil {
		slog.Error("Add salary decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := addReq.Validate(); err != nil {
		slog.Error("Add salary validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	salaryResponse, err := h.salaryService.Add(r.Context(), addReq)
	if err != nil {
		slog.Error("Add salary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary record added successfully", salaryResponse)
}

// History implements SalaryHandler.
func (h *SalaryHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	history, err := h.salaryService.History(r.Context(), employeeID)
	if err != nil {
		slog.Error("Salary history service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, history)
}

// MyHistory implements SalaryHandler.
func (h *SalaryHandlerImpl) MyHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.salaryService.MyHistory(r.Context())
	if err != nil {
		slog.Error("My salary history service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, history)
}

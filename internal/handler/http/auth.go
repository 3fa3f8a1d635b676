package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/techqilla/ems-backend-go/internal/domain/auth"
	"github.com/techqilla/ems-backend-go/internal/handler/http/response"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Verify(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		authService: authService,
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := loginReq.Validate(); err != nil {
		slog.Error("Login validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Call service
	tokenResponse, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Success response
	slog.Info("User logged in successfully")
	response.SuccessWithMessage(w, "User logged in successfully", tokenResponse)
}

// Verify implements AuthHandler.
func (a *AuthHandlerImpl) Verify(w http.ResponseWriter, r *http.Request) {
	userResponse, err := a.authService.Verify(r.Context())
	if err != nil {
		slog.Error("Verify service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, userResponse)
}

// ChangePassword implements AuthHandler.
func (a *AuthHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var changePasswordReq auth.ChangePasswordRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&changePasswordReq); err != nil {
		slog.Error("ChangePassword decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := changePasswordReq.Validate(); err != nil {
		slog.Error("ChangePassword validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Call service
	if err := a.authService.ChangePassword(r.Context(), changePasswordReq); err != nil {
		slog.Error("ChangePassword service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Success response
	slog.Info("Password changed successfully")
	response.SuccessWithMessage(w, "Password has been changed successfully", nil)
}

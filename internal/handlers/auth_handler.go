package handlers

import (
	"net/http"

	"github.com/Varun5711/wecare/internal/logger"
	"github.com/Varun5711/wecare/internal/middleware"
	"github.com/Varun5711/wecare/internal/models"
	"github.com/Varun5711/wecare/internal/service"
)

type AuthHandler struct {
	users *service.UserService
	log   *logger.Logger
}

func NewAuthHandler(users *service.UserService) *AuthHandler {
	return &AuthHandler{
		users: users,
		log:   logger.New("auth-handler"),
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.users.Register(r.Context(), req); err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusCreated, models.MessageResponse{Message: "Registration successful"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := h.users.Login(r.Context(), req)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, models.LoginResponse{Token: token, Message: "Login successful"})
}

func (h *AuthHandler) GetUserData(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Profile(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, models.ProfileResponse{Patient: user})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.users.ForgotPassword(r.Context(), req.Email); err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, models.MessageResponse{Message: "OTP sent to your email"})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.users.VerifyOTP(r.Context(), req.Email, req.OTP); err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, models.MessageResponse{Message: "OTP verified"})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.users.ResetPassword(r.Context(), req); err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, models.MessageResponse{Message: "Password reset successful"})
}

package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"zenflowAPI/internal/user"
	"zenflowAPI/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req user.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.authService.Register(ctx, &req)
	if err != nil {
		log.Printf("Register Handler: Service error: %v", err)
		switch err.Error() {
		case "user already exists":
			respondWithError(w, http.StatusConflict, err.Error())
		case "a valid email is required", "password must be at least 8 characters", "username must be at least 3 characters":
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to register")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]any{
		"message": "Registered. Check your email for the verification code.",
		"user":    created,
	})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req user.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Code == "" {
		respondWithError(w, http.StatusBadRequest, "email and code are required")
		return
	}

	resp, err := h.authService.VerifyOTP(ctx, &req)
	if err != nil {
		log.Printf("VerifyOTP Handler: Service error: %v", err)
		switch err.Error() {
		case "user not found", "no pending verification code":
			respondWithError(w, http.StatusNotFound, err.Error())
		case "verification code expired", "invalid verification code", "email already verified":
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to verify code")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req user.ResendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" {
		respondWithError(w, http.StatusBadRequest, "email is required")
		return
	}

	if err := h.authService.ResendOTP(ctx, req.Email); err != nil {
		switch err.Error() {
		case "user not found":
			respondWithError(w, http.StatusNotFound, err.Error())
		case "email already verified":
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to resend code")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Verification code sent"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req user.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.authService.Login(ctx, &req)
	if err != nil {
		switch err.Error() {
		case "invalid credentials":
			respondWithError(w, http.StatusUnauthorized, err.Error())
		case "email not verified":
			respondWithError(w, http.StatusForbidden, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to log in")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

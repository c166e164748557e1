package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"zenflowAPI/internal/notification"
	"zenflowAPI/middleware"
	"zenflowAPI/services"
)

type NotificationHandler struct {
	userService         *services.UserService
	notificationService *services.NotificationService
}

func NewNotificationHandler(userService *services.UserService, notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		userService:         userService,
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req notification.RegisterDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Token == "" {
		respondWithError(w, http.StatusBadRequest, "token is required")
		return
	}

	if err := h.userService.RegisterDevice(ctx, userID, &req); err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Device registered"})
}

// SendTestNotification queues a test email so users can confirm their
// address receives mail.
func (h *NotificationHandler) SendTestNotification(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	u, err := h.userService.GetProfile(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	h.notificationService.SendTestEmail(u)
	respondWithJSON(w, http.StatusAccepted, map[string]string{"message": "Test notification queued"})
}

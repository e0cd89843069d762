package http

import (
	"context"
	"net/http"
	"time"

	"github.com/SeniruR/Agrovia-Backend-sub000/internal/domain"
)

type NotificationStore interface {
	ListNotificationsByUser(ctx context.Context, userID int64) ([]*domain.Notification, error)
}

type NotificationsHandler struct {
	store   NotificationStore
	timeout time.Duration
}

func NewNotificationsHandler(store NotificationStore, timeout time.Duration) *NotificationsHandler {
	return &NotificationsHandler{
		store:   store,
		timeout: timeout,
	}
}

// GET /api/v1/notifications
func (h *NotificationsHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	notifications, err := h.store.ListNotificationsByUser(ctx, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to fetch notifications")
		return
	}

	if notifications == nil {
		notifications = []*domain.Notification{}
	}
	respondJSON(w, http.StatusOK, notifications)
}

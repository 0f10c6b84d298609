package http

import (
	"net/http"

	"rentaldesk-backend/internal/service"
)

// NotificationHandler serves in-app notification endpoints.
type NotificationHandler struct {
	notifications service.NotificationService
}

func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List handles GET /notifications?user_id=&page=&page_size=.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := queryInt32(r, "user_id", 0)
	if userID <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "user_id is required", Code: "BAD_REQUEST"})
		return
	}
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)

	notifications, total, err := h.notifications.GetNotifications(r.Context(), userID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": notifications,
		"meta":          listMeta{Page: page, PageSize: pageSize, Total: total},
	})
}

// MarkAsRead handles POST /notifications/{id}/read.
func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid notification id", Code: "BAD_REQUEST"})
		return
	}
	userID := queryInt32(r, "user_id", 0)
	if userID <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "user_id is required", Code: "BAD_REQUEST"})
		return
	}

	if err := h.notifications.MarkAsRead(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

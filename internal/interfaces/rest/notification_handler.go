package rest

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Andtit4/site-database-sub001/pkg/errors"
)

type NotificationHandler struct {
	notifications NotificationService
}

func NewNotificationHandler(notifications NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// GetNotifications handles GET /api/notifications?unread=&limit=
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	unreadOnly := false
	if raw := c.Query("unread"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			RespondAppError(c, errors.NewValidationError("unread", "must be a boolean"))
			return
		}
		unreadOnly = parsed
	}
	limit, ok := QueryLimit(c)
	if !ok {
		return
	}

	HandleGetEnvelope(c, "data", func() (interface{}, error) {
		return h.notifications.List(c.Request.Context(), unreadOnly, limit)
	})
}

// MarkAsRead handles POST /api/notifications/:id/read
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	HandleDeleteEnvelope(c, "Notification marked as read", func() error {
		return h.notifications.MarkAsRead(c.Request.Context(), c.Param("id"))
	})
}

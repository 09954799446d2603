package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/api/dto"
	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/service"
	"github.com/spec-kit/support-desk/pkg/util"
)

// NotificationsHandler exposes the per-user inbox.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notifications *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

// ListNotifications GET /notifications.
func (h *NotificationsHandler) ListNotifications(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	limit, offset := parsePage(c)
	items, unread, err := h.notifications.Inbox(c.Context(), principal.User.ID, limit, offset)
	if err != nil {
		return err
	}
	resp := dto.NotificationListResponse{
		Items:       make([]dto.NotificationResponse, 0, len(items)),
		UnreadCount: unread,
	}
	for i := range items {
		resp.Items = append(resp.Items, dto.NewNotificationResponse(&items[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// MarkRead POST /notifications/:id/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	if err := h.notifications.MarkRead(c.Context(), c.Params("id"), principal.User.ID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// DeleteNotification DELETE /notifications/:id.
func (h *NotificationsHandler) DeleteNotification(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	if err := h.notifications.Delete(c.Context(), c.Params("id"), principal.User.ID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

package handlers

import (
	"blood-portal/domain"
	"blood-portal/internal/api/presenters"
	"blood-portal/internal/middleware"
	"blood-portal/pkg/notification"

	"github.com/gofiber/fiber/v2"
)

type (
	NotificationHandler interface {
		GetNotifications(c *fiber.Ctx) error
		GetUnreadCount(c *fiber.Ctx) error
		MarkNotification(c *fiber.Ctx) error
		MarkAllNotificationsRead(c *fiber.Ctx) error
	}

	notificationHandler struct {
		notificationService notification.NotificationService
	}
)

func NewNotificationHandler(notificationService notification.NotificationService) NotificationHandler {
	return &notificationHandler{
		notificationService: notificationService,
	}
}

func (h *notificationHandler) GetNotifications(c *fiber.Ctx) error {
	page, limit := pagination(c)
	unreadOnly := c.QueryBool("unread", false)

	notifications, count, err := h.notificationService.GetNotifications(c.UserContext(), middleware.GetCaller(c), unreadOnly, page, limit)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedGetNotifications, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"notifications": notifications,
		"pagination":    domain.NewPagination(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetNotifications)
}

func (h *notificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	count, err := h.notificationService.UnreadCount(c.UserContext(), middleware.GetCaller(c))
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedGetNotifications, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"unread": count,
	}, fiber.StatusOK, domain.MessageSuccessGetNotifications)
}

// MarkNotification defaults to marking as read when the body omits "read".
func (h *notificationHandler) MarkNotification(c *fiber.Ctx) error {
	req := new(domain.MarkNotificationRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, invalid(err))
		}
	}
	read := true
	if req.Read != nil {
		read = *req.Read
	}

	updated, err := h.notificationService.MarkRead(c.UserContext(), middleware.GetCaller(c), c.Params("id"), read)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedMarkNotification, err)
	}

	return presenters.SuccessResponse(c, updated, fiber.StatusOK, domain.MessageSuccessMarkNotification)
}

func (h *notificationHandler) MarkAllNotificationsRead(c *fiber.Ctx) error {
	updated, err := h.notificationService.MarkAllRead(c.UserContext(), middleware.GetCaller(c))
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedMarkNotification, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"updated": updated,
	}, fiber.StatusOK, domain.MessageSuccessMarkNotification)
}

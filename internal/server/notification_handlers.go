package server

import (
	"bufio"
	"context"

	"pinboard/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// notificationListLimit caps GET /api/notifications responses.
const notificationListLimit = 50

// GetNotifications handles GET /api/notifications
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	userID := currentUserID(c)

	notifs, err := s.notificationService.List(c.UserContext(), userID, notificationListLimit)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	unread, err := s.notificationService.CountUnread(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"notifications": notifs,
		"unread":        unread,
	})
}

// MarkNotificationRead handles PATCH /api/notifications/:id/read
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	notificationID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.notificationService.MarkRead(c.UserContext(), currentUserID(c), notificationID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Notification marked as read",
	})
}

// MarkAllNotificationsRead handles PATCH /api/notifications/read-all
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	if err := s.notificationService.MarkAllRead(c.UserContext(), currentUserID(c)); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "All notifications marked as read",
	})
}

// StreamNotifications handles GET /api/notifications/stream. It holds the
// connection open and pushes the user's latest notifications as server-sent
// events until the client disconnects or the server shuts down.
func (s *Server) StreamNotifications(c *fiber.Ctx) error {
	userID := currentUserID(c)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	// The fiber context is recycled once this handler returns; the stream
	// writer runs after that, so it must only use captured values.
	ctx := s.shutdownCtx
	if ctx == nil {
		ctx = context.Background()
	}

	feed := s.feed
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		feed.Serve(ctx, userID, w)
	}))
	return nil
}

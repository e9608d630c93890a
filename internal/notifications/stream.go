// Package notifications streams a user's notification feed over
// server-sent events.
package notifications

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pinboard/internal/middleware"
	"pinboard/internal/models"
)

// Source provides the notifications to stream. Satisfied by
// service.NotificationService.
type Source interface {
	List(ctx context.Context, userID uint, limit int) ([]*models.Notification, error)
}

// streamLimit caps each event's batch; the feed streams recent activity,
// the list endpoint serves history.
const streamLimit = 10

// event is one SSE payload. The first event on a connection is "initial",
// every refresh after that is "update".
type event struct {
	Type          string                 `json:"type"`
	Notifications []*models.Notification `json:"notifications"`
}

// Feed pushes notification batches to connected clients on a fixed
// interval. One Feed serves all connections; per-connection state lives in
// Serve.
type Feed struct {
	source   Source
	interval time.Duration
}

// NewFeed creates a Feed polling source every interval.
func NewFeed(source Source, interval time.Duration) *Feed {
	return &Feed{source: source, interval: interval}
}

// Serve writes the feed for one user until ctx is cancelled or the client
// disconnects. A failed flush is how disconnects surface; it ends the
// stream without error.
func (f *Feed) Serve(ctx context.Context, userID uint, w *bufio.Writer) {
	middleware.StreamConnections.Inc()
	defer middleware.StreamConnections.Dec()

	if err := f.push(ctx, userID, w, "initial"); err != nil {
		return
	}

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := f.push(ctx, userID, w, "update"); err != nil {
				return
			}
		}
	}
}

func (f *Feed) push(ctx context.Context, userID uint, w *bufio.Writer, eventType string) error {
	notifications, err := f.source.List(ctx, userID, streamLimit)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to load notifications for stream",
			"user_id", userID, "error", err)
		return err
	}
	if notifications == nil {
		notifications = []*models.Notification{}
	}

	payload, err := json.Marshal(event{Type: eventType, Notifications: notifications})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}

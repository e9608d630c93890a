package service

import (
	"context"

	"pinboard/internal/middleware"
	"pinboard/internal/models"
	"pinboard/internal/repository"
)

// NotificationService generates feed entries for social events and serves
// the recipient-facing read operations.
//
// Generation is best-effort: a notification is a side effect of someone
// else's action, so a failed write must never fail that action. Callers get
// the error back for logging but should not propagate it.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	boardRepo        repository.BoardRepository
	commentRepo      repository.CommentRepository
	suppressSelf     bool
}

// NewNotificationService creates a new NotificationService. When suppressSelf
// is set, events a user triggers on their own content produce no entry.
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	boardRepo repository.BoardRepository,
	commentRepo repository.CommentRepository,
	suppressSelf bool,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		boardRepo:        boardRepo,
		commentRepo:      commentRepo,
		suppressSelf:     suppressSelf,
	}
}

// notify resolves the recipient and writes the entry. Ownerless targets
// (author deleted) are skipped silently: there is nobody to tell.
func (s *NotificationService) notify(ctx context.Context, recipient *uint, actorID uint, typ models.NotificationType, boardID, commentID *uint) error {
	if recipient == nil {
		return nil
	}
	if s.suppressSelf && *recipient == actorID {
		return nil
	}
	return s.notificationRepo.Create(ctx, &models.Notification{
		UserID:    *recipient,
		Type:      typ,
		BoardID:   boardID,
		CommentID: commentID,
		ActorID:   actorID,
	})
}

// BoardLiked records a board_like entry for the board's author.
func (s *NotificationService) BoardLiked(ctx context.Context, actorID uint, board *models.Board) error {
	return s.notify(ctx, board.AuthorID, actorID, models.NotificationBoardLike, &board.ID, nil)
}

// CommentLiked records a comment_like entry for the comment's author. The
// entry carries the parent board id so clients can link to the thread.
func (s *NotificationService) CommentLiked(ctx context.Context, actorID uint, comment *models.Comment) error {
	return s.notify(ctx, comment.AuthorID, actorID, models.NotificationCommentLike, &comment.BoardID, &comment.ID)
}

// BoardCommented records a board_comment entry for the board's author.
func (s *NotificationService) BoardCommented(ctx context.Context, actorID uint, board *models.Board, comment *models.Comment) error {
	return s.notify(ctx, board.AuthorID, actorID, models.NotificationBoardComment, &board.ID, &comment.ID)
}

// ReportFailure logs a failed notification write and bumps the failure
// counter. The triggering request carries on regardless.
func ReportFailure(ctx context.Context, typ models.NotificationType, err error) {
	middleware.Logger.ErrorContext(ctx, "failed to create notification",
		"type", string(typ), "error", err)
	middleware.NotificationWriteFailures.WithLabelValues(string(typ)).Inc()
}

// List returns the newest notifications for a user, capped at limit.
func (s *NotificationService) List(ctx context.Context, userID uint, limit int) ([]*models.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID, limit)
}

// CountUnread returns the number of unread notifications for a user.
func (s *NotificationService) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkRead marks a single notification as read. Only the recipient may do
// so; marking an already-read entry is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification.UserID != userID {
		return models.NewForbiddenError("You can only update your own notifications")
	}
	if notification.Read {
		return nil
	}
	return s.notificationRepo.MarkRead(ctx, notificationID)
}

// MarkAllRead marks every unread notification for a user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

package models

import "time"

// NotificationType identifies the social event a notification was created for.
type NotificationType string

const (
	// NotificationBoardLike is sent to a board's author when someone likes it.
	NotificationBoardLike NotificationType = "board_like"
	// NotificationCommentLike is sent to a comment's author when someone likes it.
	NotificationCommentLike NotificationType = "comment_like"
	// NotificationBoardComment is sent to a board's author when someone comments on it.
	NotificationBoardComment NotificationType = "board_comment"
)

// Notification is a feed entry for the recipient user. Created only by the
// notification service; the only mutation ever applied is Read -> true.
// Rows cascade away with the recipient, actor, board or comment they reference.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"user_id"`
	User      User             `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Type      NotificationType `gorm:"not null" json:"type"`
	BoardID   *uint            `json:"board_id,omitempty"`
	Board     *Board           `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"-"`
	CommentID *uint            `json:"comment_id,omitempty"`
	Comment   *Comment         `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
	ActorID   uint             `gorm:"not null" json:"actor_id"`
	Actor     User             `gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE" json:"-"`
	Read      bool             `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

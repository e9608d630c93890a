package models

import "time"

// BoardLike records a user's like on a board.
// The combination of BoardID and UserID must be unique; the constraint is
// enforced by the database, not by application-level sequencing.
type BoardLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BoardID   uint      `gorm:"not null;uniqueIndex:idx_board_like" json:"board_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_board_like" json:"user_id"`
	Board     Board     `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"-"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentLike records a user's like on a comment, with the same uniqueness
// rule as BoardLike.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_comment_like" json:"comment_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_comment_like" json:"user_id"`
	Comment   Comment   `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account on the board.
// Deleting a user nulls out authorship of their boards and comments and
// cascades away their sessions, likes and notifications.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"unique;not null" json:"name"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`

	Boards   []Board   `gorm:"foreignKey:AuthorID" json:"boards,omitempty"`
	Comments []Comment `gorm:"foreignKey:AuthorID" json:"comments,omitempty"`
}

// PublicUser is the externally visible view of a User. The credential hash
// never leaves the service layer.
type PublicUser struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Public returns the external view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name}
}

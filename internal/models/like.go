package models

import "time"

// Like represents a like on a post. PostID is a MongoDB ObjectID in hex; the
// composite unique index enforces at-most-one like per (post, user).
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"index;uniqueIndex:idx_post_user;size:24"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_post_user"`
	CreatedAt time.Time `json:"created_at"`
}

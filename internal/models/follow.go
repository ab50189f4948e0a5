package models

import "time"

// Follow represents one directed edge of the follow graph. Both the
// follower's "following" view and the followee's "followers" view derive
// from this single row, so the two sides can never disagree. The composite
// unique index makes the relation insert idempotent against concurrent
// duplicate requests.
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_followee"`
	FolloweeID uint      `json:"followee_id" gorm:"index;uniqueIndex:idx_follower_followee"`
	CreatedAt  time.Time `json:"created_at"`
}

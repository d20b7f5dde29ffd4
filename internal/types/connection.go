package types

import (
	"time"
)

// Connection is a directed follower -> following edge between two distinct
// users, unique per ordered pair.
type Connection struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowerID  uint      `gorm:"not null;column:follower_id;uniqueIndex:idx_connection_pair" json:"follower_id"`
	FollowingID uint      `gorm:"not null;column:following_id;uniqueIndex:idx_connection_pair;check:follower_id <> following_id" json:"following_id"`
	Timestamp   time.Time `gorm:"not null;column:timestamp" json:"timestamp"`
}

func (Connection) TableName() string {
	return "connection"
}

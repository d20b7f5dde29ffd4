package types

import (
	"time"
)

// User is a reviewer account. RatingsCount, AverageRating, Ranking,
// FollowerCount and FollowingCount are derived fields: they are written only
// by the stats engine (or, for the connection counters, by the connection
// service) and never taken from a client payload.
type User struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string    `gorm:"not null;column:name" json:"name"`
	Username       string    `gorm:"uniqueIndex;not null;column:username" json:"username"`
	Bio            string    `gorm:"column:bio" json:"bio"`
	Location       string    `gorm:"column:location" json:"location"`
	Timestamp      time.Time `gorm:"not null;column:timestamp" json:"timestamp"`
	RatingsCount   int       `gorm:"not null;default:0;column:ratings_count" json:"ratings_count"`
	AverageRating  float64   `gorm:"not null;default:0;column:average_rating" json:"average_rating"`
	Ranking        int       `gorm:"not null;default:0;column:ranking" json:"ranking"`
	FollowerCount  int       `gorm:"not null;default:0;column:follower_count" json:"follower_count"`
	FollowingCount int       `gorm:"not null;default:0;column:following_count" json:"following_count"`
}

func (User) TableName() string {
	return "user"
}

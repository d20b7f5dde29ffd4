package types

import (
	"time"
)

const (
	MinRating = 1.0
	MaxRating = 10.0
)

// Review is one user's rating of one eatery, unique per (user, eatery) pair.
// Timestamp is refreshed on edit.
type Review struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint      `gorm:"not null;column:user_id;uniqueIndex:idx_review_user_eatery" json:"user_id"`
	EateryID   uint      `gorm:"not null;column:eatery_id;uniqueIndex:idx_review_user_eatery" json:"eatery_id"`
	Rating     float64   `gorm:"not null;column:rating;check:rating >= 1 AND rating <= 10" json:"rating"`
	ReviewText string    `gorm:"column:review_text" json:"review_text"`
	Timestamp  time.Time `gorm:"not null;column:timestamp" json:"timestamp"`
}

func (Review) TableName() string {
	return "review"
}

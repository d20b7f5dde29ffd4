package types

// Eatery is a reviewable place. AverageRating is derived from its reviews.
type Eatery struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string  `gorm:"not null;column:name" json:"name"`
	Description   string  `gorm:"size:150;column:description" json:"description"`
	Cuisine       string  `gorm:"column:cuisine" json:"cuisine"`
	Location      string  `gorm:"column:location" json:"location"`
	AverageRating float64 `gorm:"not null;default:0;column:average_rating" json:"average_rating"`
}

func (Eatery) TableName() string {
	return "eatery"
}

package models

type Rating struct {
	BaseModel
	RaterID string `gorm:"not null;index;uniqueIndex:idx_rating_pair" json:"user"`
	RatedID string `gorm:"not null;index;uniqueIndex:idx_rating_pair" json:"rated_user"`
	Score   int    `gorm:"not null;check:score >= 1 AND score <= 5" json:"rating"`
	Comment string `json:"comment,omitempty"`

	// Relations
	Rater Account `gorm:"foreignKey:RaterID" json:"-"`
	Rated Account `gorm:"foreignKey:RatedID" json:"-"`
}

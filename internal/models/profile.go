package models

type Profile struct {
	BaseModel
	AccountID     string `gorm:"uniqueIndex;not null" json:"account_id"`
	FirstName     string `gorm:"not null" json:"firstname"`
	LastName      string `gorm:"not null" json:"lastname"`
	ContactNumber string `json:"contact_number,omitempty"`
	Description   string `json:"description,omitempty"`
	Location      string `json:"location,omitempty"`
	Website       string `json:"website,omitempty"`
	ImagePath     string `json:"profile_image,omitempty"`
	// AverageRating - производное поле, пересчитывается из Rating.
	// Клиент не может задавать его напрямую.
	AverageRating float64 `gorm:"default:0" json:"average_rating"`

	// Relations
	SocialLinks []SocialLink `gorm:"many2many:profile_social_links;" json:"social_media_accounts"`
}

type SocialLink struct {
	BaseModel
	SiteName string `gorm:"not null" json:"site_name"`
	URL      string `gorm:"not null" json:"link"`
}

package models

import "time"

type Account struct {
	BaseModel
	Email             string      `gorm:"uniqueIndex;not null" json:"email"`
	Username          string      `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash      string      `gorm:"not null" json:"-"`
	IsVerified        bool        `gorm:"default:false" json:"is_verified"`
	IsActive          bool        `gorm:"default:true" json:"is_active"`
	DateJoined        time.Time   `gorm:"default:now()" json:"date_joined"`
	VerificationToken string      `gorm:"index" json:"-"`
	Role              AccountRole `gorm:"type:varchar(20);default:'buyer'" json:"role"`

	// Relations
	Profile  *Profile  `gorm:"foreignKey:AccountID" json:"-"`
	Sessions []Session `gorm:"foreignKey:AccountID" json:"-"`
}

// Session - серверная запись о выданном токене входа.
// Logout удаляет запись, после чего токен перестает приниматься.
type Session struct {
	BaseModel
	AccountID string    `gorm:"not null;index" json:"account_id"`
	Token     string    `gorm:"not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

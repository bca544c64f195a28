package models

import "gorm.io/gorm"

// Default profile images used when a user has not set their own.
const (
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

// User represents a registered account.
type User struct {
	gorm.Model
	Username     string `gorm:"size:255;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:50;not null;default:'user';index"`

	ImageURL       string `gorm:"size:512"`
	HeaderImageURL string `gorm:"size:512"`
	Bio            string
	Location       string `gorm:"size:255"`

	Messages []Message `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// IsAdmin reports whether the user may perform moderation actions.
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

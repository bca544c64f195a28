package models

import "gorm.io/gorm"

// MaxMessageLength bounds the text of a single message.
const MaxMessageLength = 140

// Message represents a short text post authored by one user.
// CreatedAt is assigned by the server and is the timeline ordering key.
type Message struct {
	gorm.Model
	Text   string `gorm:"size:140;not null"`
	UserID uint   `gorm:"not null;index"`

	User User `gorm:"foreignKey:UserID"` // Belongs to User
}

package models

import "time"

// Like records that a user liked a message. The composite primary key
// guarantees at most one row per (user, message) pair; unliking deletes
// the row rather than flipping a flag.
type Like struct {
	UserID    uint `gorm:"primaryKey"`
	MessageID uint `gorm:"primaryKey"`
	CreatedAt time.Time

	User    User    `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Message Message `gorm:"foreignKey:MessageID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

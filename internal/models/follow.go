package models

import "time"

// Follow represents a directed edge in the social graph: the follower's
// home timeline includes the followee's messages.
// The primary key is a composite of (FollowerID, FolloweeID) to ensure
// at most one edge per ordered pair.
type Follow struct {
	FollowerID uint `gorm:"primaryKey"`
	FolloweeID uint `gorm:"primaryKey"`
	CreatedAt  time.Time

	Follower User `gorm:"foreignKey:FollowerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Followee User `gorm:"foreignKey:FolloweeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

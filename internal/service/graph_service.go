package service

import (
	"context"
	"errors"

	"warbler/backend/internal/models"
	"warbler/backend/pkg/apperr"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GraphService maintains the directed follow edges between users.
// Counts are always recomputed from the edge set, never cached.
type GraphService struct {
	db *gorm.DB
}

func NewGraphService(db *gorm.DB) *GraphService {
	return &GraphService{db: db}
}

// Follow creates the edge follower -> followee. Following a user who is
// already followed is a no-op success. Self-follows are rejected.
func (s *GraphService) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return apperr.ErrSelfFollow
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var followee models.User
		if err := tx.First(&followee, followeeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrUserNotFound
			}
			return apperr.ErrStoreUnavailable(err)
		}

		edge := models.Follow{FollowerID: followerID, FolloweeID: followeeID}
		// The composite primary key makes duplicate follows conflict; do
		// nothing so the operation stays idempotent.
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error; err != nil {
			return apperr.ErrStoreUnavailable(err)
		}
		return nil
	})
}

// Unfollow removes the edge follower -> followee. Removing an absent edge
// is a no-op success.
func (s *GraphService) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	err := s.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return apperr.ErrStoreUnavailable(err)
	}
	return nil
}

// IsFollowing reports whether the edge a -> b exists.
func (s *GraphService) IsFollowing(ctx context.Context, a, b uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", a, b).
		Count(&count).Error
	if err != nil {
		return false, apperr.ErrStoreUnavailable(err)
	}
	return count > 0, nil
}

// IsFollowedBy reports whether the edge b -> a exists.
func (s *GraphService) IsFollowedBy(ctx context.Context, a, b uint) (bool, error) {
	return s.IsFollowing(ctx, b, a)
}

// Followers returns the users following userID. No ordering is guaranteed.
func (s *GraphService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followee_id = ?", userID).
		Find(&users).Error
	if err != nil {
		return nil, apperr.ErrStoreUnavailable(err)
	}
	return users, nil
}

// Following returns the users that userID follows. No ordering is guaranteed.
func (s *GraphService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Joins("JOIN follows ON follows.followee_id = users.id").
		Where("follows.follower_id = ?", userID).
		Find(&users).Error
	if err != nil {
		return nil, apperr.ErrStoreUnavailable(err)
	}
	return users, nil
}

// FollowerCount returns the number of users following userID.
func (s *GraphService) FollowerCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("followee_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, apperr.ErrStoreUnavailable(err)
	}
	return count, nil
}

// FollowingCount returns the number of users userID follows.
func (s *GraphService) FollowingCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, apperr.ErrStoreUnavailable(err)
	}
	return count, nil
}

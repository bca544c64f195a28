package service

import (
	"context"

	"warbler/backend/internal/models"
	"warbler/backend/pkg/apperr"

	"gorm.io/gorm"
)

// DefaultTimelineLimit caps how many messages a timeline returns.
const DefaultTimelineLimit = 100

// TimelineService computes feeds from the message store and the social
// graph. Both timelines are pure reads over current state; nothing is
// cached or incrementally maintained.
type TimelineService struct {
	db *gorm.DB
}

func NewTimelineService(db *gorm.DB) *TimelineService {
	return &TimelineService{db: db}
}

// Home returns the newest messages authored by userID or anyone they
// follow, most recent first, capped at limit.
func (s *TimelineService) Home(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	limit = clampLimit(limit)

	db := s.db.WithContext(ctx)
	followees := db.Model(&models.Follow{}).Select("followee_id").Where("follower_id = ?", userID)

	var messages []models.Message
	err := db.Preload("User").
		Where("user_id = ? OR user_id IN (?)", userID, followees).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, apperr.ErrStoreUnavailable(err)
	}
	return messages, nil
}

// User returns the newest messages authored by exactly userID, most recent
// first, capped at limit.
func (s *TimelineService) User(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	limit = clampLimit(limit)

	var messages []models.Message
	err := s.db.WithContext(ctx).Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, apperr.ErrStoreUnavailable(err)
	}
	return messages, nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > DefaultTimelineLimit {
		return DefaultTimelineLimit
	}
	return limit
}

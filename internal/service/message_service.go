package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"warbler/backend/internal/models"
	"warbler/backend/pkg/apperr"

	"gorm.io/gorm"
)

// MessageService implements posting, deletion and the like toggle.
type MessageService struct {
	db *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

// Post creates a message authored by authorID. The creation timestamp is
// assigned by the server and is the only ordering key for timelines.
func (s *MessageService) Post(ctx context.Context, authorID uint, text string) (*models.Message, error) {
	if text == "" {
		return nil, apperr.ErrEmptyText
	}
	if utf8.RuneCountInString(text) > models.MaxMessageLength {
		return nil, apperr.ErrOversizedText
	}

	msg := models.Message{Text: text, UserID: authorID}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var author models.User
		if err := tx.First(&author, authorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrUnknownAuthor
			}
			return apperr.ErrStoreUnavailable(err)
		}

		if err := tx.Create(&msg).Error; err != nil {
			return apperr.ErrStoreUnavailable(err)
		}
		msg.User = author
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &msg, nil
}

// Get looks up a message by ID, with its author loaded. Absence is reported
// via the bool.
func (s *MessageService) Get(ctx context.Context, id uint) (*models.Message, bool, error) {
	var msg models.Message
	err := s.db.WithContext(ctx).Preload("User").First(&msg, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperr.ErrStoreUnavailable(err)
	}
	return &msg, true, nil
}

// Delete removes a message and its likes. Only the author or an admin may
// delete; the failure does not reveal more than the message's existence.
func (s *MessageService) Delete(ctx context.Context, actorID, messageID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var msg models.Message
		if err := tx.First(&msg, messageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrMessageNotFound
			}
			return apperr.ErrStoreUnavailable(err)
		}

		var actor models.User
		if err := tx.First(&actor, actorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotAuthorized
			}
			return apperr.ErrStoreUnavailable(err)
		}

		if msg.UserID != actorID && !actor.IsAdmin() {
			return apperr.ErrNotAuthorized
		}

		if err := tx.Where("message_id = ?", messageID).Delete(&models.Like{}).Error; err != nil {
			return apperr.ErrStoreUnavailable(err)
		}
		if err := tx.Unscoped().Delete(&msg).Error; err != nil {
			return apperr.ErrStoreUnavailable(err)
		}
		return nil
	})
}

// ToggleLike flips the like state of (userID, messageID): it creates the
// like if absent and removes it if present. The returned bool is the state
// after the toggle.
func (s *MessageService) ToggleLike(ctx context.Context, userID, messageID uint) (bool, error) {
	var nowLiked bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var msg models.Message
		if err := tx.First(&msg, messageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrMessageNotFound
			}
			return apperr.ErrStoreUnavailable(err)
		}

		var count int64
		if err := tx.Model(&models.Like{}).
			Where("user_id = ? AND message_id = ?", userID, messageID).
			Count(&count).Error; err != nil {
			return apperr.ErrStoreUnavailable(err)
		}

		if count > 0 {
			if err := tx.Where("user_id = ? AND message_id = ?", userID, messageID).
				Delete(&models.Like{}).Error; err != nil {
				return apperr.ErrStoreUnavailable(err)
			}
			nowLiked = false
			return nil
		}

		like := models.Like{UserID: userID, MessageID: messageID}
		if err := tx.Create(&like).Error; err != nil {
			return apperr.ErrStoreUnavailable(err)
		}
		nowLiked = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return nowLiked, nil
}

// IsLiked reports whether userID has liked messageID.
func (s *MessageService) IsLiked(ctx context.Context, userID, messageID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error
	if err != nil {
		return false, apperr.ErrStoreUnavailable(err)
	}
	return count > 0, nil
}

// LikedMessages returns all messages userID has liked, unordered, with
// authors loaded.
func (s *MessageService) LikedMessages(ctx context.Context, userID uint) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).Preload("User").
		Joins("JOIN likes ON likes.message_id = messages.id").
		Where("likes.user_id = ?", userID).
		Find(&messages).Error
	if err != nil {
		return nil, apperr.ErrStoreUnavailable(err)
	}
	return messages, nil
}

// LikeCount returns how many messages userID has liked.
func (s *MessageService) LikeCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, apperr.ErrStoreUnavailable(err)
	}
	return count, nil
}

// MessageLikeCount returns how many users have liked messageID.
func (s *MessageService) MessageLikeCount(ctx context.Context, messageID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Like{}).
		Where("message_id = ?", messageID).
		Count(&count).Error
	if err != nil {
		return 0, apperr.ErrStoreUnavailable(err)
	}
	return count, nil
}

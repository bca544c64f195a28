package service

import (
	"context"
	"errors"

	"warbler/backend/internal/models"
	"warbler/backend/pkg/apperr"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 6

// dummyHash is compared against when authentication is attempted for an
// unknown username, so response time does not depend on whether the
// username exists.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("warbler-dummy-password"), bcrypt.DefaultCost)

// UserService implements account registration, credential verification,
// profile management and account deletion.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// RegisterInput carries the fields accepted at signup.
type RegisterInput struct {
	Username       string
	Email          string
	Password       string
	ImageURL       string
	HeaderImageURL string
	Bio            string
	Location       string
}

// UpdateProfileInput carries the fields accepted on a profile edit.
// Password is the current password and confirms the actor's identity.
type UpdateProfileInput struct {
	Password       string
	Username       string
	Email          string
	ImageURL       string
	HeaderImageURL string
	Bio            string
	Location       string
}

// Register creates a new account. The plaintext password never reaches the
// store; only its bcrypt hash is persisted. Uniqueness violations are
// reported distinctly so the caller can re-prompt.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Username == "" {
		return nil, apperr.InvalidArg("username is required")
	}
	if in.Email == "" {
		return nil, apperr.InvalidArg("email is required")
	}
	if len(in.Password) < MinPasswordLength {
		return nil, apperr.ErrInvalidPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.ErrStoreUnavailable(err)
	}

	user := models.User{
		Username:       in.Username,
		Email:          in.Email,
		PasswordHash:   string(hashed),
		Role:           "user",
		ImageURL:       in.ImageURL,
		HeaderImageURL: in.HeaderImageURL,
		Bio:            in.Bio,
		Location:       in.Location,
	}
	if user.ImageURL == "" {
		user.ImageURL = models.DefaultImageURL
	}
	if user.HeaderImageURL == "" {
		user.HeaderImageURL = models.DefaultHeaderImageURL
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkUnique(tx, "username = ?", in.Username, apperr.ErrDuplicateUsername); err != nil {
			return err
		}
		if err := checkUnique(tx, "email = ?", in.Email, apperr.ErrDuplicateEmail); err != nil {
			return err
		}
		if err := tx.Create(&user).Error; err != nil {
			return apperr.ErrStoreUnavailable(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Authenticate verifies a username/password pair. A failed match is not an
// error: the caller gets (nil, false, nil) whether the username is unknown
// or the password is wrong, so the two cases are indistinguishable.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, bool, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Burn a comparison so unknown usernames take as long as bad passwords.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperr.ErrStoreUnavailable(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, false, nil
	}
	return &user, true, nil
}

// GetByID looks up a user by ID. Absence is reported via the bool, not an
// error; callers decide their own error policy.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, bool, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperr.ErrStoreUnavailable(err)
	}
	return &user, true, nil
}

// GetByUsername looks up a user by username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, bool, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperr.ErrStoreUnavailable(err)
	}
	return &user, true, nil
}

// Search returns users whose username contains q, paginated, with the
// total match count.
func (s *UserService) Search(ctx context.Context, q string, page, limit int) ([]models.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	query := s.db.WithContext(ctx).Model(&models.User{})
	if q != "" {
		query = query.Where("username LIKE ?", "%"+q+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperr.ErrStoreUnavailable(err)
	}

	var users []models.User
	if err := query.Limit(limit).Offset((page - 1) * limit).Find(&users).Error; err != nil {
		return nil, 0, apperr.ErrStoreUnavailable(err)
	}
	return users, total, nil
}

// UpdateProfile edits the actor's own profile. The current password must be
// supplied; a wrong password leaves the profile untouched.
func (s *UserService) UpdateProfile(ctx context.Context, actorID uint, in UpdateProfileInput) (*models.User, error) {
	var user models.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, actorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrUserNotFound
			}
			return apperr.ErrStoreUnavailable(err)
		}

		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
			return apperr.ErrWrongPassword
		}

		if in.Username != "" && in.Username != user.Username {
			if err := checkUnique(tx, "username = ? AND id <> ?", in.Username, apperr.ErrDuplicateUsername, actorID); err != nil {
				return err
			}
			user.Username = in.Username
		}
		if in.Email != "" && in.Email != user.Email {
			if err := checkUnique(tx, "email = ? AND id <> ?", in.Email, apperr.ErrDuplicateEmail, actorID); err != nil {
				return err
			}
			user.Email = in.Email
		}

		user.ImageURL = in.ImageURL
		user.HeaderImageURL = in.HeaderImageURL
		user.Bio = in.Bio
		user.Location = in.Location
		if user.ImageURL == "" {
			user.ImageURL = models.DefaultImageURL
		}
		if user.HeaderImageURL == "" {
			user.HeaderImageURL = models.DefaultHeaderImageURL
		}

		if err := tx.Save(&user).Error; err != nil {
			return apperr.ErrStoreUnavailable(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Delete removes the user and, in the same transaction, everything that
// references them: likes on their messages, their messages, their likes,
// and all follow edges touching them. Rows are hard-deleted so the unique
// username/email become available again.
func (s *UserService) Delete(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrUserNotFound
			}
			return apperr.ErrStoreUnavailable(err)
		}

		authored := tx.Model(&models.Message{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("message_id IN (?)", authored).Delete(&models.Like{}).Error; err != nil {
			return apperr.ErrStoreUnavailable(err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Like{}).Error; err != nil {
			return apperr.ErrStoreUnavailable(err)
		}
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Message{}).Error; err != nil {
			return apperr.ErrStoreUnavailable(err)
		}
		if err := tx.Where("follower_id = ? OR followee_id = ?", userID, userID).Delete(&models.Follow{}).Error; err != nil {
			return apperr.ErrStoreUnavailable(err)
		}
		if err := tx.Unscoped().Delete(&user).Error; err != nil {
			return apperr.ErrStoreUnavailable(err)
		}
		return nil
	})
}

func checkUnique(tx *gorm.DB, cond string, value string, dup error, extra ...interface{}) error {
	args := append([]interface{}{value}, extra...)
	var count int64
	if err := tx.Model(&models.User{}).Where(cond, args...).Count(&count).Error; err != nil {
		return apperr.ErrStoreUnavailable(err)
	}
	if count > 0 {
		return dup
	}
	return nil
}

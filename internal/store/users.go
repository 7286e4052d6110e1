package store

import (
	"context"
	"vidshare/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func (s *GormStore) GetOrCreateUser(ctx context.Context, email, username string) (*models.User, bool, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, errors.Wrapf(err, "find user %s", email)
	}

	user = models.User{Email: email, Username: username}
	if err := db.Create(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, errors.Wrapf(err, "create user %s", email)
		}
		// 并发首次登录，唯一索引冲突，读取先写入的那一行
		var winner models.User
		if err := db.Where("email = ?", email).First(&winner).Error; err != nil {
			return nil, false, errors.Wrapf(err, "reload user %s", email)
		}
		return &winner, false, nil
	}
	return &user, true, nil
}

func (s *GormStore) GetUserWithVideos(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Preload("Videos", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		First(&user, id).Error
	if err != nil {
		return nil, notFound(err, "get user %d", id)
	}
	return &user, nil
}

func (s *GormStore) LinkGoogleID(ctx context.Context, userID uint, googleID string) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("google_id", googleID)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "link google id to user %d", userID)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

package store

import (
	"context"
	"vidshare/internal/models"

	"github.com/pkg/errors"
)

// CreateComment inserts the comment and reloads it with its author.
func (s *GormStore) CreateComment(ctx context.Context, comment *models.Comment) error {
	db := s.db.WithContext(ctx)
	if err := db.Create(comment).Error; err != nil {
		return errors.Wrapf(err, "create comment on video %d", comment.VideoID)
	}
	if err := db.Preload("User").First(comment, comment.ID).Error; err != nil {
		return errors.Wrapf(err, "reload comment %d", comment.ID)
	}
	return nil
}

func (s *GormStore) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, notFound(err, "get comment %d", id)
	}
	return &comment, nil
}

func (s *GormStore) DeleteComment(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete comment %d", id)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

package store

import (
	"context"
	"vidshare/internal/models"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxReactionAttempts = 3

// UpdateReaction locks the pair's row for the read-modify-write. Two first
// reactions racing on a missing row are caught by idx_user_video; the loser
// retries and then sees the winner's row.
func (s *GormStore) UpdateReaction(ctx context.Context, userID, videoID uint, next func(current int) int) (int, error) {
	var (
		result int
		err    error
	)
	for attempt := 1; attempt <= maxReactionAttempts; attempt++ {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			current := models.Neutral
			var existing models.VideoLike
			findErr := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("user_id = ? AND video_id = ?", userID, videoID).
				First(&existing).Error
			switch {
			case findErr == nil:
				current = existing.Polarity
			case errors.Is(findErr, gorm.ErrRecordNotFound):
			default:
				return findErr
			}

			result = next(current)
			switch {
			case result == current:
				return nil
			case result == models.Neutral:
				return tx.Delete(&existing).Error
			case current == models.Neutral:
				return tx.Create(&models.VideoLike{UserID: userID, VideoID: videoID, Polarity: result}).Error
			default:
				return tx.Model(&existing).Update("polarity", result).Error
			}
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,
			"video_id": videoID,
			"attempt":  attempt,
		}).Debug("reaction insert lost a race, retrying")
	}
	if err != nil {
		return models.Neutral, errors.Wrapf(err, "update reaction user=%d video=%d", userID, videoID)
	}
	return result, nil
}

func (s *GormStore) GetReaction(ctx context.Context, userID, videoID uint) (int, error) {
	var like models.VideoLike
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Neutral, nil
	}
	if err != nil {
		return models.Neutral, errors.Wrapf(err, "get reaction user=%d video=%d", userID, videoID)
	}
	return like.Polarity, nil
}

func (s *GormStore) CountReactions(ctx context.Context, videoID uint) (int64, int64, error) {
	type countResult struct {
		Polarity int
		Count    int64
	}
	var results []countResult
	err := s.db.WithContext(ctx).Model(&models.VideoLike{}).
		Select("polarity, COUNT(*) as count").
		Where("video_id = ?", videoID).
		Group("polarity").
		Scan(&results).Error
	if err != nil {
		return 0, 0, errors.Wrapf(err, "count reactions of video %d", videoID)
	}

	var likes, dislikes int64
	for _, r := range results {
		switch r.Polarity {
		case models.Like:
			likes = r.Count
		case models.Dislike:
			dislikes = r.Count
		}
	}
	return likes, dislikes, nil
}

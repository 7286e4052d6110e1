package store

import (
	"context"
	"strings"
	"vidshare/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *GormStore) ListVideos(ctx context.Context) ([]models.Video, error) {
	var videos []models.Video
	err := s.db.WithContext(ctx).Preload("User").
		Order("created_at DESC, id DESC").
		Find(&videos).Error
	if err != nil {
		return nil, errors.Wrap(err, "list videos")
	}
	return videos, nil
}

// SearchVideos matches query as a case-insensitive substring of title or description.
func (s *GormStore) SearchVideos(ctx context.Context, query string) ([]models.Video, error) {
	pattern := "%" + likeEscaper.Replace(query) + "%"

	var videos []models.Video
	err := s.db.WithContext(ctx).Preload("User").
		Where("title ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("created_at DESC, id DESC").
		Find(&videos).Error
	if err != nil {
		return nil, errors.Wrapf(err, "search videos %q", query)
	}
	return videos, nil
}

func (s *GormStore) GetVideo(ctx context.Context, id uint) (*models.Video, error) {
	var video models.Video
	if err := s.db.WithContext(ctx).Preload("User").First(&video, id).Error; err != nil {
		return nil, notFound(err, "get video %d", id)
	}
	return &video, nil
}

func (s *GormStore) GetVideoWithComments(ctx context.Context, id uint) (*models.Video, error) {
	var video models.Video
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC, id DESC") }).
		Preload("Comments.User").
		First(&video, id).Error
	if err != nil {
		return nil, notFound(err, "get video %d", id)
	}
	return &video, nil
}

func (s *GormStore) CreateVideo(ctx context.Context, video *models.Video) error {
	if err := s.db.WithContext(ctx).Create(video).Error; err != nil {
		return errors.Wrap(err, "create video")
	}
	return nil
}

// DeleteVideo hard-deletes the video; comments, views and likes go with it via FK cascade.
func (s *GormStore) DeleteVideo(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Video{}, id)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete video %d", id)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) CountViews(ctx context.Context, videoIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(videoIDs))
	if len(videoIDs) == 0 {
		return counts, nil
	}

	type countResult struct {
		VideoID uint
		Count   int64
	}
	var results []countResult
	err := s.db.WithContext(ctx).Model(&models.View{}).
		Select("video_id, COUNT(*) as count").
		Where("video_id IN ?", videoIDs).
		Group("video_id").
		Scan(&results).Error
	if err != nil {
		return nil, errors.Wrap(err, "count views")
	}

	for _, r := range results {
		counts[r.VideoID] = r.Count
	}
	return counts, nil
}

func (s *GormStore) CreateView(ctx context.Context, view *models.View) error {
	if err := s.db.WithContext(ctx).Create(view).Error; err != nil {
		return errors.Wrapf(err, "record view of video %d", view.VideoID)
	}
	return nil
}

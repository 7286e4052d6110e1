package services

import (
	"context"
	"sort"
	"vidshare/internal/models"
	"vidshare/internal/store"
)

// VideoService 列表类接口：推荐、搜索、热门
type VideoService struct {
	store store.VideoStore
}

func NewVideoService(s store.VideoStore) *VideoService {
	return &VideoService{store: s}
}

func (s *VideoService) Recommended(ctx context.Context) ([]models.Video, error) {
	videos, err := s.store.ListVideos(ctx)
	if err != nil {
		return nil, err
	}
	return videos, s.AttachViews(ctx, videos)
}

func (s *VideoService) Search(ctx context.Context, query string) ([]models.Video, error) {
	videos, err := s.store.SearchVideos(ctx, query)
	if err != nil {
		return nil, err
	}
	return videos, s.AttachViews(ctx, videos)
}

// Trending orders by view count, highest first. The sort is stable over the
// recency-ordered list, so equal counts stay newest first.
func (s *VideoService) Trending(ctx context.Context) ([]models.Video, error) {
	videos, err := s.Recommended(ctx)
	if err != nil {
		return nil, err
	}
	SortTrending(videos)
	return videos, nil
}

func SortTrending(videos []models.Video) {
	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].Views > videos[j].Views
	})
}

// AttachViews fills Views for every video with one grouped count query.
func (s *VideoService) AttachViews(ctx context.Context, videos []models.Video) error {
	if len(videos) == 0 {
		return nil
	}

	videoIDs := make([]uint, len(videos))
	for i, v := range videos {
		videoIDs[i] = v.ID
	}

	counts, err := s.store.CountViews(ctx, videoIDs)
	if err != nil {
		return err
	}
	for i := range videos {
		videos[i].Views = counts[videos[i].ID]
	}
	return nil
}

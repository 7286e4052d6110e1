package services

import (
	"context"
	"vidshare/internal/models"
	"vidshare/internal/store"
)

// ReactionStore is the subset of store.Store the reaction engine needs.
type ReactionStore interface {
	GetVideo(ctx context.Context, id uint) (*models.Video, error)
	store.ReactionStore
}

// ReactionService 点赞/点踩状态机
type ReactionService struct {
	store ReactionStore
}

func NewReactionService(s ReactionStore) *ReactionService {
	return &ReactionService{store: s}
}

// NextPolarity returns the polarity after the user presses like (+1) or dislike (-1).
// Pressing the active button clears it; otherwise the pressed polarity wins.
func NextPolarity(current, pressed int) int {
	if current == pressed {
		return models.Neutral
	}
	return pressed
}

func (s *ReactionService) Like(ctx context.Context, userID, videoID uint) (int, error) {
	return s.react(ctx, userID, videoID, models.Like)
}

func (s *ReactionService) Dislike(ctx context.Context, userID, videoID uint) (int, error) {
	return s.react(ctx, userID, videoID, models.Dislike)
}

func (s *ReactionService) react(ctx context.Context, userID, videoID uint, pressed int) (int, error) {
	// 视频不存在时返回 store.ErrNotFound
	if _, err := s.store.GetVideo(ctx, videoID); err != nil {
		return models.Neutral, err
	}
	return s.store.UpdateReaction(ctx, userID, videoID, func(current int) int {
		return NextPolarity(current, pressed)
	})
}

// Summary fills like/dislike totals and, when userID is non-zero, the caller's own reaction.
func (s *ReactionService) Summary(ctx context.Context, video *models.Video, userID uint) error {
	likes, dislikes, err := s.store.CountReactions(ctx, video.ID)
	if err != nil {
		return err
	}
	video.Likes = likes
	video.Dislikes = dislikes

	if userID == 0 {
		return nil
	}
	polarity, err := s.store.GetReaction(ctx, userID, video.ID)
	if err != nil {
		return err
	}
	video.IsLiked = polarity == models.Like
	video.IsDisliked = polarity == models.Dislike
	return nil
}

package models

import (
	"time"
)

const (
	Dislike = -1
	Neutral = 0
	Like    = 1
)

// VideoLike 点赞/点踩记录，每个 (user, video) 至多一行
type VideoLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_video" json:"userId"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	VideoID   uint      `gorm:"not null;index;uniqueIndex:idx_user_video" json:"videoId"`
	Video     Video     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Polarity  int       `gorm:"not null" json:"like"` // 1 or -1
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

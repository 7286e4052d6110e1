package models

import (
	"time"
)

type Video struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	URL         string    `gorm:"not null" json:"url"`
	Thumbnail   string    `gorm:"not null" json:"thumbnail"`
	UserID      uint      `gorm:"not null;index" json:"userId"`
	User        *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`
	Comments    []Comment `gorm:"constraint:OnDelete:CASCADE;" json:"comments,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`

	// 非数据库字段，读取时计算
	Views           int64  `gorm:"-" json:"views"`
	Likes           int64  `gorm:"-" json:"likesCount"`
	Dislikes        int64  `gorm:"-" json:"dislikesCount"`
	IsLiked         bool   `gorm:"-" json:"isLiked"`
	IsDisliked      bool   `gorm:"-" json:"isDisliked"`
	IsVideoMine     bool   `gorm:"-" json:"isVideoMine"`
	DescriptionHTML string `gorm:"-" json:"descriptionHtml,omitempty"`
}

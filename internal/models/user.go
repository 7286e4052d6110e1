package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Username  string    `gorm:"not null" json:"username"`
	Avatar    string    `gorm:"default:'https://s3.amazonaws.com/youtubeclone/default-avatar.png'" json:"avatar"`
	Cover     string    `gorm:"default:'https://s3.amazonaws.com/youtubeclone/default-cover-banner.png'" json:"cover"`
	About     string    `gorm:"size:500" json:"about"`
	GoogleID  string    `gorm:"index" json:"-"` // Google OAuth ID, 仅重定向登录时写入
	Videos    []Video   `gorm:"foreignKey:UserID" json:"videos,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	// No DeletedAt: users are never removed
}

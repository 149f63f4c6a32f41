package models

import "time"

// UserReactionModel maps user_reactions; (guild_id, user_id) is unique.
type UserReactionModel struct {
	ID             int64 `gorm:"primaryKey"`
	GuildID        int64 `gorm:"not null"`
	UserID         int64 `gorm:"not null"`
	ReactionCount  int64
	LastReactionAt *time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime:false"`
}

func (UserReactionModel) TableName() string {
	return "user_reactions"
}

package models

import "time"

// GuildConfigModel maps guild_config. Timestamps are set by the store clock.
type GuildConfigModel struct {
	GuildID          int64 `gorm:"column:guild_id;primaryKey;autoIncrement:false"`
	ChannelID        *int64
	LogChannelID     *int64
	SupportChannelID *int64
	CreatedAt        time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime:false"`
}

func (GuildConfigModel) TableName() string {
	return "guild_config"
}

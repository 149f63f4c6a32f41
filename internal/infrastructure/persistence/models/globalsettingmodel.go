package models

import "time"

type GlobalSettingModel struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     *string   `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (GlobalSettingModel) TableName() string {
	return "global_settings"
}

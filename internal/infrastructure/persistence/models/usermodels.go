package models

import "time"

type AdminUserModel struct {
	UserID  int64     `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	AddedAt time.Time `gorm:"column:added_at"`
}

func (AdminUserModel) TableName() string {
	return "admin_users"
}

type BannedUserModel struct {
	UserID   int64 `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	Reason   *string
	BannedBy *int64
	BannedAt time.Time `gorm:"column:banned_at"`
}

func (BannedUserModel) TableName() string {
	return "banned_users"
}

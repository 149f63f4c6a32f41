package models

import "time"

type TicketModel struct {
	TicketID          string    `gorm:"column:ticket_id;primaryKey"`
	UserID            int64     `gorm:"not null"`
	UserName          string    `gorm:"not null"`
	GuildID           int64     `gorm:"not null"`
	GuildName         string    `gorm:"not null"`
	Message           string    `gorm:"not null"`
	Status            string    `gorm:"not null"`
	CreatedAt         time.Time `gorm:"autoCreateTime:false"`
	AdminResponse     *string
	AdminResponder    *string
	ResponseTimestamp *time.Time
	ClosedBy          *string
	ClosedTimestamp   *time.Time
}

func (TicketModel) TableName() string {
	return "tickets"
}

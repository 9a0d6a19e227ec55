package model

import (
	"time"
)

type SavedMessage struct {
	ID        uint64    `gorm:"primaryKey"`
	MessageID string    `gorm:"type:varchar(64);not null;uniqueIndex:uk_saved_message_user,priority:1" json:"messageId"`
	UserID    string    `gorm:"type:varchar(64);not null;uniqueIndex:uk_saved_message_user,priority:2;index:idx_saved_user" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (SavedMessage) TableName() string {
	return "saved_messages"
}

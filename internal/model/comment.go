package model

import (
	"time"
)

type Comment struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	MessageID string    `gorm:"type:varchar(64);not null;index:idx_comment_message" json:"messageId"`
	UserID    string    `gorm:"type:varchar(64);not null;index:idx_comment_user" json:"userId"`
	Text      string    `gorm:"type:varchar(800);not null" json:"text"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}

func (Comment) TableName() string {
	return "comments"
}

package model

import (
	"time"
)

type Message struct {
	ID          string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	UserID      string    `gorm:"type:varchar(64);not null;index:idx_message_user" json:"userId"`
	Text        string    `gorm:"type:varchar(560);not null" json:"text"`
	CoordX      float64   `gorm:"not null;index:idx_message_coord,priority:1" json:"coordX"` // 经度
	CoordY      float64   `gorm:"not null;index:idx_message_coord,priority:2" json:"coordY"` // 纬度
	Tags        string    `gorm:"type:varchar(255)" json:"tags"`
	Address     string    `gorm:"type:varchar(255);index:idx_message_address" json:"address"`
	AddressBase string    `gorm:"type:varchar(255);index:idx_message_address_base" json:"addressBase"`
	Likes       int       `gorm:"not null;default:0" json:"likes"`
	Dislikes    int       `gorm:"not null;default:0" json:"dislikes"`
	Shares      int       `gorm:"not null;default:0" json:"shares"`
	Edited      bool      `gorm:"not null;default:false" json:"edited"`
	Timestamp   time.Time `gorm:"not null;index:idx_message_ts" json:"timestamp"`
}

func (Message) TableName() string {
	return "messages"
}

// BoundingBox 按坐标范围过滤留言, 零值表示不限制
type BoundingBox struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

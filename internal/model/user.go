package model

import (
	"time"
)

// User is keyed by nickname. Points and the distance columns are caches rewritten by the dashboard.
type User struct {
	ID                 string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	ProfileImg         string    `gorm:"type:text" json:"profileImg"`
	Bio                string    `gorm:"type:varchar(1200)" json:"bio"`
	Points             int64     `gorm:"not null;default:0" json:"points"`
	TotalDistance      float64   `gorm:"not null;default:0" json:"totalDistance"`
	WalkingDistance    float64   `gorm:"not null;default:0" json:"walkingDistance"`
	WheelchairDistance float64   `gorm:"not null;default:0" json:"wheelchairDistance"`
	VehicleDistance    float64   `gorm:"not null;default:0" json:"vehicleDistance"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

package model

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

type Route struct {
	ID         uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string     `gorm:"type:varchar(64);not null;index:idx_route_user_ts,priority:1" json:"userId"`
	Distance   float64    `gorm:"not null;default:0" json:"distance"` // km
	Duration   int64      `gorm:"not null;default:0" json:"duration"` // 秒
	Mode       string     `gorm:"type:varchar(16);not null" json:"mode"`
	StartLon   float64    `json:"startLon"`
	StartLat   float64    `json:"startLat"`
	EndLon     float64    `json:"endLon"`
	EndLat     float64    `json:"endLat"`
	PointsJSON Trajectory `gorm:"column:points_json;type:text" json:"points"`
	Timestamp  time.Time  `gorm:"not null;index:idx_route_user_ts,priority:2" json:"timestamp"`
}

func (Route) TableName() string {
	return "routes"
}

// Trajectory [lon, lat] 点序列, 以 JSON 数组存储
type Trajectory [][2]float64

func (t Trajectory) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *Trajectory) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*t = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal trajectory value:", value))
	}
	if len(raw) == 0 {
		*t = nil
		return nil
	}
	return json.Unmarshal(raw, t)
}

// RouteDistanceSums 按出行方式汇总的距离与时长
type RouteDistanceSums struct {
	Total         float64
	Walking       float64
	Wheelchair    float64
	Vehicle       float64
	TotalDuration int64
	Count         int64
}

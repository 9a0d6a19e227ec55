package dto

import (
	"github.com/goccy/go-json"
)

type RouteDTO struct {
	ID          uint64       `json:"id"`
	UserID      string       `json:"userId"`
	Distance    float64      `json:"distance"`
	Duration    int64        `json:"duration"`
	Mode        string       `json:"mode"`
	StartCoords Coords       `json:"startCoords"`
	EndCoords   Coords       `json:"endCoords"`
	Points      [][2]float64 `json:"points"`
	Timestamp   int64        `json:"timestamp"`
}

// SaveRouteDTO points 可以是 [[lon,lat],...] 数组, 也可以是其 JSON 字符串
type SaveRouteDTO struct {
	Distance    float64         `json:"distance" binding:"gte=0"`
	Duration    int64           `json:"duration" binding:"gte=0"`
	Mode        string          `json:"mode" binding:"omitempty,oneof=walking wheelchair vehicle pedestrian"`
	StartCoords *Coords         `json:"startCoords"`
	EndCoords   *Coords         `json:"endCoords"`
	Points      json.RawMessage `json:"points"`
}

type TrajectoryQuery struct {
	Bounds string `form:"bounds"`
}

// ConsolidateReportDTO 会话去重结果
type ConsolidateReportDTO struct {
	Sessions               int  `json:"sessions"`
	SessionsWithDuplicates int  `json:"sessionsWithDuplicates"`
	Deleted                int  `json:"deleted"`
	DryRun                 bool `json:"dryRun"`
}

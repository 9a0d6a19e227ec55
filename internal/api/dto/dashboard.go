package dto

import "Balgil/internal/pkg/points"

type DashboardDTO struct {
	Profile         DashboardProfileDTO `json:"profile"`
	Movement        MovementDTO         `json:"movement"`
	Social          SocialDTO           `json:"social"`
	PointsBreakdown points.Breakdown    `json:"pointsBreakdown"`
}

type DashboardProfileDTO struct {
	ID              string  `json:"id"`
	Level           int     `json:"level"`
	Title           string  `json:"title"`
	CurrentPoints   int64   `json:"currentPoints"`
	NextLevelPoints *int64  `json:"nextLevelPoints"`
	Progress        float64 `json:"progress"`
}

type MovementDTO struct {
	TotalDistance float64     `json:"totalDistance"`
	TotalDuration int64       `json:"totalDuration"`
	Calories      int64       `json:"calories"`
	Trees         float64     `json:"trees"`
	RouteCount    int64       `json:"routeCount"`
	RecentRoutes  []*RouteDTO `json:"recentRoutes"`
}

type SocialDTO struct {
	MessageCount   int64          `json:"messageCount"`
	CommentCount   int64          `json:"commentCount"`
	LikesReceived  int64          `json:"likesReceived"`
	SavedCount     int64          `json:"savedCount"`
	RecentActivity []*ActivityDTO `json:"recentActivity"`
}

// ActivityDTO 最近动态条目, coords 只有消息才有
type ActivityDTO struct {
	Type      string  `json:"type"`
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	Timestamp int64   `json:"timestamp"`
	Coords    *Coords `json:"coords,omitempty"`
}

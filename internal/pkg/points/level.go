package points

import "math"

// Threshold 等级表中的一行
type Threshold struct {
	Level         int
	MinimumPoints int64
	Title         string
}

// Thresholds 按 Level 与 MinimumPoints 严格递增
var Thresholds = []Threshold{
	{Level: 1, MinimumPoints: 0, Title: "🌱 동네 새싹"},
	{Level: 2, MinimumPoints: 100, Title: "🚶 동네 산책가"},
	{Level: 3, MinimumPoints: 300, Title: "🏃 활동 주민"},
	{Level: 4, MinimumPoints: 700, Title: "🏙️ 도시 탐험가"},
	{Level: 5, MinimumPoints: 1500, Title: "🌏 지역 영웅"},
	{Level: 6, MinimumPoints: 3000, Title: "🚀 발길의 전설"},
}

type LevelInfo struct {
	Level           int     `json:"level"`
	Title           string  `json:"title"`
	CurrentPoints   int64   `json:"currentPoints"`
	NextLevelPoints *int64  `json:"nextLevelPoints"`
	Progress        float64 `json:"progress"`
}

// LevelFor 根据积分查找等级, 低于首个门槛时按等级 1 计算
func LevelFor(points int64) LevelInfo {
	return levelIn(Thresholds, points)
}

func levelIn(table []Threshold, points int64) LevelInfo {
	idx := 0
	for i, t := range table {
		if t.MinimumPoints <= points {
			idx = i
		} else {
			break
		}
	}

	cur := table[idx]
	info := LevelInfo{
		Level:         cur.Level,
		Title:         cur.Title,
		CurrentPoints: points,
		Progress:      1.0,
	}
	if idx+1 >= len(table) {
		return info
	}

	next := table[idx+1]
	nextPoints := next.MinimumPoints
	info.NextLevelPoints = &nextPoints

	progress := float64(points-cur.MinimumPoints) / float64(next.MinimumPoints-cur.MinimumPoints)
	if progress < 0 {
		progress = 0
	}
	info.Progress = progress
	return info
}

// RoundProgress 保留两位小数, 用于展示
func RoundProgress(p float64) float64 {
	return math.Round(p*100) / 100
}
